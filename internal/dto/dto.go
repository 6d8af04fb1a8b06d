package dto

// CreateEmployeeRequest carries validated input for employee creation.
// The password is the plaintext entered by the operator; it is hashed by
// the service and never stored or logged as-is.
type CreateEmployeeRequest struct {
	Name     string  `validate:"required,min=1,max=200"`
	Address  string  `validate:"required,min=1,max=300"`
	Phone    string  `validate:"required,numeric,min=9,max=15"`
	Email    string  `validate:"required,contains=@,contains=."`
	Salary   float64 `validate:"min=0"`
	Rut      *string `validate:"omitempty,min=1,max=20"`
	Password string  `validate:"omitempty,min=1"`
	Role     string  `validate:"required,oneof=admin usuario"`
}

// UpdateSalaryRequest carries a salary change for an existing employee.
type UpdateSalaryRequest struct {
	EmployeeID int64   `validate:"required,min=1"`
	NewSalary  float64 `validate:"min=0"`
}

// CreateDepartmentRequest carries validated input for department creation.
type CreateDepartmentRequest struct {
	Name    string `validate:"required,min=1,max=200"`
	Manager string `validate:"required,min=1,max=200"`
}

// CreateProjectRequest carries validated input for project creation.
type CreateProjectRequest struct {
	Name        string `validate:"required,min=1,max=200"`
	Description string `validate:"max=500"`
	StartDate   string `validate:"required,datetime=2006-01-02"`
}

// AppendTimeEntryRequest carries a logged work record. Both referenced rows
// must exist before the entry is appended.
type AppendTimeEntryRequest struct {
	EmployeeID  int64   `validate:"required,min=1"`
	ProjectID   int64   `validate:"required,min=1"`
	EntryDate   string  `validate:"required,datetime=2006-01-02"`
	Hours       float64 `validate:"required,gt=0"`
	Description string  `validate:"max=500"`
}
