package domain

import (
	"fmt"
	"time"
)

// Role restricts the closed set of principal roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "usuario"
)

// Validate rejects anything outside the closed role set. Roles are checked at
// construction time, never deferred to authentication.
func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleUser:
		return nil
	}
	return ErrInvalidRole
}

// IsAdmin reports whether the role carries administrator capabilities.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Person holds the attribute set shared by every employee. It is never
// persisted on its own; its row is written and removed as part of the
// owning employee's lifecycle.
type Person struct {
	ID      int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name    string `json:"name" gorm:"type:varchar(200);not null"`
	Address string `json:"address" gorm:"type:varchar(300);not null"`
	Phone   string `json:"phone" gorm:"type:varchar(15);not null"`
	Email   string `json:"email" gorm:"type:varchar(200);not null"`
}

// TableName sets the table name used by GORM.
func (Person) TableName() string {
	return "people"
}

// Employee specializes Person. Its row in "employees" shares the identifier
// generated for the base "people" row; both rows are written in one
// transaction by the repository.
type Employee struct {
	ID             int64   `json:"id" gorm:"primaryKey"`
	Person         Person  `json:"person" gorm:"foreignKey:ID;references:ID"`
	Salary         float64 `json:"salary" gorm:"not null"`
	Rut            *string `json:"rut,omitempty" gorm:"type:varchar(20);uniqueIndex"`
	PasswordDigest string  `json:"-" gorm:"type:varchar(64)"`
	Role           Role    `json:"role" gorm:"type:varchar(20);not null;default:'usuario'"`
	DepartmentID   *int64  `json:"department_id,omitempty" gorm:"index"`

	Department *Department `json:"-" gorm:"foreignKey:DepartmentID"`
	Projects   []*Project  `json:"-" gorm:"-"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName sets the table name used by GORM.
func (Employee) TableName() string {
	return "employees"
}

// AssignDepartment sets the employee's back-reference. Department membership
// lists are maintained by Department.AddEmployee; callers normally go through
// that side.
func (e *Employee) AssignDepartment(d *Department) {
	e.Department = d
	if d != nil {
		e.DepartmentID = &d.ID
	} else {
		e.DepartmentID = nil
	}
}

// AssignProject adds the employee to the project, keeping both membership
// lists consistent. Duplicate assignment is a silent no-op.
func (e *Employee) AssignProject(p *Project) {
	p.AssignEmployee(e)
}

// HasProject reports whether the employee is already a member of the project.
func (e *Employee) HasProject(projectID int64) bool {
	for _, p := range e.Projects {
		if p.ID == projectID {
			return true
		}
	}
	return false
}

// Describe is a read-only projection of the employee's current state.
func (e *Employee) Describe() string {
	dept := "N/A"
	if e.Department != nil {
		dept = e.Department.Name
	}
	return fmt.Sprintf("Employee[%d]: %s, Email: %s, Department: %s", e.ID, e.Person.Name, e.Person.Email, dept)
}

// Department groups employees under a named manager. The manager is a plain
// name, not a relation to an employee row.
type Department struct {
	ID      int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name    string `json:"name" gorm:"type:varchar(200);not null"`
	Manager string `json:"manager" gorm:"type:varchar(200);not null"`

	Employees []*Employee `json:"-" gorm:"-"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName sets the table name used by GORM.
func (Department) TableName() string {
	return "departments"
}

// AddEmployee appends the employee and sets the back-reference. Membership is
// exclusive: reassignment removes the employee from the previous department's
// list first. Adding an existing member is a silent no-op.
func (d *Department) AddEmployee(e *Employee) {
	for _, member := range d.Employees {
		if member == e {
			return
		}
	}
	if prev := e.Department; prev != nil && prev != d {
		prev.removeEmployee(e)
	}
	d.Employees = append(d.Employees, e)
	e.AssignDepartment(d)
}

func (d *Department) removeEmployee(e *Employee) {
	for i, member := range d.Employees {
		if member == e {
			d.Employees = append(d.Employees[:i], d.Employees[i+1:]...)
			return
		}
	}
}

// Describe is a read-only projection of the department's current state.
func (d *Department) Describe() string {
	return fmt.Sprintf("Department: %s, Manager: %s, Employees: %d", d.Name, d.Manager, len(d.Employees))
}

// Project is a unit of work employees are assigned to and log hours against.
type Project struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"type:varchar(200);not null"`
	Description string    `json:"description" gorm:"type:varchar(500)"`
	StartDate   time.Time `json:"start_date" gorm:"type:date;not null"`

	Employees   []*Employee `json:"-" gorm:"-"`
	TimeEntries []TimeEntry `json:"-" gorm:"foreignKey:ProjectID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName sets the table name used by GORM.
func (Project) TableName() string {
	return "projects"
}

// AssignEmployee appends the employee to the project and the project to the
// employee. Duplicate membership on either side is a silent no-op.
func (p *Project) AssignEmployee(e *Employee) {
	for _, member := range p.Employees {
		if member == e {
			return
		}
	}
	p.Employees = append(p.Employees, e)
	if !containsProject(e.Projects, p) {
		e.Projects = append(e.Projects, p)
	}
}

func containsProject(projects []*Project, p *Project) bool {
	for _, member := range projects {
		if member == p {
			return true
		}
	}
	return false
}

// AddTimeEntry appends a logged work record to the project's collection.
func (p *Project) AddTimeEntry(entry TimeEntry) {
	p.TimeEntries = append(p.TimeEntries, entry)
}

// Describe is a read-only projection of the project's current state.
func (p *Project) Describe() string {
	return fmt.Sprintf("Project: %s, Start date: %s, Assigned employees: %d",
		p.Name, p.StartDate.Format("2006-01-02"), len(p.Employees))
}

// ProjectMember is the persisted many-to-many membership row.
type ProjectMember struct {
	ProjectID  int64 `gorm:"primaryKey"`
	EmployeeID int64 `gorm:"primaryKey"`
}

// TableName sets the table name used by GORM.
func (ProjectMember) TableName() string {
	return "project_members"
}

// TimeEntry records hours worked by one employee on one project.
type TimeEntry struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID  int64     `json:"employee_id" gorm:"not null;index"`
	ProjectID   int64     `json:"project_id" gorm:"not null;index"`
	EntryDate   time.Time `json:"entry_date" gorm:"type:date;not null"`
	Hours       float64   `json:"hours" gorm:"not null"`
	Description string    `json:"description" gorm:"type:varchar(500)"`
}

// TableName sets the table name used by GORM.
func (TimeEntry) TableName() string {
	return "time_entries"
}
