package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/juanmillal/proyecto-grupo-11/internal/credential"
	"github.com/juanmillal/proyecto-grupo-11/internal/domain"
	"github.com/juanmillal/proyecto-grupo-11/internal/dto"
	"github.com/juanmillal/proyecto-grupo-11/internal/repository"
)

// phonePattern is stricter than the numeric validator tag: digits only,
// no sign or decimal point.
var phonePattern = regexp.MustCompile(`^\d{9,15}$`)

// EmployeeService defines the business logic for employees.
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	UpdateSalary(ctx context.Context, req *dto.UpdateSalaryRequest) error
	Delete(ctx context.Context, id int64) error
}

type employeeService struct {
	empRepo  repository.EmployeeRepository
	validate *validator.Validate
}

// NewEmployeeService creates a new service instance.
func NewEmployeeService(empRepo repository.EmployeeRepository) EmployeeService {
	return &employeeService{
		empRepo:  empRepo,
		validate: validator.New(),
	}
}

// Create validates the request, derives the password digest and writes the
// employee through the gateway. The identifier comes back store-generated.
func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	if !phonePattern.MatchString(req.Phone) {
		return nil, fmt.Errorf("phone must be 9 to 15 digits")
	}

	role := domain.Role(req.Role)
	if err := role.Validate(); err != nil {
		return nil, err
	}

	emp := &domain.Employee{
		Person: domain.Person{
			Name:    strings.TrimSpace(req.Name),
			Address: strings.TrimSpace(req.Address),
			Phone:   req.Phone,
			Email:   strings.TrimSpace(req.Email),
		},
		Salary: req.Salary,
		Role:   role,
	}

	if req.Rut != nil {
		rut := strings.TrimSpace(*req.Rut)
		if rut != "" {
			emp.Rut = &rut
		}
	}
	if req.Password != "" {
		emp.PasswordDigest = credential.Hash(req.Password)
	}

	if err := s.empRepo.Create(ctx, emp); err != nil {
		return nil, err
	}

	return emp, nil
}

func (s *employeeService) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.empRepo.GetByID(ctx, id)
}

func (s *employeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.empRepo.List(ctx)
}

func (s *employeeService) UpdateSalary(ctx context.Context, req *dto.UpdateSalaryRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return err
	}
	return s.empRepo.UpdateSalary(ctx, req.EmployeeID, req.NewSalary)
}

func (s *employeeService) Delete(ctx context.Context, id int64) error {
	return s.empRepo.Delete(ctx, id)
}
