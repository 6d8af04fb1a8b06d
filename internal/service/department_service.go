package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/juanmillal/proyecto-grupo-11/internal/domain"
	"github.com/juanmillal/proyecto-grupo-11/internal/dto"
	"github.com/juanmillal/proyecto-grupo-11/internal/repository"
)

// DepartmentService defines the business logic for departments.
type DepartmentService interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*domain.Department, error)
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	AssignEmployee(ctx context.Context, departmentID, employeeID int64) error
	Employees(ctx context.Context, departmentID int64) ([]domain.Employee, error)
}

type departmentService struct {
	deptRepo repository.DepartmentRepository
	empRepo  repository.EmployeeRepository
	validate *validator.Validate
}

// NewDepartmentService creates a new service instance.
func NewDepartmentService(deptRepo repository.DepartmentRepository, empRepo repository.EmployeeRepository) DepartmentService {
	return &departmentService{
		deptRepo: deptRepo,
		empRepo:  empRepo,
		validate: validator.New(),
	}
}

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*domain.Department, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	dept := &domain.Department{
		Name:    strings.TrimSpace(req.Name),
		Manager: strings.TrimSpace(req.Manager),
	}

	if err := s.deptRepo.Create(ctx, dept); err != nil {
		return nil, err
	}

	return dept, nil
}

func (s *departmentService) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	return s.deptRepo.GetByID(ctx, id)
}

func (s *departmentService) List(ctx context.Context) ([]domain.Department, error) {
	return s.deptRepo.List(ctx)
}

// AssignEmployee verifies both sides exist and moves the employee. The
// previous membership is overwritten; there is no multi-department state.
func (s *departmentService) AssignEmployee(ctx context.Context, departmentID, employeeID int64) error {
	if _, err := s.empRepo.GetByID(ctx, employeeID); err != nil {
		return err
	}
	return s.deptRepo.AssignEmployee(ctx, departmentID, employeeID)
}

func (s *departmentService) Employees(ctx context.Context, departmentID int64) ([]domain.Employee, error) {
	return s.deptRepo.EmployeesByDepartment(ctx, departmentID)
}
