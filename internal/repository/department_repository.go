package repository

import (
	"context"
	"errors"

	"github.com/juanmillal/proyecto-grupo-11/internal/domain"
	"gorm.io/gorm"
)

// DepartmentRepository is the persistence gateway for departments.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	AssignEmployee(ctx context.Context, departmentID, employeeID int64) error
	EmployeesByDepartment(ctx context.Context, departmentID int64) ([]domain.Employee, error)
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new repository instance.
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	var dept domain.Department
	err := r.db.WithContext(ctx).First(&dept, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDepartmentNotFound
		}
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	var departments []domain.Department
	err := r.db.WithContext(ctx).Order("id ASC").Find(&departments).Error
	return departments, err
}

// AssignEmployee moves the employee into the department. Membership is a
// single nullable column, so the last assignment always wins.
func (r *departmentRepository) AssignEmployee(ctx context.Context, departmentID, employeeID int64) error {
	if _, err := r.GetByID(ctx, departmentID); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id = ?", employeeID).
		Update("department_id", departmentID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *departmentRepository) EmployeesByDepartment(ctx context.Context, departmentID int64) ([]domain.Employee, error) {
	if _, err := r.GetByID(ctx, departmentID); err != nil {
		return nil, err
	}

	var employees []domain.Employee
	err := r.db.WithContext(ctx).
		Preload("Person").
		Where("department_id = ?", departmentID).
		Order("id ASC").
		Find(&employees).Error
	return employees, err
}
