package repository

import (
	"context"
	"errors"

	"github.com/juanmillal/proyecto-grupo-11/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmployeeRepository is the persistence gateway for employees and their
// base person attributes.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByRut(ctx context.Context, rut string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	UpdateSalary(ctx context.Context, id int64, newSalary float64) error
	Delete(ctx context.Context, id int64) error
	HasAdministrator(ctx context.Context) (bool, error)
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new repository instance.
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create writes the base people row, takes the generated identifier and
// writes the specialized employees row under it. Both writes happen in one
// transaction so a failed specialized write never leaves an orphaned base row.
func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if emp.Rut != nil {
			var count int64
			if err := tx.Model(&domain.Employee{}).Where("rut = ?", *emp.Rut).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return domain.ErrDuplicateRut
			}
		}

		if err := tx.Create(&emp.Person).Error; err != nil {
			return err
		}

		emp.ID = emp.Person.ID
		return tx.Omit(clause.Associations).Create(emp).Error
	})
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).Preload("Person").First(&emp, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

// GetByRut looks up the principal record behind a login key.
func (r *employeeRepository) GetByRut(ctx context.Context, rut string) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).Preload("Person").Where("rut = ?", rut).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).
		Preload("Person").
		Order("id ASC").
		Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) UpdateSalary(ctx context.Context, id int64, newSalary float64) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id = ?", id).
		Update("salary", newSalary)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// Delete removes the specialized row first and the base row second, in one
// transaction. Employees with remaining time entries are not deletable;
// project memberships are cleaned up as part of the delete.
func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entries int64
		if err := tx.Model(&domain.TimeEntry{}).Where("employee_id = ?", id).Count(&entries).Error; err != nil {
			return err
		}
		if entries > 0 {
			return domain.ErrEmployeeHasTimeEntries
		}

		if err := tx.Where("employee_id = ?", id).Delete(&domain.ProjectMember{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.Employee{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrEmployeeNotFound
		}

		return tx.Delete(&domain.Person{}, id).Error
	})
}

// HasAdministrator is the bootstrap existence check: the system must never
// reach a state with zero administrators reachable through the login path.
// An admin row without a rut or a password digest cannot log in, so it does
// not satisfy the check.
func (r *employeeRepository) HasAdministrator(ctx context.Context) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("role = ? AND rut IS NOT NULL AND password_digest <> ''", domain.RoleAdmin).
		Count(&count).Error
	return count > 0, err
}
