package repository

import (
	"context"
	"errors"

	"github.com/juanmillal/proyecto-grupo-11/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProjectRepository is the persistence gateway for projects, their
// memberships and the time entries logged against them.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	AddMember(ctx context.Context, projectID, employeeID int64) error
	Members(ctx context.Context, projectID int64) ([]domain.Employee, error)
	AppendTimeEntry(ctx context.Context, entry *domain.TimeEntry) error
	TimeEntries(ctx context.Context, projectID int64) ([]domain.TimeEntry, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new repository instance.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.db.WithContext(ctx).Order("id ASC").Find(&projects).Error
	return projects, err
}

// AddMember records project membership. Both rows must exist; assigning an
// existing member is a silent no-op.
func (r *projectRepository) AddMember(ctx context.Context, projectID, employeeID int64) error {
	if _, err := r.GetByID(ctx, projectID); err != nil {
		return err
	}
	if err := r.requireEmployee(ctx, employeeID); err != nil {
		return err
	}

	member := domain.ProjectMember{ProjectID: projectID, EmployeeID: employeeID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&member).Error
}

func (r *projectRepository) Members(ctx context.Context, projectID int64) ([]domain.Employee, error) {
	if _, err := r.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	var employees []domain.Employee
	err := r.db.WithContext(ctx).
		Preload("Person").
		Joins("JOIN project_members pm ON pm.employee_id = employees.id").
		Where("pm.project_id = ?", projectID).
		Order("employees.id ASC").
		Find(&employees).Error
	return employees, err
}

// AppendTimeEntry writes a logged work record. Referential existence of both
// the employee and the project is checked first; a dangling entry is an
// integrity defect, not something to log and continue past.
func (r *projectRepository) AppendTimeEntry(ctx context.Context, entry *domain.TimeEntry) error {
	if err := r.requireEmployee(ctx, entry.EmployeeID); err != nil {
		return err
	}
	if _, err := r.GetByID(ctx, entry.ProjectID); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *projectRepository) TimeEntries(ctx context.Context, projectID int64) ([]domain.TimeEntry, error) {
	if _, err := r.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	var entries []domain.TimeEntry
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("entry_date ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *projectRepository) requireEmployee(ctx context.Context, employeeID int64) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id = ?", employeeID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}
