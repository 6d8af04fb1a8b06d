package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/juanmillal/proyecto-grupo-11/internal/domain"
	"github.com/juanmillal/proyecto-grupo-11/internal/dto"
	"github.com/juanmillal/proyecto-grupo-11/internal/repository"
)

// ProjectService defines the business logic for projects and time entries.
type ProjectService interface {
	Create(ctx context.Context, req *dto.CreateProjectRequest) (*domain.Project, error)
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	AssignEmployee(ctx context.Context, projectID, employeeID int64) error
	Members(ctx context.Context, projectID int64) ([]domain.Employee, error)
	LogTime(ctx context.Context, req *dto.AppendTimeEntryRequest) (*domain.TimeEntry, error)
	TimeEntries(ctx context.Context, projectID int64) ([]domain.TimeEntry, error)
}

type projectService struct {
	projRepo repository.ProjectRepository
	validate *validator.Validate
}

// NewProjectService creates a new service instance.
func NewProjectService(projRepo repository.ProjectRepository) ProjectService {
	return &projectService{
		projRepo: projRepo,
		validate: validator.New(),
	}
}

func (s *projectService) Create(ctx context.Context, req *dto.CreateProjectRequest) (*domain.Project, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, err
	}

	project := &domain.Project{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		StartDate:   startDate,
	}

	if err := s.projRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

func (s *projectService) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	return s.projRepo.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projRepo.List(ctx)
}

func (s *projectService) AssignEmployee(ctx context.Context, projectID, employeeID int64) error {
	return s.projRepo.AddMember(ctx, projectID, employeeID)
}

func (s *projectService) Members(ctx context.Context, projectID int64) ([]domain.Employee, error) {
	return s.projRepo.Members(ctx, projectID)
}

// LogTime validates and appends a work record. The repository re-checks that
// both referenced rows exist before the write.
func (s *projectService) LogTime(ctx context.Context, req *dto.AppendTimeEntryRequest) (*domain.TimeEntry, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	entryDate, err := time.Parse("2006-01-02", req.EntryDate)
	if err != nil {
		return nil, err
	}

	entry := &domain.TimeEntry{
		EmployeeID:  req.EmployeeID,
		ProjectID:   req.ProjectID,
		EntryDate:   entryDate,
		Hours:       req.Hours,
		Description: strings.TrimSpace(req.Description),
	}

	if err := s.projRepo.AppendTimeEntry(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *projectService) TimeEntries(ctx context.Context, projectID int64) ([]domain.TimeEntry, error) {
	return s.projRepo.TimeEntries(ctx, projectID)
}
