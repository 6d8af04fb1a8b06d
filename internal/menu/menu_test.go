package menu_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/juanmillal/proyecto-grupo-11/internal/domain"
	"github.com/juanmillal/proyecto-grupo-11/internal/dto"
	"github.com/juanmillal/proyecto-grupo-11/internal/menu"
	"github.com/juanmillal/proyecto-grupo-11/internal/prompt"
	"github.com/juanmillal/proyecto-grupo-11/internal/service"
	"github.com/juanmillal/proyecto-grupo-11/internal/session"
)

type stubEmployeeService struct {
	listed  bool
	deleted []int64
}

func (s *stubEmployeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error) {
	return &domain.Employee{ID: 1}, nil
}

func (s *stubEmployeeService) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return &domain.Employee{ID: id}, nil
}

func (s *stubEmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	s.listed = true
	return nil, nil
}

func (s *stubEmployeeService) UpdateSalary(ctx context.Context, req *dto.UpdateSalaryRequest) error {
	return nil
}

func (s *stubEmployeeService) Delete(ctx context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubDepartmentService struct{}

func (s *stubDepartmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*domain.Department, error) {
	return &domain.Department{ID: 1}, nil
}

func (s *stubDepartmentService) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	return &domain.Department{ID: id}, nil
}

func (s *stubDepartmentService) List(ctx context.Context) ([]domain.Department, error) {
	return nil, nil
}

func (s *stubDepartmentService) AssignEmployee(ctx context.Context, departmentID, employeeID int64) error {
	return nil
}

func (s *stubDepartmentService) Employees(ctx context.Context, departmentID int64) ([]domain.Employee, error) {
	return nil, nil
}

type stubProjectService struct{}

func (s *stubProjectService) Create(ctx context.Context, req *dto.CreateProjectRequest) (*domain.Project, error) {
	return &domain.Project{ID: 1}, nil
}

func (s *stubProjectService) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	return &domain.Project{ID: id}, nil
}

func (s *stubProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return nil, nil
}

func (s *stubProjectService) AssignEmployee(ctx context.Context, projectID, employeeID int64) error {
	return nil
}

func (s *stubProjectService) Members(ctx context.Context, projectID int64) ([]domain.Employee, error) {
	return nil, nil
}

func (s *stubProjectService) LogTime(ctx context.Context, req *dto.AppendTimeEntryRequest) (*domain.TimeEntry, error) {
	return &domain.TimeEntry{ID: 1, Hours: req.Hours}, nil
}

func (s *stubProjectService) TimeEntries(ctx context.Context, projectID int64) ([]domain.TimeEntry, error) {
	return nil, nil
}

type stubAuthService struct{}

func (s *stubAuthService) Login(ctx context.Context, rut, password string) (*session.Session, error) {
	return nil, domain.ErrAuthFailed
}

func (s *stubAuthService) HasAdministrator(ctx context.Context) (bool, error) {
	return true, nil
}

func (s *stubAuthService) BootstrapAdministrator(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error) {
	return nil, domain.ErrAuthFailed
}

// grantingAuthService accepts any credentials with a fixed role.
type grantingAuthService struct {
	stubAuthService
	role domain.Role
}

func (s *grantingAuthService) Login(ctx context.Context, rut, password string) (*session.Session, error) {
	return session.New(rut, s.role), nil
}

func newMenuWithAuth(auth service.AuthService, input string) (*menu.Menu, *stubEmployeeService) {
	employees := &stubEmployeeService{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := menu.New(
		auth,
		employees,
		&stubDepartmentService{},
		&stubProjectService{},
		nil,
		prompt.New(strings.NewReader(input), &bytes.Buffer{}),
		&bytes.Buffer{},
		logger,
	)
	return m, employees
}

func newMenu(input string) (*menu.Menu, *stubEmployeeService) {
	return newMenuWithAuth(&stubAuthService{}, input)
}

func TestDispatch_StandardSessionCannotMutate(t *testing.T) {
	m, employees := newMenu("7\n")
	sess := session.New("22222222-2", domain.RoleUser)

	// "5" is delete employee, a write capability.
	err := m.Dispatch(context.Background(), sess, "5")
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if len(employees.deleted) != 0 {
		t.Error("service was invoked despite the rejection")
	}
}

func TestDispatch_StandardSessionCanRead(t *testing.T) {
	m, employees := newMenu("")
	sess := session.New("22222222-2", domain.RoleUser)

	if err := m.Dispatch(context.Background(), sess, "1"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !employees.listed {
		t.Error("read operation did not reach the service")
	}
}

func TestDispatch_AdminSessionCanMutate(t *testing.T) {
	m, employees := newMenu("7\n")
	sess := session.New("11111111-1", domain.RoleAdmin)

	if err := m.Dispatch(context.Background(), sess, "5"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(employees.deleted) != 1 || employees.deleted[0] != 7 {
		t.Errorf("expected delete of employee 7, got %v", employees.deleted)
	}
}

func TestDispatch_UnknownKey(t *testing.T) {
	m, _ := newMenu("")
	sess := session.New("11111111-1", domain.RoleAdmin)

	if err := m.Dispatch(context.Background(), sess, "99"); err == nil {
		t.Error("expected an error for an unknown option")
	}
}

func TestRun_ReturnsOnExhaustedInput(t *testing.T) {
	m, _ := newMenu("")
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestRun_ReturnsAfterUnknownOptionThenExhaustion(t *testing.T) {
	m, _ := newMenu("x\n")
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestRun_SessionEndsOnExhaustedInput(t *testing.T) {
	// Log in, run one action, then the stream runs out mid-session.
	m, employees := newMenuWithAuth(&grantingAuthService{role: domain.RoleAdmin}, "l\n11111111-1\nsecreto\n1\n")
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !employees.listed {
		t.Error("action before exhaustion was not dispatched")
	}
}

func TestEveryWriteActionIsGated(t *testing.T) {
	m, _ := newMenu("")
	standard := session.New("22222222-2", domain.RoleUser)

	for _, a := range m.Actions() {
		if a.Capability != session.CapabilityWrite {
			continue
		}
		if err := standard.Authorize(a.Capability); !errors.Is(err, domain.ErrPermissionDenied) {
			t.Errorf("action %q not gated for standard sessions", a.Label)
		}
	}
}
