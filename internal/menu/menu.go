package menu

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/juanmillal/proyecto-grupo-11/internal/dto"
	"github.com/juanmillal/proyecto-grupo-11/internal/prompt"
	"github.com/juanmillal/proyecto-grupo-11/internal/remote"
	"github.com/juanmillal/proyecto-grupo-11/internal/service"
	"github.com/juanmillal/proyecto-grupo-11/internal/session"
)

// Menu is the interactive console surface. It authenticates the operator,
// shows the capability set their role allows and dispatches selections to
// the services. Dispatch re-checks the session's capability on every call;
// hiding an option is presentation, the rejection happens in routing.
type Menu struct {
	auth        service.AuthService
	employees   service.EmployeeService
	departments service.DepartmentService
	projects    service.ProjectService
	remote      *remote.Client
	input       *prompt.Reader
	out         io.Writer
	logger      *slog.Logger
}

// New creates the menu over the given services and streams.
func New(
	auth service.AuthService,
	employees service.EmployeeService,
	departments service.DepartmentService,
	projects service.ProjectService,
	remoteClient *remote.Client,
	input *prompt.Reader,
	out io.Writer,
	logger *slog.Logger,
) *Menu {
	return &Menu{
		auth:        auth,
		employees:   employees,
		departments: departments,
		projects:    projects,
		remote:      remoteClient,
		input:       input,
		out:         out,
		logger:      logger,
	}
}

// Action is one selectable operation with the capability it requires.
type Action struct {
	Key        string
	Label      string
	Capability session.Capability
	run        func(ctx context.Context) error
}

// Run drives the login loop: anonymous until a successful authentication,
// then a role-scoped session until logout, then anonymous again. A failed
// login never creates a session. Input exhaustion ends the loop the same
// way an explicit quit does, so deferred cleanup upstream always runs.
func (m *Menu) Run(ctx context.Context) error {
	for {
		choice := m.input.Text("login (l) or quit (q)")
		if m.input.EOF() {
			m.logger.Info("input closed, shutting down")
			return nil
		}
		switch choice {
		case "q":
			return nil
		case "l":
			rut := m.input.Text("rut")
			password := m.input.Text("password")
			sess, err := m.auth.Login(ctx, rut, password)
			if err != nil {
				fmt.Fprintln(m.out, "authentication rejected")
				continue
			}
			m.sessionLoop(ctx, sess)
		default:
			fmt.Fprintln(m.out, "unknown option")
		}
	}
}

func (m *Menu) sessionLoop(ctx context.Context, sess *session.Session) {
	actions := m.Actions()
	for {
		fmt.Fprintf(m.out, "\nsession %s (%s)\n", sess.Rut, sess.Role)
		for _, a := range actions {
			if sess.Authorize(a.Capability) == nil {
				fmt.Fprintf(m.out, "  %s) %s\n", a.Key, a.Label)
			}
		}
		fmt.Fprintln(m.out, "  0) logout")

		choice := m.input.Text("option")
		if m.input.EOF() {
			m.logger.Info("input closed, ending session", slog.String("rut", sess.Rut))
			return
		}
		if choice == "0" {
			m.logger.Info("logout", slog.String("rut", sess.Rut))
			return
		}

		if err := m.Dispatch(ctx, sess, choice); err != nil {
			fmt.Fprintf(m.out, "error: %v\n", err)
		}
	}
}

// Dispatch routes a selection through the session's capability check and
// runs it. Unknown keys and unauthorized selections both come back as errors.
func (m *Menu) Dispatch(ctx context.Context, sess *session.Session, key string) error {
	for _, a := range m.Actions() {
		if a.Key != key {
			continue
		}
		if err := sess.Authorize(a.Capability); err != nil {
			m.logger.Warn("rejected by capability routing",
				slog.String("rut", sess.Rut),
				slog.String("action", a.Label),
			)
			return err
		}
		return a.run(ctx)
	}
	return fmt.Errorf("unknown option %q", key)
}

// Actions returns the full capability-tagged operation set.
func (m *Menu) Actions() []Action {
	return []Action{
		{"1", "list employees", session.CapabilityRead, m.listEmployees},
		{"2", "show employee", session.CapabilityRead, m.showEmployee},
		{"3", "create employee", session.CapabilityWrite, m.createEmployee},
		{"4", "update salary", session.CapabilityWrite, m.updateSalary},
		{"5", "delete employee", session.CapabilityWrite, m.deleteEmployee},
		{"6", "list departments", session.CapabilityRead, m.listDepartments},
		{"7", "create department", session.CapabilityWrite, m.createDepartment},
		{"8", "assign employee to department", session.CapabilityWrite, m.assignDepartment},
		{"9", "list projects", session.CapabilityRead, m.listProjects},
		{"10", "create project", session.CapabilityWrite, m.createProject},
		{"11", "assign employee to project", session.CapabilityWrite, m.assignProject},
		{"12", "log time entry", session.CapabilityWrite, m.logTime},
		{"13", "list project time entries", session.CapabilityRead, m.listTimeEntries},
		{"14", "fetch remote resource", session.CapabilityRead, m.fetchRemote},
	}
}

func (m *Menu) listEmployees(ctx context.Context) error {
	employees, err := m.employees.List(ctx)
	if err != nil {
		return err
	}
	for _, e := range employees {
		fmt.Fprintln(m.out, e.Describe())
	}
	return nil
}

func (m *Menu) showEmployee(ctx context.Context) error {
	id := m.input.Int("employee id")
	emp, err := m.employees.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if emp.DepartmentID != nil {
		if dept, err := m.departments.GetByID(ctx, *emp.DepartmentID); err == nil {
			emp.Department = dept
		}
	}
	fmt.Fprintln(m.out, emp.Describe())
	return nil
}

func (m *Menu) createEmployee(ctx context.Context) error {
	req := &dto.CreateEmployeeRequest{
		Name:    m.input.Text("name"),
		Address: m.input.Text("address"),
		Phone:   m.input.Phone("phone"),
		Email:   m.input.Email("email"),
		Salary:  m.input.Float("salary"),
		Role:    m.input.Text("role (admin/usuario)"),
	}
	if rut := m.input.Optional("rut (optional)"); rut != "" {
		req.Rut = &rut
		req.Password = m.input.Secret("password")
	}

	emp, err := m.employees.Create(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "created employee %d\n", emp.ID)
	return nil
}

func (m *Menu) updateSalary(ctx context.Context) error {
	req := &dto.UpdateSalaryRequest{
		EmployeeID: m.input.Int("employee id"),
		NewSalary:  m.input.Float("new salary"),
	}
	return m.employees.UpdateSalary(ctx, req)
}

func (m *Menu) deleteEmployee(ctx context.Context) error {
	return m.employees.Delete(ctx, m.input.Int("employee id"))
}

func (m *Menu) listDepartments(ctx context.Context) error {
	departments, err := m.departments.List(ctx)
	if err != nil {
		return err
	}
	for _, d := range departments {
		fmt.Fprintf(m.out, "[%d] %s\n", d.ID, d.Describe())
	}
	return nil
}

func (m *Menu) createDepartment(ctx context.Context) error {
	req := &dto.CreateDepartmentRequest{
		Name:    m.input.Text("name"),
		Manager: m.input.Text("manager"),
	}
	dept, err := m.departments.Create(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "created department %d\n", dept.ID)
	return nil
}

func (m *Menu) assignDepartment(ctx context.Context) error {
	deptID := m.input.Int("department id")
	empID := m.input.Int("employee id")
	return m.departments.AssignEmployee(ctx, deptID, empID)
}

func (m *Menu) listProjects(ctx context.Context) error {
	projects, err := m.projects.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range projects {
		fmt.Fprintf(m.out, "[%d] %s\n", p.ID, p.Describe())
	}
	return nil
}

func (m *Menu) createProject(ctx context.Context) error {
	req := &dto.CreateProjectRequest{
		Name:        m.input.Text("name"),
		Description: m.input.Optional("description"),
		StartDate:   m.input.Date("start date"),
	}
	project, err := m.projects.Create(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "created project %d\n", project.ID)
	return nil
}

func (m *Menu) assignProject(ctx context.Context) error {
	projectID := m.input.Int("project id")
	empID := m.input.Int("employee id")
	return m.projects.AssignEmployee(ctx, projectID, empID)
}

func (m *Menu) logTime(ctx context.Context) error {
	req := &dto.AppendTimeEntryRequest{
		EmployeeID:  m.input.Int("employee id"),
		ProjectID:   m.input.Int("project id"),
		EntryDate:   m.input.Date("date"),
		Hours:       m.input.Float("hours"),
		Description: m.input.Optional("description"),
	}
	entry, err := m.projects.LogTime(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "logged %.1f hours as entry %d\n", entry.Hours, entry.ID)
	return nil
}

func (m *Menu) listTimeEntries(ctx context.Context) error {
	projectID := m.input.Int("project id")
	entries, err := m.projects.TimeEntries(ctx, projectID)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(m.out, "%s - employee %d: %.1f hours - %s\n",
			e.EntryDate.Format("2006-01-02"), e.EmployeeID, e.Hours, e.Description)
	}
	return nil
}

func (m *Menu) fetchRemote(ctx context.Context) error {
	endpoint := m.input.Text("endpoint")
	body, status, err := m.remote.Get(ctx, endpoint)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		fmt.Fprintf(m.out, "remote answered %d\n", status)
		return nil
	}
	fmt.Fprintf(m.out, "%v\n", body)
	return nil
}
