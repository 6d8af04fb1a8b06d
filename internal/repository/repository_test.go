package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/juanmillal/proyecto-grupo-11/internal/config"
	"github.com/juanmillal/proyecto-grupo-11/internal/credential"
	"github.com/juanmillal/proyecto-grupo-11/internal/domain"
	"github.com/juanmillal/proyecto-grupo-11/internal/repository"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver:         config.DriverSQLite,
		Path:           filepath.Join(t.TempDir(), "test.db"),
		ConnectTimeout: time.Second,
	}

	db, err := repository.Connect(cfg)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() {
		if err := repository.Close(db); err != nil {
			t.Errorf("failed to close: %v", err)
		}
	})

	if err := repository.Migrate(db, config.DriverSQLite); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func newEmployee(name, rut string) *domain.Employee {
	emp := &domain.Employee{
		Person: domain.Person{
			Name:    name,
			Address: "Calle Falsa 123",
			Phone:   "123456789",
			Email:   name + "@empresa.com",
		},
		Salary: 50000,
		Role:   domain.RoleUser,
	}
	if rut != "" {
		emp.Rut = &rut
		emp.PasswordDigest = credential.Hash("secreto")
	}
	return emp
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := repository.Connect(config.DatabaseConfig{Driver: "oracle", ConnectTimeout: time.Second})
	if !errors.Is(err, domain.ErrConnection) {
		t.Errorf("expected ErrConnection, got %v", err)
	}
}

func TestEmployeeCreate_SharesGeneratedID(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewEmployeeRepository(db)
	ctx := context.Background()

	emp := newEmployee("juan", "11111111-1")
	if err := repo.Create(ctx, emp); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if emp.ID == 0 {
		t.Fatal("expected a store-generated id")
	}
	if emp.ID != emp.Person.ID {
		t.Errorf("employee id %d differs from person id %d", emp.ID, emp.Person.ID)
	}

	got, err := repo.GetByID(ctx, emp.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Person.Name != "juan" {
		t.Errorf("base attributes not loaded, got name %q", got.Person.Name)
	}
	if got.Role != domain.RoleUser {
		t.Errorf("expected role usuario, got %q", got.Role)
	}
}

func TestEmployeeCreate_DuplicateRut(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewEmployeeRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, newEmployee("juan", "11111111-1")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err := repo.Create(ctx, newEmployee("ana", "11111111-1"))
	if !errors.Is(err, domain.ErrDuplicateRut) {
		t.Errorf("expected ErrDuplicateRut, got %v", err)
	}

	// The failed insert must not leave an orphaned people row behind.
	var people int64
	db.Model(&domain.Person{}).Count(&people)
	if people != 1 {
		t.Errorf("expected 1 people row, got %d", people)
	}
}

func TestEmployeeDelete_RemovesBothRows(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewEmployeeRepository(db)
	ctx := context.Background()

	emp := newEmployee("juan", "")
	if err := repo.Create(ctx, emp); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.Delete(ctx, emp.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	employees, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, e := range employees {
		if e.ID == emp.ID {
			t.Error("deleted employee still listed")
		}
	}

	var people, rows int64
	db.Model(&domain.Person{}).Where("id = ?", emp.ID).Count(&people)
	db.Model(&domain.Employee{}).Where("id = ?", emp.ID).Count(&rows)
	if people != 0 || rows != 0 {
		t.Errorf("expected both rows gone, people=%d employees=%d", people, rows)
	}
}

func TestEmployeeDelete_NotFound(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewEmployeeRepository(db)

	err := repo.Delete(context.Background(), 999)
	if !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeDelete_RestrictedByTimeEntries(t *testing.T) {
	db := setupDB(t)
	empRepo := repository.NewEmployeeRepository(db)
	projRepo := repository.NewProjectRepository(db)
	ctx := context.Background()

	emp := newEmployee("juan", "")
	if err := empRepo.Create(ctx, emp); err != nil {
		t.Fatalf("create employee failed: %v", err)
	}
	project := &domain.Project{Name: "EcoProyecto", StartDate: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)}
	if err := projRepo.Create(ctx, project); err != nil {
		t.Fatalf("create project failed: %v", err)
	}
	entry := &domain.TimeEntry{
		EmployeeID: emp.ID,
		ProjectID:  project.ID,
		EntryDate:  time.Date(2024, 10, 25, 0, 0, 0, 0, time.UTC),
		Hours:      8,
	}
	if err := projRepo.AppendTimeEntry(ctx, entry); err != nil {
		t.Fatalf("append entry failed: %v", err)
	}

	err := empRepo.Delete(ctx, emp.ID)
	if !errors.Is(err, domain.ErrEmployeeHasTimeEntries) {
		t.Errorf("expected ErrEmployeeHasTimeEntries, got %v", err)
	}

	// The employee must still be intact after the refused delete.
	if _, err := empRepo.GetByID(ctx, emp.ID); err != nil {
		t.Errorf("employee disappeared after refused delete: %v", err)
	}
}

func TestUpdateSalary(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewEmployeeRepository(db)
	ctx := context.Background()

	emp := newEmployee("juan", "")
	if err := repo.Create(ctx, emp); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.UpdateSalary(ctx, emp.ID, 60000); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, _ := repo.GetByID(ctx, emp.ID)
	if got.Salary != 60000 {
		t.Errorf("expected salary 60000, got %v", got.Salary)
	}

	if err := repo.UpdateSalary(ctx, 999, 1); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestHasAdministrator(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewEmployeeRepository(db)
	ctx := context.Background()

	has, err := repo.HasAdministrator(ctx)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if has {
		t.Error("empty store reported an administrator")
	}

	// An admin without credentials cannot log in and must not count.
	uncredentialed := newEmployee("fantasma", "")
	uncredentialed.Role = domain.RoleAdmin
	if err := repo.Create(ctx, uncredentialed); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	has, err = repo.HasAdministrator(ctx)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if has {
		t.Error("uncredentialed admin satisfied the bootstrap check")
	}

	admin := newEmployee("admin", "11111111-1")
	admin.Role = domain.RoleAdmin
	if err := repo.Create(ctx, admin); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	has, err = repo.HasAdministrator(ctx)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !has {
		t.Error("administrator not detected")
	}
}

func TestGetByRut(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewEmployeeRepository(db)
	ctx := context.Background()

	emp := newEmployee("juan", "11111111-1")
	if err := repo.Create(ctx, emp); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := repo.GetByRut(ctx, "11111111-1")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got.ID != emp.ID {
		t.Errorf("expected id %d, got %d", emp.ID, got.ID)
	}

	if _, err := repo.GetByRut(ctx, "99999999-9"); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestDepartmentAssignEmployee_LastAssignmentWins(t *testing.T) {
	db := setupDB(t)
	empRepo := repository.NewEmployeeRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	ctx := context.Background()

	emp := newEmployee("juan", "")
	if err := empRepo.Create(ctx, emp); err != nil {
		t.Fatalf("create employee failed: %v", err)
	}
	first := &domain.Department{Name: "Desarrollo", Manager: "Carlos"}
	second := &domain.Department{Name: "Ventas", Manager: "Maria"}
	if err := deptRepo.Create(ctx, first); err != nil {
		t.Fatalf("create department failed: %v", err)
	}
	if err := deptRepo.Create(ctx, second); err != nil {
		t.Fatalf("create department failed: %v", err)
	}

	if err := deptRepo.AssignEmployee(ctx, first.ID, emp.ID); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if err := deptRepo.AssignEmployee(ctx, second.ID, emp.ID); err != nil {
		t.Fatalf("reassign failed: %v", err)
	}

	inFirst, err := deptRepo.EmployeesByDepartment(ctx, first.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(inFirst) != 0 {
		t.Errorf("expected 0 employees in old department, got %d", len(inFirst))
	}
	inSecond, err := deptRepo.EmployeesByDepartment(ctx, second.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(inSecond) != 1 {
		t.Errorf("expected 1 employee in new department, got %d", len(inSecond))
	}

	if err := deptRepo.AssignEmployee(ctx, 999, emp.ID); !errors.Is(err, domain.ErrDepartmentNotFound) {
		t.Errorf("expected ErrDepartmentNotFound, got %v", err)
	}
	if err := deptRepo.AssignEmployee(ctx, first.ID, 999); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestProjectAddMember_DuplicateIsNoOp(t *testing.T) {
	db := setupDB(t)
	empRepo := repository.NewEmployeeRepository(db)
	projRepo := repository.NewProjectRepository(db)
	ctx := context.Background()

	emp := newEmployee("juan", "")
	if err := empRepo.Create(ctx, emp); err != nil {
		t.Fatalf("create employee failed: %v", err)
	}
	project := &domain.Project{Name: "EcoProyecto", StartDate: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)}
	if err := projRepo.Create(ctx, project); err != nil {
		t.Fatalf("create project failed: %v", err)
	}

	if err := projRepo.AddMember(ctx, project.ID, emp.ID); err != nil {
		t.Fatalf("add member failed: %v", err)
	}
	if err := projRepo.AddMember(ctx, project.ID, emp.ID); err != nil {
		t.Fatalf("duplicate add failed: %v", err)
	}

	members, err := projRepo.Members(ctx, project.ID)
	if err != nil {
		t.Fatalf("members failed: %v", err)
	}
	if len(members) != 1 {
		t.Errorf("expected exactly 1 member, got %d", len(members))
	}
}

func TestAppendTimeEntry_RequiresBothRows(t *testing.T) {
	db := setupDB(t)
	empRepo := repository.NewEmployeeRepository(db)
	projRepo := repository.NewProjectRepository(db)
	ctx := context.Background()

	emp := newEmployee("juan", "")
	if err := empRepo.Create(ctx, emp); err != nil {
		t.Fatalf("create employee failed: %v", err)
	}
	project := &domain.Project{Name: "EcoProyecto", StartDate: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)}
	if err := projRepo.Create(ctx, project); err != nil {
		t.Fatalf("create project failed: %v", err)
	}

	entry := &domain.TimeEntry{EmployeeID: 999, ProjectID: project.ID, EntryDate: time.Now(), Hours: 8}
	if err := projRepo.AppendTimeEntry(ctx, entry); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Errorf("expected ErrEmployeeNotFound, got %v", err)
	}

	entry = &domain.TimeEntry{EmployeeID: emp.ID, ProjectID: 999, EntryDate: time.Now(), Hours: 8}
	if err := projRepo.AppendTimeEntry(ctx, entry); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}

	entry = &domain.TimeEntry{EmployeeID: emp.ID, ProjectID: project.ID, EntryDate: time.Now(), Hours: 8}
	if err := projRepo.AppendTimeEntry(ctx, entry); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	entries, err := projRepo.TimeEntries(ctx, project.ID)
	if err != nil {
		t.Fatalf("list entries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(entries))
	}
}
