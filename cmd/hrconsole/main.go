package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/juanmillal/proyecto-grupo-11/internal/config"
	"github.com/juanmillal/proyecto-grupo-11/internal/dto"
	"github.com/juanmillal/proyecto-grupo-11/internal/menu"
	"github.com/juanmillal/proyecto-grupo-11/internal/prompt"
	"github.com/juanmillal/proyecto-grupo-11/internal/remote"
	"github.com/juanmillal/proyecto-grupo-11/internal/repository"
	"github.com/juanmillal/proyecto-grupo-11/internal/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fatal", slog.Any("error", err))
		os.Exit(1)
	}
}

// run keeps all failure paths behind the deferred close: the store
// connection is released no matter how the session ends.
func run(logger *slog.Logger) error {
	cfg := config.Load()

	db, err := repository.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := repository.Close(db); closeErr != nil {
			logger.Error("failed to close database", slog.Any("error", closeErr))
		}
	}()

	if err := repository.Migrate(db, cfg.Database.Driver); err != nil {
		return err
	}

	empRepo := repository.NewEmployeeRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	projRepo := repository.NewProjectRepository(db)

	empService := service.NewEmployeeService(empRepo)
	deptService := service.NewDepartmentService(deptRepo, empRepo)
	projService := service.NewProjectService(projRepo)
	authService := service.NewAuthService(empRepo, empService, logger)

	input := prompt.New(os.Stdin, os.Stdout)
	remoteClient := remote.NewClient(cfg.Remote)

	ctx := context.Background()

	if err := ensureAdministrator(ctx, authService, input, os.Stdout); err != nil {
		return err
	}

	m := menu.New(authService, empService, deptService, projService, remoteClient, input, os.Stdout, logger)
	logger.Info("console started", slog.String("driver", cfg.Database.Driver))
	return m.Run(ctx)
}

// ensureAdministrator forces creation of a first administrator on an empty
// store so the login path is never unreachable.
func ensureAdministrator(ctx context.Context, auth service.AuthService, input *prompt.Reader, out io.Writer) error {
	hasAdmin, err := auth.HasAdministrator(ctx)
	if err != nil {
		return err
	}
	if hasAdmin {
		return nil
	}

	fmt.Fprintln(out, "no administrator found, create the first one")
	rut := input.Text("rut")
	req := &dto.CreateEmployeeRequest{
		Name:     input.Text("name"),
		Address:  input.Text("address"),
		Phone:    input.Phone("phone"),
		Email:    input.Email("email"),
		Salary:   input.Float("salary"),
		Rut:      &rut,
		Password: input.Secret("password"),
	}

	admin, err := auth.BootstrapAdministrator(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "administrator %d created\n", admin.ID)
	return nil
}
