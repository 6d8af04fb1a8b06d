package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/juanmillal/proyecto-grupo-11/internal/credential"
	"github.com/juanmillal/proyecto-grupo-11/internal/domain"
	"github.com/juanmillal/proyecto-grupo-11/internal/dto"
	"github.com/juanmillal/proyecto-grupo-11/internal/repository"
	"github.com/juanmillal/proyecto-grupo-11/internal/session"
)

// AuthService authenticates principals by rut and password and produces
// role-scoped sessions.
type AuthService interface {
	Login(ctx context.Context, rut, password string) (*session.Session, error)
	HasAdministrator(ctx context.Context) (bool, error)
	BootstrapAdministrator(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error)
}

type authService struct {
	empRepo    repository.EmployeeRepository
	empService EmployeeService
	logger     *slog.Logger
}

// NewAuthService creates a new service instance.
func NewAuthService(empRepo repository.EmployeeRepository, empService EmployeeService, logger *slog.Logger) AuthService {
	return &authService{
		empRepo:    empRepo,
		empService: empService,
		logger:     logger,
	}
}

// Login looks up the stored digest and role behind the login key and verifies
// the password. An unknown rut and a rejected credential produce the same
// external error so the login path cannot be used to enumerate accounts; the
// distinction exists only in the debug log.
func (s *authService) Login(ctx context.Context, rut, password string) (*session.Session, error) {
	emp, err := s.empRepo.GetByRut(ctx, rut)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			s.logger.Debug("login rejected: principal not found", slog.String("rut", rut))
			return nil, domain.ErrAuthFailed
		}
		return nil, err
	}

	if emp.PasswordDigest == "" || !credential.Verify(password, emp.PasswordDigest) {
		s.logger.Debug("login rejected: credential mismatch", slog.String("rut", rut))
		return nil, domain.ErrAuthFailed
	}

	s.logger.Info("login accepted", slog.String("rut", rut), slog.String("role", string(emp.Role)))
	return session.New(rut, emp.Role), nil
}

func (s *authService) HasAdministrator(ctx context.Context) (bool, error) {
	return s.empRepo.HasAdministrator(ctx)
}

// BootstrapAdministrator creates the first administrator on an empty store.
// It refuses requests that would not leave an administrator behind: the
// system must never be reachable with zero admins on the login path.
func (s *authService) BootstrapAdministrator(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error) {
	if req.Rut == nil || *req.Rut == "" || req.Password == "" {
		return nil, errors.New("first administrator requires a rut and a password")
	}
	req.Role = string(domain.RoleAdmin)
	return s.empService.Create(ctx, req)
}
