package domain

import "errors"

// Business error taxonomy. Store-level errors are mapped to one of these at the
// repository boundary; raw driver errors never cross it.
var (
	ErrConnection             = errors.New("database connection is not available")
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrDepartmentNotFound     = errors.New("department not found")
	ErrProjectNotFound        = errors.New("project not found")
	ErrDuplicateRut           = errors.New("employee with this rut already exists")
	ErrInvalidRole            = errors.New("role must be one of: admin, usuario")
	ErrAuthFailed             = errors.New("authentication rejected")
	ErrPermissionDenied       = errors.New("operation not permitted for this session")
	ErrEmployeeHasTimeEntries = errors.New("employee still has time entries and cannot be deleted")
)
