package service

import "errors"

// Sentinel errors shared by the services. Handlers translate these into the
// HTTP error taxonomy; anything else is a server error.
var (
	// ErrInvalidCredentials covers unknown usernames and password mismatches
	// alike, so login failures do not reveal which part was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnknownSubject means a valid token references an account that no
	// longer exists.
	ErrUnknownSubject = errors.New("token subject no longer exists")

	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	ErrUsernameTaken      = errors.New("username already exists")
	ErrDepartmentExists   = errors.New("department name already exists")
	ErrNotInDepartment    = errors.New("user is not in this department")
	ErrHasMembers         = errors.New("department still has assigned members")
	ErrInvalidVisibility  = errors.New("visibility not allowed for this role")
	ErrVisibilityRequired = errors.New("visibility value is unknown")
)
