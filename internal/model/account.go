package model

// Account is a registered identity. Usernames are unique and immutable once
// created; role and department assignment mutate via admin operations.
// This is a pure domain model with no database-specific dependencies or tags.
type Account struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	// DepartmentID is nil while the account is not assigned to a department.
	DepartmentID *int64 `json:"department_id"`
}

// Identity is the authenticated view of an account used for authorization
// decisions. It is resolved fresh per request so role and department edits
// take effect without re-login.
type Identity struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Role         Role   `json:"role"`
	DepartmentID *int64 `json:"department_id"`
}

// Identity derives the authorization view of the account.
func (a *Account) Identity() *Identity {
	return &Identity{
		ID:           a.ID,
		Username:     a.Username,
		Role:         a.Role,
		DepartmentID: a.DepartmentID,
	}
}
