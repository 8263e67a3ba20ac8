package model

// Role is the closed set of account roles. Roles are not linearly ordered:
// capabilities are defined per role (see internal/access), so a MANAGER is not
// simply a subset or superset of ADMIN.
type Role string

const (
	RoleUser    Role = "USER"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// ParseRole converts a raw string (e.g. from a DB column or request payload)
// into a Role, reporting whether it is a known value.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}
