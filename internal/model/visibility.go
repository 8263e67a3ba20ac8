package model

// Visibility controls the default viewer set of a file.
type Visibility string

const (
	// VisibilityPrivate restricts viewing to the owner (and ADMIN).
	VisibilityPrivate Visibility = "PRIVATE"
	// VisibilityDepartment opens viewing to the file's department.
	VisibilityDepartment Visibility = "DEPARTMENT"
	// VisibilityPublic opens viewing to every authenticated account.
	VisibilityPublic Visibility = "PUBLIC"
)

// Valid reports whether v is one of the known visibility values.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPrivate, VisibilityDepartment, VisibilityPublic:
		return true
	}
	return false
}

// ParseVisibility converts a raw string into a Visibility, reporting whether
// it is a known value.
func ParseVisibility(s string) (Visibility, bool) {
	v := Visibility(s)
	return v, v.Valid()
}
