// Package access contains the pure authorization decision functions.
// Every mutation in the service layer is gated by one of these; none of them
// touch storage or carry side effects.
package access

import (
	"errors"

	"filehub/internal/model"
)

var (
	// ErrTooLarge is returned when an upload exceeds the role's byte limit.
	ErrTooLarge = errors.New("file exceeds the size limit for this role")
	// ErrUnsupportedType is returned when the role may not upload the MIME type.
	ErrUnsupportedType = errors.New("file type is not allowed for this role")
)

const (
	// MimeTypePDF is the only MIME type a USER may upload.
	MimeTypePDF = "application/pdf"

	mib = int64(1) << 20

	// Upload size limits per role.
	UserUploadLimit    = 10 * mib
	ManagerUploadLimit = 50 * mib
	AdminUploadLimit   = 100 * mib
)

// UploadLimit returns the maximum upload size in bytes for the role.
func UploadLimit(role model.Role) int64 {
	switch role {
	case model.RoleAdmin:
		return AdminUploadLimit
	case model.RoleManager:
		return ManagerUploadLimit
	default:
		return UserUploadLimit
	}
}

// CanCreateWithVisibility reports whether the role may create a file with the
// requested visibility. USER is restricted to PRIVATE; MANAGER and ADMIN may
// pick any value.
func CanCreateWithVisibility(role model.Role, vis model.Visibility) bool {
	if role == model.RoleUser {
		return vis == model.VisibilityPrivate
	}
	return true
}

// CanView reports whether the actor may view the file's metadata and content.
//
// ADMIN sees everything. PUBLIC files are visible to all. PRIVATE files are
// owner-only. DEPARTMENT files are visible to members of the file's
// department, and to any MANAGER who has a department assigned; the MANAGER
// grant spans all departments (deliberate broad grant, see CanDelete for the
// asymmetry).
func CanView(actor *model.Identity, f *model.File) bool {
	if actor.Role == model.RoleAdmin {
		return true
	}
	switch f.Visibility {
	case model.VisibilityPublic:
		return true
	case model.VisibilityPrivate:
		return actor.ID == f.OwnerID
	case model.VisibilityDepartment:
		if actor.DepartmentID == nil {
			return false
		}
		if actor.Role == model.RoleManager {
			return true
		}
		return f.DepartmentID != nil && *actor.DepartmentID == *f.DepartmentID
	}
	return false
}

// CanDelete reports whether the actor may delete the file. ADMIN and the
// owner always may. A MANAGER may only when the file belongs to the manager's
// own department; the cross-department visibility grant does not extend to
// deletion.
func CanDelete(actor *model.Identity, f *model.File) bool {
	if actor.Role == model.RoleAdmin {
		return true
	}
	if actor.ID == f.OwnerID {
		return true
	}
	if actor.Role == model.RoleManager {
		return actor.DepartmentID != nil && f.DepartmentID != nil &&
			*actor.DepartmentID == *f.DepartmentID
	}
	return false
}

// CheckUploadLimits validates size and MIME type against the role's limits.
func CheckUploadLimits(role model.Role, size int64, mimeType string) error {
	if size > UploadLimit(role) {
		return ErrTooLarge
	}
	if role == model.RoleUser && mimeType != MimeTypePDF {
		return ErrUnsupportedType
	}
	return nil
}

// ListScope describes the subset of files an actor may list. When All is set
// the query is unfiltered; otherwise the repository restricts rows to
// PUBLIC files, DEPARTMENT files of the actor's department, and the actor's
// own files.
type ListScope struct {
	All          bool
	OwnerID      int64
	DepartmentID *int64
}

// ScopeFor returns the listing scope for the actor. ADMIN and MANAGER list
// everything; USER gets the restricted subset.
func ScopeFor(actor *model.Identity) ListScope {
	if actor.Role == model.RoleAdmin || actor.Role == model.RoleManager {
		return ListScope{All: true}
	}
	return ListScope{OwnerID: actor.ID, DepartmentID: actor.DepartmentID}
}
