package model

// File is a stored file's metadata record. Filename doubles as the
// object-store key. DepartmentID is snapshotted from the uploader's
// department at upload time and is not live-linked to later reassignments.
type File struct {
	ID         int64      `json:"id"`
	Filename   string     `json:"filename"`
	Size       int64      `json:"size"`
	MimeType   string     `json:"mime_type"`
	Visibility Visibility `json:"visibility"`
	OwnerID    int64      `json:"owner_id"`
	// DepartmentID is nil when the uploader had no department.
	DepartmentID  *int64            `json:"department_id"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	DownloadCount int64             `json:"download_count"`
}
