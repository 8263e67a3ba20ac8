package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"filehub/internal/access"
	"filehub/internal/model"
	"filehub/internal/repository"
	"filehub/internal/storage"
)

// FileService defines the file use cases. Every operation takes the acting
// identity and gates on the access rules before touching storage.
type FileService interface {
	// Upload stores the content in the object store and records its
	// metadata. The stored key is a generated name; the original filename is
	// kept in the metadata map. The file's department is snapshotted from
	// the actor's department at upload time.
	Upload(ctx context.Context, actor *model.Identity, r io.Reader, originalFilename, contentType string, size int64, visibility model.Visibility, meta map[string]string) (*model.File, error)

	// List returns the files the actor may list.
	List(ctx context.Context, actor *model.Identity) ([]model.File, error)

	// Get returns a single file record the actor may view.
	Get(ctx context.Context, actor *model.Identity, id int64) (*model.File, error)

	// Download issues a pre-signed URL for the file and increments its
	// download counter.
	Download(ctx context.Context, actor *model.Identity, id int64) (string, error)

	// Delete removes the object (best-effort) and its metadata record.
	Delete(ctx context.Context, actor *model.Identity, id int64) error
}

type fileService struct {
	store         storage.Storage
	files         repository.FileRepository
	presignExpiry time.Duration
}

// NewFileService constructs a new FileService. presignExpiry bounds the
// lifetime of issued download URLs.
func NewFileService(store storage.Storage, files repository.FileRepository, presignExpiry time.Duration) FileService {
	return &fileService{store: store, files: files, presignExpiry: presignExpiry}
}

var errReaderNil = errors.New("reader is nil")

func (s *fileService) Upload(ctx context.Context, actor *model.Identity, r io.Reader, originalFilename, contentType string, size int64, visibility model.Visibility, meta map[string]string) (*model.File, error) {
	if r == nil {
		return nil, errReaderNil
	}
	if !visibility.Valid() {
		return nil, ErrVisibilityRequired
	}
	if !access.CanCreateWithVisibility(actor.Role, visibility) {
		return nil, ErrInvalidVisibility
	}
	if err := access.CheckUploadLimits(actor.Role, size, contentType); err != nil {
		return nil, err
	}

	// Generated key avoids silent overwrites between same-named uploads.
	ext := filepath.Ext(originalFilename)
	key := filepath.ToSlash(filepath.Join("files", uuid.New().String()+ext))

	if meta == nil {
		meta = make(map[string]string)
	}
	meta["original-filename"] = originalFilename

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata:    meta,
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	f := &model.File{
		Filename:     key,
		Size:         objInfo.Size,
		MimeType:     contentType,
		Visibility:   visibility,
		OwnerID:      actor.ID,
		DepartmentID: actor.DepartmentID,
		Metadata:     meta,
	}
	stored, err := s.files.Create(ctx, f)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *fileService) List(ctx context.Context, actor *model.Identity) ([]model.File, error) {
	return s.files.List(ctx, access.ScopeFor(actor))
}

func (s *fileService) Get(ctx context.Context, actor *model.Identity, id int64) (*model.File, error) {
	f, err := s.files.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !access.CanView(actor, f) {
		return nil, ErrForbidden
	}
	return f, nil
}

func (s *fileService) Download(ctx context.Context, actor *model.Identity, id int64) (string, error) {
	f, err := s.Get(ctx, actor, id)
	if err != nil {
		return "", err
	}

	url, err := s.store.PresignGet(ctx, f.Filename, s.presignExpiry)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}

	if err := s.files.IncrementDownloadCount(ctx, f.ID); err != nil {
		return "", fmt.Errorf("increment download count: %w", err)
	}
	return url, nil
}

func (s *fileService) Delete(ctx context.Context, actor *model.Identity, id int64) error {
	f, err := s.files.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if !access.CanDelete(actor, f) {
		return ErrForbidden
	}

	// Best-effort: a missing or unreachable object never blocks record
	// deletion.
	if err := s.store.Delete(ctx, f.Filename); err != nil {
		logIgnoredStorageDelete(f.Filename, err)
	}

	return s.files.Delete(ctx, f.ID)
}

func logIgnoredStorageDelete(key string, err error) {
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"level": "warn",
		"msg":   "storage_delete_ignored",
		"key":   key,
		"error": err.Error(),
	}
	if b, mErr := json.Marshal(entry); mErr == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
