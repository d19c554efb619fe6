package domain

import (
	"context"
	"time"
)

// FileRecord represents one uploaded PDF's metadata row.
// Records are immutable after creation: only create and delete exist.
type FileRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	StoragePath string    `json:"storage_path"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// UploadInput is the payload handed to the upload pipeline after the
// caller has extracted it from the request.
type UploadInput struct {
	Name        string
	ContentType string
	Payload     []byte
}

// ProgressFunc receives upload progress as a percentage in [0,100].
// It is optional and must never influence the outcome of an upload.
type ProgressFunc func(percent float64)

// Uploader is the upload pipeline: it transfers one PDF's bytes to the
// object store and registers its metadata as a single logical operation.
type Uploader interface {
	Upload(ctx context.Context, input UploadInput, onProgress ProgressFunc) (*FileRecord, error)
}

// Library lists and deletes uploaded files.
type Library interface {
	ListFiles(ctx context.Context) ([]*FileRecord, error)
	DeleteFile(ctx context.Context, id string) error
}

// FileRepository defines persistence operations for file metadata rows.
type FileRepository interface {
	// Insert stores a new row and returns it with the server-assigned
	// id and created_at.
	Insert(ctx context.Context, record *FileRecord) (*FileRecord, error)
	// ListAll returns all rows ordered by created_at descending. An
	// empty table yields an empty slice, not an error.
	ListAll(ctx context.Context) ([]*FileRecord, error)
	// GetByID returns ErrFileNotFound when no row exists for id.
	GetByID(ctx context.Context, id string) (*FileRecord, error)
	DeleteByID(ctx context.Context, id string) error
}

// PutOptions control a single object write.
type PutOptions struct {
	Upsert      bool
	ContentType string
}

// ObjectStore defines the consumed object-storage capability.
type ObjectStore interface {
	Put(ctx context.Context, path string, data []byte, opts PutOptions) error
	Remove(ctx context.Context, paths []string) error
	CreateSignedURL(ctx context.Context, path string, expirySeconds int) (string, error)
}
