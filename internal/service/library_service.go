package service

import (
	"context"
	"errors"

	"pdf-library/internal/domain"
	apperrors "pdf-library/pkg/errors"
)

// LibraryService exposes the library listing and the delete operation.
type LibraryService struct {
	repo   domain.FileRepository
	store  domain.ObjectStore
	logger domain.Logger
}

// NewLibraryService creates a new library service
func NewLibraryService(repo domain.FileRepository, store domain.ObjectStore, logger domain.Logger) *LibraryService {
	return &LibraryService{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

// ListFiles returns all records ordered most recent first. An empty
// library is an empty slice, never an error.
func (s *LibraryService) ListFiles(ctx context.Context) ([]*domain.FileRecord, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewFetchError("failed to fetch files", err)
	}
	if records == nil {
		records = make([]*domain.FileRecord, 0)
	}
	return records, nil
}

// DeleteFile removes the metadata row first and the stored object
// second. Row-first ordering keeps "row implies object" intact at
// every step; an object left behind by a failed second step is the
// same degraded orphaned-object state as the upload double failure.
func (s *LibraryService) DeleteFile(ctx context.Context, id string) error {
	record, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrFileNotFound) {
		return apperrors.NewNotFoundError("file not found")
	}
	if err != nil {
		return apperrors.NewFetchError("failed to fetch file", err)
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return apperrors.NewMetadataError("failed to delete file record", err)
	}

	if err := s.store.Remove(ctx, []string{record.StoragePath}); err != nil {
		s.logger.Error("Object removal failed after row delete; object orphaned in storage", err,
			"id", id,
			"storage_path", record.StoragePath,
		)
		return apperrors.NewOrphanedObjectError("file record deleted but object removal failed", nil, err)
	}

	s.logger.Info("File deleted", "id", id, "storage_path", record.StoragePath)
	return nil
}
