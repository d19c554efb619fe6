package service

import (
	"context"
	"fmt"
	"time"

	"pdf-library/internal/domain"
	apperrors "pdf-library/pkg/errors"
)

const pdfContentType = "application/pdf"

// UploadService is the upload pipeline: it transfers one PDF's bytes to
// the object store in sequential chunks, registers the metadata row,
// and performs compensating deletion when the row insert fails after a
// successful transfer.
type UploadService struct {
	store       domain.ObjectStore
	repo        domain.FileRepository
	logger      domain.Logger
	chunkSize   int64
	maxFileSize int64
}

// NewUploadService creates a new upload service
func NewUploadService(
	store domain.ObjectStore,
	repo domain.FileRepository,
	logger domain.Logger,
	chunkSize int64,
	maxFileSize int64,
) *UploadService {
	if chunkSize <= 0 {
		chunkSize = 1024 * 1024
	}
	return &UploadService{
		store:       store,
		repo:        repo,
		logger:      logger,
		chunkSize:   chunkSize,
		maxFileSize: maxFileSize,
	}
}

// Upload transfers the payload and registers its metadata. On success
// the returned record carries the server-assigned id and created_at.
// On any failure after the first chunk write, removal of the partial
// object is attempted before the error is propagated; only the
// double-failure case (insert failed, cleanup failed) leaves an
// orphaned object behind, and that case is reported distinctly.
func (s *UploadService) Upload(
	ctx context.Context,
	input domain.UploadInput,
	onProgress domain.ProgressFunc,
) (record *domain.FileRecord, err error) {

	if err := s.validate(input); err != nil {
		return nil, err
	}

	storagePath := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), input.Name)

	total := int64(len(input.Payload))
	totalChunks := int((total + s.chunkSize - 1) / s.chunkSize)

	// Cleanup must run even when the caller's context is already gone.
	cleanupCtx := context.WithoutCancel(ctx)

	objectWritten := false
	cleanupDone := false
	defer func() {
		if !objectWritten || cleanupDone {
			return
		}
		if remErr := s.store.Remove(cleanupCtx, []string{storagePath}); remErr != nil {
			s.logger.Error("Orphaned object left in storage after failed upload", remErr,
				"storage_path", storagePath,
			)
		}
	}()

	for i := 0; i < totalChunks; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, apperrors.NewTransferError("upload cancelled", ctxErr)
		}

		end := int64(i+1) * s.chunkSize
		if end > total {
			end = total
		}

		// Each step rewrites the accumulated object so far under the
		// same key with an upsert policy, so a retried write never
		// fails on a pre-existing object.
		putOpts := domain.PutOptions{Upsert: true, ContentType: input.ContentType}
		if err := s.store.Put(ctx, storagePath, input.Payload[:end], putOpts); err != nil {
			s.logger.Error("Chunk write failed", err,
				"storage_path", storagePath,
				"chunk", i+1,
				"total_chunks", totalChunks,
			)
			return nil, apperrors.NewTransferError("upload failed", err)
		}
		objectWritten = true

		if onProgress != nil {
			onProgress(float64(i+1) / float64(totalChunks) * 100)
		}
	}

	created, insertErr := s.repo.Insert(ctx, &domain.FileRecord{
		Name:        input.Name,
		Size:        total,
		StoragePath: storagePath,
		ContentType: input.ContentType,
	})
	if insertErr != nil {
		// Compensating deletion restores the no-orphan invariant.
		cleanupDone = true
		if remErr := s.store.Remove(cleanupCtx, []string{storagePath}); remErr != nil {
			s.logger.Error("Compensating deletion failed; object orphaned in storage", remErr,
				"storage_path", storagePath,
				"insert_error", insertErr,
			)
			return nil, apperrors.NewOrphanedObjectError("metadata write failed", insertErr, remErr)
		}
		return nil, apperrors.NewMetadataError("metadata write failed", insertErr)
	}
	cleanupDone = true

	s.logger.Info("File uploaded",
		"id", created.ID,
		"name", created.Name,
		"size", created.Size,
		"storage_path", created.StoragePath,
		"chunks", totalChunks,
	)

	return created, nil
}

// validate enforces the input contract before any network call.
func (s *UploadService) validate(input domain.UploadInput) error {
	if len(input.Payload) == 0 {
		return apperrors.NewValidationError("no payload supplied")
	}
	if input.Name == "" {
		return apperrors.NewValidationError("file name is required")
	}
	if input.ContentType != pdfContentType {
		return apperrors.NewValidationError("only PDF files are allowed", "got content type "+input.ContentType)
	}
	if s.maxFileSize > 0 && int64(len(input.Payload)) > s.maxFileSize {
		return apperrors.NewValidationError("file too large",
			fmt.Sprintf("size %d exceeds limit %d", len(input.Payload), s.maxFileSize))
	}
	return nil
}
