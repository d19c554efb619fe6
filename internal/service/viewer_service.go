package service

import (
	"context"
	"errors"

	"pdf-library/internal/domain"
	apperrors "pdf-library/pkg/errors"
)

// ViewerService loads one document for viewing: record fetch, signed
// URL, then a parse by the rendering library.
type ViewerService struct {
	repo         domain.FileRepository
	store        domain.ObjectStore
	renderer     domain.Renderer
	logger       domain.Logger
	signedURLTTL int
}

// NewViewerService creates a new viewer service
func NewViewerService(
	repo domain.FileRepository,
	store domain.ObjectStore,
	renderer domain.Renderer,
	logger domain.Logger,
	signedURLTTL int,
) *ViewerService {
	if signedURLTTL <= 0 {
		signedURLTTL = 3600
	}
	return &ViewerService{
		repo:         repo,
		store:        store,
		renderer:     renderer,
		logger:       logger,
		signedURLTTL: signedURLTTL,
	}
}

// ResolveFile returns the record and a signed URL without parsing the
// document. This is the viewer's data fetch; rendering happens
// separately, page by page.
func (s *ViewerService) ResolveFile(ctx context.Context, id string) (*domain.FileRecord, string, error) {
	record, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrFileNotFound) {
		return nil, "", apperrors.NewNotFoundError("file not found")
	}
	if err != nil {
		return nil, "", apperrors.NewFetchError("failed to fetch file", err)
	}

	url, err := s.store.CreateSignedURL(ctx, record.StoragePath, s.signedURLTTL)
	if err != nil {
		return nil, "", apperrors.NewRenderError("could not retrieve file", err)
	}

	return record, url, nil
}

// OpenDocument runs the full viewer load sequence and returns the
// session in its resulting state. Errors are carried on the session
// rather than returned, mirroring the state machine: the caller
// inspects State() and Err(). The caller owns the session and must
// Close it.
func (s *ViewerService) OpenDocument(ctx context.Context, id string) *domain.ViewerSession {
	session := domain.NewViewerSession()

	record, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrFileNotFound) {
		session.MarkNotFound(apperrors.NewNotFoundError("file not found"))
		return session
	}
	if err != nil {
		session.MarkLoadError(apperrors.NewFetchError("failed to fetch file", err))
		return session
	}

	url, err := s.store.CreateSignedURL(ctx, record.StoragePath, s.signedURLTTL)
	if err != nil {
		session.MarkLoadError(apperrors.NewRenderError("could not retrieve file", err))
		return session
	}

	doc, err := s.renderer.Open(ctx, url)
	if err != nil {
		s.logger.Error("Failed to open document for rendering", err, "id", id)
		session.MarkLoadError(apperrors.NewRenderError("failed to load PDF document", err))
		return session
	}

	session.MarkReady(record, url, doc)
	s.logger.Debug("Document ready", "id", id, "pages", session.TotalPages())
	return session
}
