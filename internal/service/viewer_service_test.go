package service

import (
	"context"
	"errors"
	"image"
	"testing"

	"pdf-library/internal/domain"
	apperrors "pdf-library/pkg/errors"
)

type MockRenderedDocument struct {
	pages  int
	closed bool
}

func (d *MockRenderedDocument) PageCount() int { return d.pages }

func (d *MockRenderedDocument) RenderPage(page int, scale float64) (image.Image, error) {
	if page < 1 || page > d.pages {
		return nil, errors.New("page out of range")
	}
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func (d *MockRenderedDocument) Close() error {
	d.closed = true
	return nil
}

type MockRenderer struct {
	doc       *MockRenderedDocument
	openErr   error
	openedURL string
}

func (m *MockRenderer) Open(ctx context.Context, url string) (domain.RenderedDocument, error) {
	m.openedURL = url
	if m.openErr != nil {
		return nil, m.openErr
	}
	return m.doc, nil
}

func newViewerFixture(t *testing.T, pages int) (*ViewerService, *MockFileRepository, *MockObjectStore, *MockRenderer, *domain.FileRecord) {
	t.Helper()
	repo := NewMockFileRepository()
	store := NewMockObjectStore()
	renderer := &MockRenderer{doc: &MockRenderedDocument{pages: pages}}
	service := NewViewerService(repo, store, renderer, NewMockLogger(), 3600)

	path := "1700000000000-doc.pdf"
	_ = store.Put(context.Background(), path, []byte("%PDF-1.4"), domain.PutOptions{Upsert: true, ContentType: "application/pdf"})
	record, err := repo.Insert(context.Background(), &domain.FileRecord{
		Name:        "doc.pdf",
		Size:        8,
		StoragePath: path,
		ContentType: "application/pdf",
	})
	if err != nil {
		t.Fatalf("fixture insert failed: %v", err)
	}
	return service, repo, store, renderer, record
}

func TestViewerService_OpenDocument_Ready(t *testing.T) {
	service, _, _, renderer, record := newViewerFixture(t, 5)

	session := service.OpenDocument(context.Background(), record.ID)
	defer session.Close()

	if session.State() != domain.ViewerReady {
		t.Fatalf("expected ready state, got %s (err %v)", session.State(), session.Err())
	}
	if session.TotalPages() != 5 {
		t.Errorf("expected 5 pages, got %d", session.TotalPages())
	}
	if session.Record().ID != record.ID {
		t.Errorf("expected record %s, got %s", record.ID, session.Record().ID)
	}
	if session.FileURL() == "" {
		t.Error("expected a signed URL")
	}
	if renderer.openedURL != session.FileURL() {
		t.Errorf("expected renderer to open %s, got %s", session.FileURL(), renderer.openedURL)
	}
	if session.CurrentPage() != 1 {
		t.Errorf("expected current page 1, got %d", session.CurrentPage())
	}
}

func TestViewerService_OpenDocument_NotFound(t *testing.T) {
	service, _, _, _, _ := newViewerFixture(t, 5)

	session := service.OpenDocument(context.Background(), "missing")

	if session.State() != domain.ViewerNotFound {
		t.Fatalf("expected not found state, got %s", session.State())
	}
	if !apperrors.IsType(session.Err(), apperrors.ErrorTypeNotFound) {
		t.Errorf("expected not found error, got %v", session.Err())
	}
}

func TestViewerService_OpenDocument_SigningFailure(t *testing.T) {
	service, _, store, _, record := newViewerFixture(t, 5)
	store.signErr = errors.New("signing rejected")

	session := service.OpenDocument(context.Background(), record.ID)

	if session.State() != domain.ViewerLoadError {
		t.Fatalf("expected load error state, got %s", session.State())
	}
	if !apperrors.IsType(session.Err(), apperrors.ErrorTypeRender) {
		t.Errorf("expected render error, got %v", session.Err())
	}
}

func TestViewerService_OpenDocument_ParseFailure(t *testing.T) {
	service, _, _, renderer, record := newViewerFixture(t, 5)
	renderer.openErr = errors.New("not a pdf")

	session := service.OpenDocument(context.Background(), record.ID)

	if session.State() != domain.ViewerLoadError {
		t.Fatalf("expected load error state, got %s", session.State())
	}
	if !apperrors.IsType(session.Err(), apperrors.ErrorTypeRender) {
		t.Errorf("expected render error, got %v", session.Err())
	}
}

func TestViewerService_ResolveFile(t *testing.T) {
	service, _, store, _, record := newViewerFixture(t, 5)

	got, url, err := service.ResolveFile(context.Background(), record.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.ID != record.ID {
		t.Errorf("expected record %s, got %s", record.ID, got.ID)
	}
	if url != store.signedURL {
		t.Errorf("expected url %s, got %s", store.signedURL, url)
	}
}

func TestViewerService_ResolveFile_NotFound(t *testing.T) {
	service, _, _, _, _ := newViewerFixture(t, 5)

	_, _, err := service.ResolveFile(context.Background(), "missing")
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}
