package domain

import (
	"context"
	"image"
	"math"
)

// ViewerState models the single-document viewer lifecycle.
type ViewerState string

const (
	ViewerLoading   ViewerState = "loading"
	ViewerReady     ViewerState = "ready"
	ViewerNotFound  ViewerState = "not_found"
	ViewerLoadError ViewerState = "load_error"
)

// Zoom bounds and step for the viewer.
const (
	MinZoom     = 0.5
	MaxZoom     = 2.5
	ZoomStep    = 0.1
	DefaultZoom = 1.0
)

// RenderedDocument is a parsed PDF held open by the rendering library.
type RenderedDocument interface {
	PageCount() int
	// RenderPage renders a 1-indexed page at the given scale factor.
	RenderPage(page int, scale float64) (image.Image, error)
	Close() error
}

// Renderer fetches a document from a URL and parses it for rendering.
type Renderer interface {
	Open(ctx context.Context, url string) (RenderedDocument, error)
}

// Viewer defines the use-case operations behind the single-document
// view.
type Viewer interface {
	// ResolveFile returns the record and a fresh signed URL.
	ResolveFile(ctx context.Context, id string) (*FileRecord, string, error)
	// OpenDocument runs the full load sequence; the outcome is carried
	// on the returned session's state.
	OpenDocument(ctx context.Context, id string) *ViewerSession
}

// ViewerSession holds one document's view state. It starts in
// ViewerLoading and moves to exactly one of Ready, NotFound or
// LoadError; none of those are terminal in the sense of cleanup, the
// session simply stays there until discarded.
type ViewerSession struct {
	state   ViewerState
	record  *FileRecord
	fileURL string
	doc     RenderedDocument
	err     error

	currentPage int
	zoomLevel   float64
}

// NewViewerSession creates a session in the Loading state.
func NewViewerSession() *ViewerSession {
	return &ViewerSession{
		state:       ViewerLoading,
		currentPage: 1,
		zoomLevel:   DefaultZoom,
	}
}

// MarkNotFound records that no FileRecord exists for the requested id.
func (s *ViewerSession) MarkNotFound(err error) {
	s.state = ViewerNotFound
	s.err = err
}

// MarkLoadError records a signing, fetch or parse failure.
func (s *ViewerSession) MarkLoadError(err error) {
	s.state = ViewerLoadError
	s.err = err
}

// MarkReady transitions the session to Ready. Page navigation becomes
// possible only now, once the document's page count is known.
func (s *ViewerSession) MarkReady(record *FileRecord, fileURL string, doc RenderedDocument) {
	s.state = ViewerReady
	s.record = record
	s.fileURL = fileURL
	s.doc = doc
	s.currentPage = 1
}

func (s *ViewerSession) State() ViewerState { return s.state }

func (s *ViewerSession) Record() *FileRecord { return s.record }

func (s *ViewerSession) FileURL() string { return s.fileURL }

func (s *ViewerSession) Err() error { return s.err }

func (s *ViewerSession) CurrentPage() int { return s.currentPage }

func (s *ViewerSession) ZoomLevel() float64 { return s.zoomLevel }

// TotalPages returns 0 until the document has been parsed.
func (s *ViewerSession) TotalPages() int {
	if s.doc == nil {
		return 0
	}
	return s.doc.PageCount()
}

// GoToPage moves to a 1-indexed page. Out-of-bounds requests are
// ignored, and navigation is disabled until the page count is known.
func (s *ViewerSession) GoToPage(page int) {
	total := s.TotalPages()
	if s.state != ViewerReady || total == 0 {
		return
	}
	if page < 1 || page > total {
		return
	}
	s.currentPage = page
}

func (s *ViewerSession) NextPage() { s.GoToPage(s.currentPage + 1) }

func (s *ViewerSession) PreviousPage() { s.GoToPage(s.currentPage - 1) }

func (s *ViewerSession) ZoomIn() { s.adjustZoom(ZoomStep) }

func (s *ViewerSession) ZoomOut() { s.adjustZoom(-ZoomStep) }

// SetZoom sets an absolute zoom level, snapped to the 0.1 grid and
// clamped to the bounds.
func (s *ViewerSession) SetZoom(level float64) {
	if s.state != ViewerReady {
		return
	}
	level = math.Round(level*10) / 10
	if level < MinZoom {
		level = MinZoom
	}
	if level > MaxZoom {
		level = MaxZoom
	}
	s.zoomLevel = level
}

// adjustZoom applies a zoom delta, ignoring requests that would cross
// the [MinZoom, MaxZoom] bounds. Values are kept on the 0.1 grid so
// repeated steps land exactly on the bounds.
func (s *ViewerSession) adjustZoom(delta float64) {
	if s.state != ViewerReady {
		return
	}
	level := math.Round((s.zoomLevel+delta)*10) / 10
	if level < MinZoom || level > MaxZoom {
		return
	}
	s.zoomLevel = level
}

// RenderCurrentPage renders the current page at the current zoom level.
func (s *ViewerSession) RenderCurrentPage() (image.Image, error) {
	if s.state != ViewerReady || s.doc == nil {
		return nil, ErrViewerNotReady
	}
	return s.doc.RenderPage(s.currentPage, s.zoomLevel)
}

// Close releases the parsed document, if any.
func (s *ViewerSession) Close() error {
	if s.doc == nil {
		return nil
	}
	return s.doc.Close()
}
