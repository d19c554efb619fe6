package service

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"pdf-library/internal/domain"

	"github.com/gen2brain/go-fitz"
)

// renderDPI is the base density for a 1.0 scale factor.
const renderDPI = 72.0

// FitzRenderer implements domain.Renderer with MuPDF via go-fitz. It
// fetches the document over HTTP (the signed URL) and parses it from
// memory.
type FitzRenderer struct {
	client *http.Client
	logger domain.Logger
}

// NewFitzRenderer creates a new go-fitz backed renderer
func NewFitzRenderer(logger domain.Logger) domain.Renderer {
	return &FitzRenderer{
		client: &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}
}

// Open downloads the document and parses it.
func (r *FitzRenderer) Open(ctx context.Context, url string) (domain.RenderedDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("document fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read document body: %w", err)
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}

	r.logger.Debug("Parsed PDF document", "pages", doc.NumPage(), "bytes", len(data))
	return &fitzDocument{doc: doc}, nil
}

// fitzDocument adapts an open go-fitz document to
// domain.RenderedDocument.
type fitzDocument struct {
	doc *fitz.Document
}

func (d *fitzDocument) PageCount() int {
	return d.doc.NumPage()
}

// RenderPage renders a 1-indexed page; the scale factor maps to DPI.
func (d *fitzDocument) RenderPage(page int, scale float64) (image.Image, error) {
	if page < 1 || page > d.doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range 1..%d", page, d.doc.NumPage())
	}
	if scale <= 0 {
		scale = 1.0
	}
	img, err := d.doc.ImageDPI(page-1, renderDPI*scale)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", page, err)
	}
	return img, nil
}

func (d *fitzDocument) Close() error {
	return d.doc.Close()
}
