// Package handler provides HTTP handlers for the API.
package handler

import (
	"image/png"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"pdf-library/internal/domain"

	"github.com/gorilla/mux"
)

// FileHandler handles file-related HTTP requests
type FileHandler struct {
	uploader    domain.Uploader
	library     domain.Library
	viewer      domain.Viewer
	logger      domain.Logger
	maxFileSize int64
}

// NewFileHandler creates a new file handler
func NewFileHandler(
	uploader domain.Uploader,
	library domain.Library,
	viewer domain.Viewer,
	logger domain.Logger,
	maxFileSize int64,
) *FileHandler {
	return &FileHandler{
		uploader:    uploader,
		library:     library,
		viewer:      viewer,
		logger:      logger,
		maxFileSize: maxFileSize,
	}
}

// ListFiles handles the library listing
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.library.ListFiles(r.Context())
	if err != nil {
		h.logger.Error("Failed to list files", err)
		writeAppError(w, err)
		return
	}

	// Ensure JSON is [] not null when the library is empty.
	if files == nil {
		files = make([]*domain.FileRecord, 0)
	}

	writeJSON(w, http.StatusOK, files)
}

// UploadFile handles a PDF upload. MIME type and size are enforced
// here, before the pipeline is invoked: a rejected payload causes zero
// calls to the backing services.
func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	// Sanitize filename (strip any path components)
	originalName := strings.TrimSpace(filepath.Base(header.Filename))
	if originalName == "" || originalName == "." || originalName == string(filepath.Separator) {
		originalName = "document.pdf"
	}

	contentType := header.Header.Get("Content-Type")
	if contentType != "application/pdf" || strings.ToLower(filepath.Ext(originalName)) != ".pdf" {
		writeError(w, http.StatusBadRequest, "Only PDF files are allowed")
		return
	}

	if header.Size > h.maxFileSize {
		writeError(w, http.StatusBadRequest, "File too large. Maximum file size is 10MB.")
		return
	}

	payload, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read file")
		return
	}
	if int64(len(payload)) > h.maxFileSize {
		writeError(w, http.StatusBadRequest, "File too large. Maximum file size is 10MB.")
		return
	}

	record, err := h.uploader.Upload(r.Context(), domain.UploadInput{
		Name:        originalName,
		ContentType: contentType,
		Payload:     payload,
	}, func(percent float64) {
		h.logger.Debug("Upload progress", "name", originalName, "percent", int(percent))
	})
	if err != nil {
		h.logger.Error("Upload failed", err, "name", originalName)
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// GetFile returns one record together with a signed URL for its bytes.
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		writeError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	record, url, err := h.viewer.ResolveFile(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}

	type resp struct {
		File *domain.FileRecord `json:"file"`
		URL  string             `json:"url"`
	}
	writeJSON(w, http.StatusOK, resp{File: record, URL: url})
}

// RenderPage renders one page of a document as PNG. The scale query
// parameter is snapped and clamped to the viewer's zoom bounds.
func (h *FileHandler) RenderPage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	page, err := strconv.Atoi(vars["page"])
	if err != nil || page < 1 {
		writeError(w, http.StatusBadRequest, "Page must be a positive number")
		return
	}

	session := h.viewer.OpenDocument(r.Context(), id)
	defer session.Close()

	switch session.State() {
	case domain.ViewerNotFound:
		writeAppError(w, session.Err())
		return
	case domain.ViewerLoadError:
		h.logger.Error("Viewer failed to load document", session.Err(), "id", id)
		writeAppError(w, session.Err())
		return
	}

	if page > session.TotalPages() {
		writeError(w, http.StatusBadRequest, "Page out of range")
		return
	}
	session.GoToPage(page)

	if raw := r.URL.Query().Get("scale"); raw != "" {
		scale, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid scale")
			return
		}
		session.SetZoom(scale)
	}

	img, err := session.RenderCurrentPage()
	if err != nil {
		h.logger.Error("Page render failed", err, "id", id, "page", page)
		writeError(w, http.StatusInternalServerError, "Failed to render page")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		h.logger.Error("Failed to encode page image", err, "id", id, "page", page)
	}
}

// DeleteFile removes a file's metadata row and stored object
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		writeError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	if err := h.library.DeleteFile(r.Context(), id); err != nil {
		h.logger.Error("Delete failed", err, "id", id)
		writeAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
