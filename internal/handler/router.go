package handler

import (
	"net/http"

	"pdf-library/internal/domain"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(fileHandler *FileHandler, logger domain.Logger) http.Handler {
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"pdf-library"}`))
	}).Methods("GET")

	// Prometheus metrics
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(RequestLogging(logger))
	api.Use(Metrics())

	// File routes
	api.HandleFunc("/files", fileHandler.ListFiles).Methods("GET")
	api.HandleFunc("/files", fileHandler.UploadFile).Methods("POST")
	api.HandleFunc("/files/{id}", fileHandler.GetFile).Methods("GET")
	api.HandleFunc("/files/{id}", fileHandler.DeleteFile).Methods("DELETE")
	api.HandleFunc("/files/{id}/pages/{page}", fileHandler.RenderPage).Methods("GET")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173", // Vite dev server
			"http://localhost:4173", // Vite preview
			"http://localhost:3000", // Alternative dev port
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
		ExposedHeaders: []string{
			"X-Request-ID",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
