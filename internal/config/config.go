package config

import (
	"os"
	"strconv"

	"pdf-library/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort    string
	MaxFileSize   int64
	ChunkSize     int64
	SignedURLTTL  int
	LogLevel      string
	SupabaseURL   string
	SupabaseKey   string
	StorageBucket string
	FilesTable    string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:    getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		MaxFileSize:   getEnvInt64OrDefault("MAX_FILE_SIZE", 10*1024*1024), // 10MB policy limit
		ChunkSize:     getEnvInt64OrDefault("CHUNK_SIZE", 1024*1024),       // 1MB transfer chunks
		SignedURLTTL:  getEnvIntOrDefault("SIGNED_URL_TTL", 3600),          // 1 hour expiry
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		SupabaseURL:   getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:   getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		StorageBucket: getEnvOrDefault("STORAGE_BUCKET", "pdfs"),
		FilesTable:    getEnvOrDefault("FILES_TABLE", "pdf_files"),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetChunkSize returns the upload transfer chunk size
func (c *AppConfig) GetChunkSize() int64 {
	return c.ChunkSize
}

// GetSignedURLTTL returns the signed URL expiry in seconds
func (c *AppConfig) GetSignedURLTTL() int {
	return c.SignedURLTTL
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetStorageBucket returns the object storage bucket name
func (c *AppConfig) GetStorageBucket() string {
	return c.StorageBucket
}

// GetFilesTable returns the metadata table name
func (c *AppConfig) GetFilesTable() string {
	return c.FilesTable
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
