package domain

import (
	storage_go "github.com/supabase-community/storage-go"
	"github.com/supabase-community/supabase-go"
)

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetMaxFileSize() int64
	GetChunkSize() int64
	GetSignedURLTTL() int
	GetLogLevel() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetStorageBucket() string
	GetFilesTable() string
}

// SupabaseClient wraps the backend-as-a-service connection.
type SupabaseClient interface {
	Initialize() error
	DB() *supabase.Client
	Storage() *storage_go.Client
}
