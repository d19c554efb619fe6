package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"pdf-library/internal/domain"

	"github.com/supabase-community/postgrest-go"
)

// SupabaseFileRepository implements domain.FileRepository on top of a
// postgrest table.
type SupabaseFileRepository struct {
	supabaseClient domain.SupabaseClient
	table          string
	logger         domain.Logger
}

// NewSupabaseFileRepository creates a new Supabase file repository
func NewSupabaseFileRepository(supabaseClient domain.SupabaseClient, table string, logger domain.Logger) domain.FileRepository {
	return &SupabaseFileRepository{
		supabaseClient: supabaseClient,
		table:          table,
		logger:         logger,
	}
}

// Insert stores one metadata row and returns it with the
// server-assigned id and created_at.
func (r *SupabaseFileRepository) Insert(ctx context.Context, record *domain.FileRecord) (*domain.FileRecord, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	row := map[string]interface{}{
		"name":         record.Name,
		"size":         record.Size,
		"storage_path": record.StoragePath,
		"content_type": record.ContentType,
	}

	data, _, err := client.From(r.table).
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		r.logger.Error("Failed to insert file record", err, "storage_path", record.StoragePath)
		return nil, fmt.Errorf("failed to insert file record: %w", err)
	}

	var inserted []*domain.FileRecord
	if err := json.Unmarshal(data, &inserted); err != nil {
		return nil, fmt.Errorf("failed to unmarshal insert response: %w", err)
	}
	if len(inserted) == 0 {
		return nil, fmt.Errorf("insert returned no rows")
	}

	r.logger.Info("File record created", "id", inserted[0].ID, "storage_path", inserted[0].StoragePath)
	return inserted[0], nil
}

// ListAll returns all rows ordered by created_at descending.
func (r *SupabaseFileRepository) ListAll(ctx context.Context) ([]*domain.FileRecord, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From(r.table).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list file records: %w", err)
	}

	var records []*domain.FileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if records == nil {
		records = make([]*domain.FileRecord, 0)
	}

	return records, nil
}

// GetByID retrieves one row, or domain.ErrFileNotFound.
func (r *SupabaseFileRepository) GetByID(ctx context.Context, id string) (*domain.FileRecord, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From(r.table).
		Select("*", "", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get file record: %w", err)
	}

	var records []*domain.FileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(records) == 0 {
		return nil, domain.ErrFileNotFound
	}

	return records[0], nil
}

// DeleteByID removes one row.
func (r *SupabaseFileRepository) DeleteByID(ctx context.Context, id string) error {
	client := r.supabaseClient.DB()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	_, _, err := client.From(r.table).
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	return nil
}
