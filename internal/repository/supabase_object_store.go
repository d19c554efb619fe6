package repository

import (
	"bytes"
	"context"
	"fmt"

	"pdf-library/internal/domain"

	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseObjectStore implements domain.ObjectStore on top of a
// Supabase storage bucket. The storage API has no context support, so
// the ctx parameters are accepted for interface symmetry only.
type SupabaseObjectStore struct {
	supabaseClient domain.SupabaseClient
	bucket         string
	logger         domain.Logger
}

// NewSupabaseObjectStore creates a new Supabase object store
func NewSupabaseObjectStore(supabaseClient domain.SupabaseClient, bucket string, logger domain.Logger) domain.ObjectStore {
	return &SupabaseObjectStore{
		supabaseClient: supabaseClient,
		bucket:         bucket,
		logger:         logger,
	}
}

// Put performs one create-or-replace write of data under path.
func (s *SupabaseObjectStore) Put(ctx context.Context, path string, data []byte, opts domain.PutOptions) error {
	storage := s.supabaseClient.Storage()
	if storage == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	fileOpts := storage_go.FileOptions{
		Upsert: &opts.Upsert,
	}
	if opts.ContentType != "" {
		fileOpts.ContentType = &opts.ContentType
	}

	_, err := storage.UploadFile(s.bucket, path, bytes.NewReader(data), fileOpts)
	if err != nil {
		return fmt.Errorf("failed to write object %s: %w", path, err)
	}

	return nil
}

// Remove deletes the objects at the given paths.
func (s *SupabaseObjectStore) Remove(ctx context.Context, paths []string) error {
	storage := s.supabaseClient.Storage()
	if storage == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	_, err := storage.RemoveFile(s.bucket, paths)
	if err != nil {
		return fmt.Errorf("failed to remove objects: %w", err)
	}

	return nil
}

// CreateSignedURL returns a time-limited read URL for one object.
func (s *SupabaseObjectStore) CreateSignedURL(ctx context.Context, path string, expirySeconds int) (string, error) {
	storage := s.supabaseClient.Storage()
	if storage == nil {
		return "", fmt.Errorf("supabase client not initialized")
	}

	resp, err := storage.CreateSignedUrl(s.bucket, path, expirySeconds)
	if err != nil {
		return "", fmt.Errorf("failed to create signed url for %s: %w", path, err)
	}

	return resp.SignedURL, nil
}
