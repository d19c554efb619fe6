package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pdf-library/internal/domain"
	apperrors "pdf-library/pkg/errors"
)

func TestLibraryService_ListFiles_EmptyLibrary(t *testing.T) {
	repo := NewMockFileRepository()
	store := NewMockObjectStore()
	service := NewLibraryService(repo, store, NewMockLogger())

	files, err := service.ListFiles(context.Background())
	if err != nil {
		t.Fatalf("expected no error for empty library, got %v", err)
	}
	if files == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(files) != 0 {
		t.Fatalf("expected no files, got %d", len(files))
	}
}

func TestLibraryService_ListFiles_MostRecentFirst(t *testing.T) {
	repo := NewMockFileRepository()
	store := NewMockObjectStore()
	service := NewLibraryService(repo, store, NewMockLogger())

	older, _ := repo.Insert(context.Background(), &domain.FileRecord{Name: "a.pdf", StoragePath: "1-a.pdf"})
	newer, _ := repo.Insert(context.Background(), &domain.FileRecord{Name: "b.pdf", StoragePath: "2-b.pdf"})

	files, err := service.ListFiles(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].ID != newer.ID || files[1].ID != older.ID {
		t.Errorf("expected order [%s %s], got [%s %s]", newer.ID, older.ID, files[0].ID, files[1].ID)
	}
	if !files[0].CreatedAt.After(files[1].CreatedAt) {
		t.Error("expected created_at descending")
	}
}

func TestLibraryService_ListFiles_FetchFailureIsNotEmpty(t *testing.T) {
	repo := NewMockFileRepository()
	repo.listErr = errors.New("connection refused")
	store := NewMockObjectStore()
	service := NewLibraryService(repo, store, NewMockLogger())

	files, err := service.ListFiles(context.Background())
	if files != nil {
		t.Error("expected no result on fetch failure")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeFetch) {
		t.Errorf("expected fetch error, got %v", err)
	}
}

func TestLibraryService_DeleteFile(t *testing.T) {
	repo := NewMockFileRepository()
	store := NewMockObjectStore()
	service := NewLibraryService(repo, store, NewMockLogger())

	path := "123-doc.pdf"
	_ = store.Put(context.Background(), path, []byte("pdf bytes"), domain.PutOptions{Upsert: true})
	record, _ := repo.Insert(context.Background(), &domain.FileRecord{
		Name:        "doc.pdf",
		Size:        9,
		StoragePath: path,
		ContentType: "application/pdf",
		CreatedAt:   time.Now(),
	})

	if err := service.DeleteFile(context.Background(), record.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Both the row and the object are gone.
	if _, err := repo.GetByID(context.Background(), record.ID); !errors.Is(err, domain.ErrFileNotFound) {
		t.Error("expected record to be deleted")
	}
	if _, ok := store.objects[path]; ok {
		t.Error("expected object to be removed")
	}
}

func TestLibraryService_DeleteFile_NotFound(t *testing.T) {
	repo := NewMockFileRepository()
	store := NewMockObjectStore()
	service := NewLibraryService(repo, store, NewMockLogger())

	err := service.DeleteFile(context.Background(), "missing")
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
	if len(store.removed) != 0 {
		t.Errorf("expected no remove calls, got %d", len(store.removed))
	}
}

func TestLibraryService_DeleteFile_ObjectRemovalFailureReportsOrphan(t *testing.T) {
	repo := NewMockFileRepository()
	store := NewMockObjectStore()
	store.removeErr = errors.New("delete rejected")
	service := NewLibraryService(repo, store, NewMockLogger())

	record, _ := repo.Insert(context.Background(), &domain.FileRecord{Name: "doc.pdf", StoragePath: "1-doc.pdf"})

	err := service.DeleteFile(context.Background(), record.ID)
	if !apperrors.IsType(err, apperrors.ErrorTypeOrphanedObject) {
		t.Errorf("expected orphaned object error, got %v", err)
	}
	// The row is gone regardless, so no row ever points at a missing
	// object.
	if _, err := repo.GetByID(context.Background(), record.ID); !errors.Is(err, domain.ErrFileNotFound) {
		t.Error("expected record to be deleted")
	}
}
