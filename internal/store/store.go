package store

import (
	"context"
	"errors"

	"github.com/janwerner/fotobox/internal/models"
)

// ErrNotFound marks an absent record. Callers must be able to tell it apart
// from a transport failure, which is returned as any other non-nil error.
var ErrNotFound = errors.New("record not found")

// MetadataStore is the narrow view of the document database the gateway
// needs. The Mongo implementation backs production; MemoryStore backs tests.
type MetadataStore interface {
	// FileByStorageName is a point lookup on the unique (folder, storage name) pair.
	FileByStorageName(ctx context.Context, folderID, storageName string) (*models.FileRecord, error)
	// FilesByFolder lists every record of a folder ordered by creation time ascending.
	FilesByFolder(ctx context.Context, folderID string) ([]models.FileRecord, error)
	InsertFile(ctx context.Context, file *models.FileRecord) error

	GalleryByID(ctx context.Context, id string) (*models.GalleryRecord, error)
	GalleryByShareID(ctx context.Context, shareID string) (*models.GalleryRecord, error)

	APIKey(ctx context.Context, key string) (*models.APIKeyRecord, error)

	FolderSettings(ctx context.Context, folderID string) (*models.FolderSettings, error)
}
