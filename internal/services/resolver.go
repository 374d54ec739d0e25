package services

import (
	"context"
	"errors"
	"net/url"

	"github.com/janwerner/fotobox/internal/models"
	"github.com/janwerner/fotobox/internal/store"
)

// Resolver turns (folder id, file name) pairs into FileRecords.
type Resolver struct {
	store store.MetadataStore
}

func NewResolver(s store.MetadataStore) *Resolver {
	return &Resolver{store: s}
}

// Resolve finds a record whose storage name, original name or display name
// matches rawName (percent-decoded first). Storage name wins because it is
// unique within a folder; the other two fields are checked in that order so
// duplicate display names across records still resolve deterministically.
func (r *Resolver) Resolve(ctx context.Context, folderID, rawName string) (*models.FileRecord, error) {
	name, err := url.PathUnescape(rawName)
	if err != nil {
		name = rawName
	}

	files, err := r.store.FilesByFolder(ctx, folderID)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}

	for i := range files {
		if files[i].StorageName == name {
			return &files[i], nil
		}
	}
	for i := range files {
		if files[i].OriginalName == name {
			return &files[i], nil
		}
	}
	for i := range files {
		if files[i].Name == name {
			return &files[i], nil
		}
	}
	return nil, ErrFileNotFound
}

// ResolveExact is the point lookup on the literal storage filename handed
// back at upload time.
func (r *Resolver) ResolveExact(ctx context.Context, folderID, storageName string) (*models.FileRecord, error) {
	name, err := url.PathUnescape(storageName)
	if err != nil {
		name = storageName
	}

	file, err := r.store.FileByStorageName(ctx, folderID, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, &UpstreamError{Err: err}
	}
	return file, nil
}

// List returns every record of a folder, creation time ascending. An empty
// folder is an empty slice, not an error.
func (r *Resolver) List(ctx context.Context, folderID string) ([]models.FileRecord, error) {
	files, err := r.store.FilesByFolder(ctx, folderID)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	return files, nil
}
