package store

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/janwerner/fotobox/internal/models"
)

// MemoryStore is an in-memory MetadataStore used by tests and local runs
// without a database. Safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	files     []models.FileRecord
	galleries []models.GalleryRecord
	keys      []models.APIKeyRecord
	settings  []models.FolderSettings

	// FailWith, when set, is returned by every call to simulate a store outage.
	FailWith error

	settingsReads int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) AddFile(f models.FileRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	s.files = append(s.files, f)
}

func (s *MemoryStore) AddGallery(g models.GalleryRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
	}
	s.galleries = append(s.galleries, g)
}

func (s *MemoryStore) AddAPIKey(k models.APIKeyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = append(s.keys, k)
}

func (s *MemoryStore) AddFolderSettings(cfg models.FolderSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = append(s.settings, cfg)
}

// SettingsReads counts FolderSettings round trips, for cache tests.
func (s *MemoryStore) SettingsReads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settingsReads
}

func (s *MemoryStore) FileByStorageName(ctx context.Context, folderID, storageName string) (*models.FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	for i := range s.files {
		if s.files[i].FolderID == folderID && s.files[i].StorageName == storageName {
			f := s.files[i]
			return &f, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FilesByFolder(ctx context.Context, folderID string) ([]models.FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	out := []models.FileRecord{}
	for i := range s.files {
		if s.files[i].FolderID == folderID {
			out = append(out, s.files[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) InsertFile(ctx context.Context, file *models.FileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	if file.ID.IsZero() {
		file.ID = primitive.NewObjectID()
	}
	s.files = append(s.files, *file)
	return nil
}

func (s *MemoryStore) GalleryByID(ctx context.Context, id string) (*models.GalleryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	for i := range s.galleries {
		if s.galleries[i].ID.Hex() == id {
			g := s.galleries[i]
			return &g, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GalleryByShareID(ctx context.Context, shareID string) (*models.GalleryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	for i := range s.galleries {
		if s.galleries[i].ShareID == shareID {
			g := s.galleries[i]
			return &g, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) APIKey(ctx context.Context, key string) (*models.APIKeyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	for i := range s.keys {
		if s.keys[i].Key == key {
			k := s.keys[i]
			return &k, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FolderSettings(ctx context.Context, folderID string) (*models.FolderSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.settingsReads++
	for i := range s.settings {
		if s.settings[i].FolderID == folderID {
			cfg := s.settings[i]
			return &cfg, nil
		}
	}
	return nil, ErrNotFound
}
