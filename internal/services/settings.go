package services

import (
	"context"
	"errors"
	"time"

	"github.com/janwerner/fotobox/internal/cache"
	"github.com/janwerner/fotobox/internal/models"
	"github.com/janwerner/fotobox/internal/store"
)

const settingsTTL = 5 * time.Minute

// Settings resolves the per-folder sharing-button configuration through a
// 5-minute TTL cache. Folders without a stored configuration get defaults,
// which are cached like any other entry.
type Settings struct {
	store store.MetadataStore
	cache *cache.TTL[models.FolderSettings]
}

func NewSettings(s store.MetadataStore) *Settings {
	return &Settings{store: s, cache: cache.New[models.FolderSettings](settingsTTL)}
}

func (s *Settings) ForFolder(ctx context.Context, folderID string) (models.FolderSettings, error) {
	if cfg, ok := s.cache.Get(folderID); ok {
		return cfg, nil
	}

	cfg, err := s.store.FolderSettings(ctx, folderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			def := models.FolderSettings{FolderID: folderID, ShareButtons: true}
			s.cache.Put(folderID, def)
			return def, nil
		}
		return models.FolderSettings{}, &UpstreamError{Err: err}
	}

	s.cache.Put(folderID, *cfg)
	return *cfg, nil
}

// Invalidate drops a folder's cached settings.
func (s *Settings) Invalidate(folderID string) {
	s.cache.Invalidate(folderID)
}

// Cache exposes the underlying cache, for tests that need to control time.
func (s *Settings) Cache() *cache.TTL[models.FolderSettings] {
	return s.cache
}
