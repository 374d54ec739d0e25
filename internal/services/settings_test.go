package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janwerner/fotobox/internal/models"
	"github.com/janwerner/fotobox/internal/store"
)

func TestSettings_WarmEntrySkipsStore(t *testing.T) {
	t.Parallel()

	s := store.NewMemoryStore()
	s.AddFolderSettings(models.FolderSettings{FolderID: "f1", ShareButtons: true, ButtonNetworks: []string{"whatsapp"}})
	svc := NewSettings(s)

	first, err := svc.ForFolder(context.Background(), "f1")
	require.NoError(t, err)
	second, err := svc.ForFolder(context.Background(), "f1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, s.SettingsReads(), "second read must come from the cache")
}

func TestSettings_ExpiredEntryRefetches(t *testing.T) {
	t.Parallel()

	s := store.NewMemoryStore()
	s.AddFolderSettings(models.FolderSettings{FolderID: "f1", ShareButtons: true})
	svc := NewSettings(s)

	now := time.Now()
	svc.Cache().SetClock(func() time.Time { return now })

	_, err := svc.ForFolder(context.Background(), "f1")
	require.NoError(t, err)

	now = now.Add(6 * time.Minute)
	_, err = svc.ForFolder(context.Background(), "f1")
	require.NoError(t, err)

	assert.Equal(t, 2, s.SettingsReads())
}

func TestSettings_MissingConfigurationDefaults(t *testing.T) {
	t.Parallel()

	svc := NewSettings(store.NewMemoryStore())

	cfg, err := svc.ForFolder(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Equal(t, "unknown", cfg.FolderID)
	assert.True(t, cfg.ShareButtons)
}

func TestSettings_InvalidateForcesFetch(t *testing.T) {
	t.Parallel()

	s := store.NewMemoryStore()
	s.AddFolderSettings(models.FolderSettings{FolderID: "f1"})
	svc := NewSettings(s)

	_, err := svc.ForFolder(context.Background(), "f1")
	require.NoError(t, err)
	svc.Invalidate("f1")
	_, err = svc.ForFolder(context.Background(), "f1")
	require.NoError(t, err)

	assert.Equal(t, 2, s.SettingsReads())
}
