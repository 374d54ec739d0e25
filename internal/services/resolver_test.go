package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janwerner/fotobox/internal/models"
	"github.com/janwerner/fotobox/internal/store"
)

func seedResolverStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	s := store.NewMemoryStore()
	s.AddFile(models.FileRecord{
		FolderID:     "f1",
		Name:         "Sonnenuntergang",
		OriginalName: "sunset.jpg",
		StorageName:  "1700000000000_sunset.jpg",
		URL:          "mem://users/u1/f1/1700000000000_sunset.jpg",
		CreatedAt:    time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	})
	s.AddFile(models.FileRecord{
		FolderID:     "f1",
		Name:         "Strand",
		OriginalName: "beach.jpg",
		StorageName:  "1700000000001_beach.jpg",
		URL:          "mem://users/u1/f1/1700000000001_beach.jpg",
		CreatedAt:    time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC),
	})
	return s
}

func TestResolve_EachFieldFindsItsOwnRecord(t *testing.T) {
	t.Parallel()

	r := NewResolver(seedResolverStore(t))
	ctx := context.Background()

	for _, name := range []string{"Sonnenuntergang", "sunset.jpg", "1700000000000_sunset.jpg"} {
		file, err := r.Resolve(ctx, "f1", name)
		require.NoError(t, err, "resolving %q", name)
		assert.Equal(t, "1700000000000_sunset.jpg", file.StorageName)
	}
	for _, name := range []string{"Strand", "beach.jpg", "1700000000001_beach.jpg"} {
		file, err := r.Resolve(ctx, "f1", name)
		require.NoError(t, err, "resolving %q", name)
		assert.Equal(t, "1700000000001_beach.jpg", file.StorageName)
	}
}

func TestResolve_StorageNameWinsOverDisplayName(t *testing.T) {
	t.Parallel()

	// One record's display name equals another record's storage name. The
	// storage-name match must win because that field is unique.
	s := store.NewMemoryStore()
	s.AddFile(models.FileRecord{
		FolderID:    "f1",
		Name:        "a.png",
		StorageName: "100_a.png",
		CreatedAt:   time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	})
	s.AddFile(models.FileRecord{
		FolderID:    "f1",
		Name:        "100_a.png",
		StorageName: "200_b.png",
		CreatedAt:   time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC),
	})

	file, err := NewResolver(s).Resolve(context.Background(), "f1", "100_a.png")
	require.NoError(t, err)
	assert.Equal(t, "100_a.png", file.StorageName)
}

func TestResolve_PercentDecodesRawName(t *testing.T) {
	t.Parallel()

	s := store.NewMemoryStore()
	s.AddFile(models.FileRecord{
		FolderID:    "f1",
		Name:        "mein bild.png",
		StorageName: "100_mein bild.png",
	})

	file, err := NewResolver(s).Resolve(context.Background(), "f1", "mein%20bild.png")
	require.NoError(t, err)
	assert.Equal(t, "mein bild.png", file.Name)
}

func TestResolve_NotFoundIsNotAnUpstreamError(t *testing.T) {
	t.Parallel()

	r := NewResolver(seedResolverStore(t))

	_, err := r.Resolve(context.Background(), "f1", "nope.png")
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = r.Resolve(context.Background(), "empty-folder", "anything")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestResolve_StoreFailureSurfacesAsUpstream(t *testing.T) {
	t.Parallel()

	s := store.NewMemoryStore()
	s.FailWith = errors.New("connection reset")

	_, err := NewResolver(s).Resolve(context.Background(), "f1", "x")
	var upstream *UpstreamError
	assert.ErrorAs(t, err, &upstream)
	assert.NotErrorIs(t, err, ErrFileNotFound)
}

func TestResolveExact_PointLookup(t *testing.T) {
	t.Parallel()

	r := NewResolver(seedResolverStore(t))

	file, err := r.ResolveExact(context.Background(), "f1", "1700000000001_beach.jpg")
	require.NoError(t, err)
	assert.Equal(t, "Strand", file.Name)

	// Display names do not match the exact variant.
	_, err = r.ResolveExact(context.Background(), "f1", "Strand")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestList_OrderedByCreationAscending(t *testing.T) {
	t.Parallel()

	r := NewResolver(seedResolverStore(t))

	files, err := r.List(context.Background(), "f1")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "1700000000000_sunset.jpg", files[0].StorageName)
	assert.Equal(t, "1700000000001_beach.jpg", files[1].StorageName)

	empty, err := r.List(context.Background(), "empty")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
