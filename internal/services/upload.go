package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/janwerner/fotobox/internal/models"
	"github.com/janwerner/fotobox/internal/storage"
	"github.com/janwerner/fotobox/internal/store"
)

// UploadInput is one file payload received on the ingress route.
type UploadInput struct {
	FileName string
	MimeType string
	Data     []byte
}

// Uploader performs the two-phase write behind the programmatic upload
// endpoint: object bytes first, metadata record second. There is no rollback
// across the phases; a phase-2 failure leaves an orphaned blob that is
// reported through PartialWriteError and reconciled out of band.
type Uploader struct {
	store store.MetadataStore
	blobs storage.BlobStore
	now   func() time.Time
}

func NewUploader(s store.MetadataStore, b storage.BlobStore) *Uploader {
	return &Uploader{store: s, blobs: b, now: time.Now}
}

func (u *Uploader) Upload(ctx context.Context, apiKey string, in UploadInput) (*models.FileRecord, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	key, err := u.store.APIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidAPIKey
		}
		return nil, &UpstreamError{Err: err}
	}
	if !key.Usable() {
		return nil, ErrInvalidAPIKey
	}

	if len(in.Data) == 0 {
		return nil, ErrNoFilePayload
	}

	uploadID := uuid.NewString()
	now := u.now()
	storageName := fmt.Sprintf("%d_%s", now.UnixMilli(), in.FileName)
	objectPath := fmt.Sprintf("users/%s/%s/%s", key.UserID, key.FolderID, storageName)

	url, err := u.blobs.Put(ctx, objectPath, bytes.NewReader(in.Data), int64(len(in.Data)), in.MimeType)
	if err != nil {
		zap.L().Error("blob write failed",
			zap.String("upload_id", uploadID),
			zap.String("object_path", objectPath),
			zap.Error(err))
		return nil, &UpstreamError{Err: fmt.Errorf("blob write failed: %w", err)}
	}

	record := &models.FileRecord{
		FolderID:       key.FolderID,
		UserID:         key.UserID,
		Name:           in.FileName,
		OriginalName:   in.FileName,
		StorageName:    storageName,
		StoragePath:    objectPath,
		URL:            url,
		Type:           in.MimeType,
		Size:           int64(len(in.Data)),
		CreatedAt:      now,
		UploadedViaAPI: true,
	}

	if err := u.store.InsertFile(ctx, record); err != nil {
		// The object is already written; log enough for the cleanup sweep.
		zap.L().Error("metadata write failed, blob orphaned",
			zap.String("upload_id", uploadID),
			zap.String("object_path", objectPath),
			zap.Error(err))
		return nil, &PartialWriteError{ObjectPath: objectPath, UploadID: uploadID, Err: err}
	}

	return record, nil
}
