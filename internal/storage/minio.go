package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MinioBlobStore implements BlobStore on a MinIO bucket. Writes go through
// the MinIO SDK; fetches are plain HTTP GETs against the object URL, which
// also covers arbitrary upstream URLs for the image proxy.
type MinioBlobStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
	http      *http.Client
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
	UseSSL    bool
}

func NewMinioBlobStore(cfg MinioConfig) (*MinioBlobStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		zap.L().Warn("failed to check bucket existence", zap.String("bucket", cfg.Bucket), zap.Error(err))
	} else if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			zap.L().Warn("failed to create bucket", zap.String("bucket", cfg.Bucket), zap.Error(err))
		} else {
			zap.L().Info("created bucket", zap.String("bucket", cfg.Bucket))
		}
	}

	return &MinioBlobStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: cfg.PublicURL,
		// No client-level timeout: inline delivery streams bodies of
		// arbitrary size and relies on request-context cancellation.
		http: &http.Client{},
	}, nil
}

func (s *MinioBlobStore) Put(ctx context.Context, objectPath string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectPath, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload object to storage: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectPath), nil
}

func (s *MinioBlobStore) Fetch(ctx context.Context, rawURL, userAgent string) (*Object, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid object URL: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("object fetch failed: %w", err)
	}

	return &Object{
		Body:          resp.Body,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
		StatusCode:    resp.StatusCode,
	}, nil
}
