package storage

import (
	"context"
	"io"
)

// Object is one fetched blob. Body streams; the caller closes it.
type Object struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
	StatusCode    int
}

// BlobStore writes objects into the content-addressable store and fetches
// them back by URL. Put returns the public fetch URL of the written object.
type BlobStore interface {
	Put(ctx context.Context, objectPath string, r io.Reader, size int64, contentType string) (string, error)
	// Fetch streams the object behind rawURL. userAgent overrides the request
	// User-Agent when non-empty. A non-2xx upstream status is not an error;
	// callers inspect StatusCode.
	Fetch(ctx context.Context, rawURL, userAgent string) (*Object, error)
}
