package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
)

// MemoryBlobStore is an in-memory BlobStore for tests. Objects are addressed
// by the URL Put returns; fetching an unknown URL yields a 404 object.
type MemoryBlobStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject

	// PutErr and FetchErr, when set, fail the respective call.
	PutErr   error
	FetchErr error
}

type memoryObject struct {
	data        []byte
	contentType string
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{objects: make(map[string]memoryObject)}
}

func (s *MemoryBlobStore) Put(ctx context.Context, objectPath string, r io.Reader, size int64, contentType string) (string, error) {
	if s.PutErr != nil {
		return "", s.PutErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	url := "mem://" + objectPath
	s.mu.Lock()
	s.objects[url] = memoryObject{data: data, contentType: contentType}
	s.mu.Unlock()
	return url, nil
}

func (s *MemoryBlobStore) Fetch(ctx context.Context, rawURL, userAgent string) (*Object, error) {
	if s.FetchErr != nil {
		return nil, s.FetchErr
	}
	s.mu.RLock()
	obj, ok := s.objects[rawURL]
	s.mu.RUnlock()
	if !ok {
		return &Object{
			Body:       io.NopCloser(strings.NewReader("not found")),
			StatusCode: http.StatusNotFound,
		}, nil
	}
	return &Object{
		Body:          io.NopCloser(bytes.NewReader(obj.data)),
		ContentType:   obj.contentType,
		ContentLength: int64(len(obj.data)),
		StatusCode:    http.StatusOK,
	}, nil
}

// Has reports whether an object was written under the given URL.
func (s *MemoryBlobStore) Has(rawURL string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[rawURL]
	return ok
}

// Len is the number of stored objects.
func (s *MemoryBlobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
