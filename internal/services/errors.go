package services

import (
	"errors"
	"fmt"
)

// Expected failure kinds of the gateway. Handlers map these to HTTP statuses;
// anything else is an internal error.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrGalleryNotFound  = errors.New("gallery not found")
	ErrShareDisabled    = errors.New("share link is disabled")
	ErrShareExpired     = errors.New("share link has expired")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrInvalidSession   = errors.New("invalid session")
	ErrMissingAPIKey    = errors.New("missing api key")
	ErrInvalidAPIKey    = errors.New("invalid api key")
	ErrNoFilePayload    = errors.New("no file payload")
	ErrNoDeliverableURL = errors.New("no deliverable url")
)

// UpstreamError wraps a blob or metadata store failure. Status carries the
// upstream HTTP status when one exists, zero otherwise.
type UpstreamError struct {
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream failure (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("upstream failure: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// PartialWriteError means the blob was written but the metadata record was
// not. The object path and upload id are logged so an out-of-band sweep can
// complete or discard the orphan.
type PartialWriteError struct {
	ObjectPath string
	UploadID   string
	Err        error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("metadata write failed after blob write (upload %s, object %s): %v", e.UploadID, e.ObjectPath, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }
