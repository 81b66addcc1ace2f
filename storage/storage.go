// Package storage persists fetched segment sets so deployments can layer a
// cache in front of the sponsorblock client.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for common storage conditions.
var (
	// ErrNotFound indicates no entry exists for the requested video.
	ErrNotFound = errors.New("storage: not found")
	// ErrStorageCorrupt indicates data corruption was detected.
	ErrStorageCorrupt = errors.New("storage: data corruption detected")
)

// StorageError wraps storage errors with operation context.
// Use errors.As() to extract it:
//
//	var storErr *storage.StorageError
//	if errors.As(err, &storErr) {
//		fmt.Printf("failed to %s %s: %v\n", storErr.Op, storErr.VideoID, storErr.Err)
//	}
type StorageError struct {
	// Op is the operation that failed ("read", "write", "delete").
	Op string
	// VideoID is the affected video, if applicable.
	VideoID string
	// Err is the underlying error.
	Err error
}

// Error returns a string representation of the storage error.
func (e *StorageError) Error() string {
	if e.VideoID != "" {
		return fmt.Sprintf("storage: %s %s: %v", e.Op, e.VideoID, e.Err)
	}
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *StorageError) Unwrap() error { return e.Err }

// SegmentStore holds one cached segment set per video. Implementations must
// be safe for concurrent use.
type SegmentStore interface {
	// Get returns the cached entry for a video, or ErrNotFound.
	Get(ctx context.Context, videoID string) (*CachedSegments, error)
	// Put saves or replaces the entry for entry.VideoID.
	Put(ctx context.Context, entry *CachedSegments) error
	// Delete removes the entry for a video. Deleting a missing entry is not
	// an error.
	Delete(ctx context.Context, videoID string) error
	// Close releases any resources held by the store.
	Close() error
}
