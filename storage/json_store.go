package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"sbclient/sponsorblock"
)

const schemaVersion = "1.0"

// JSONStore implements SegmentStore using a single JSON file. The whole
// store is held in memory and rewritten atomically on every mutation; it is
// meant for per-user caches, not large datasets.
type JSONStore struct {
	path string
	data *storeData
	mu   sync.RWMutex
}

// storeData is the top-level JSON structure.
type storeData struct {
	Version   string                     `json:"version"`
	UpdatedAt time.Time                  `json:"updated_at"`
	Videos    map[string]*CachedSegments `json:"videos"` // video_id -> entry
}

func newStoreData() *storeData {
	return &storeData{
		Version: schemaVersion,
		Videos:  make(map[string]*CachedSegments),
	}
}

// NewJSONStore creates a JSON file store at the given path. If the file
// exists it is loaded; otherwise an empty store is created.
func NewJSONStore(path string) (*JSONStore, error) {
	s := &JSONStore{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load reads the JSON file into memory, creating empty data if it doesn't
// exist yet.
func (s *JSONStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.data = newStoreData()
			// Save immediately to catch permission errors early
			return s.save()
		}
		return &StorageError{Op: "read", Err: err}
	}

	s.data = &storeData{}
	if err := json.Unmarshal(data, s.data); err != nil {
		return &StorageError{Op: "read", Err: ErrStorageCorrupt}
	}
	if s.data.Videos == nil {
		s.data.Videos = make(map[string]*CachedSegments)
	}
	return nil
}

// save writes the store to disk atomically. Caller must hold the write lock.
func (s *JSONStore) save() error {
	s.data.Version = schemaVersion
	s.data.UpdatedAt = time.Now().UTC()

	encoded, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return &StorageError{Op: "write", Err: err}
	}

	w, err := NewAtomicWriter(s.path)
	if err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	if _, err := w.Write(encoded); err != nil {
		w.Abort()
		return &StorageError{Op: "write", Err: err}
	}
	if err := w.Commit(); err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	return nil
}

// Get returns the cached entry for a video, or ErrNotFound.
func (s *JSONStore) Get(ctx context.Context, videoID string) (*CachedSegments, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.data.Videos[videoID]
	if !ok {
		return nil, &StorageError{Op: "read", VideoID: videoID, Err: ErrNotFound}
	}
	// Copy so callers can't mutate the store through the returned pointer.
	out := *entry
	out.Segments = append([]sponsorblock.Segment(nil), entry.Segments...)
	return &out, nil
}

// Put saves or replaces the entry for entry.VideoID, assigning a record ID
// if the entry doesn't carry one.
func (s *JSONStore) Put(ctx context.Context, entry *CachedSegments) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *entry
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	stored.Segments = append([]sponsorblock.Segment(nil), entry.Segments...)
	s.data.Videos[entry.VideoID] = &stored
	return s.save()
}

// Delete removes the entry for a video.
func (s *JSONStore) Delete(ctx context.Context, videoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.Videos[videoID]; !ok {
		return nil
	}
	delete(s.data.Videos, videoID)
	return s.save()
}

// Close is a no-op for the JSON store; every mutation is already flushed.
func (s *JSONStore) Close() error {
	return nil
}
