package uploads

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"

	"github.com/rkaran/silverdash/internal/geo"
)

var (
	// ErrUploadNotFound is returned for unknown or expired upload IDs.
	ErrUploadNotFound = errors.New("upload not found")

	// ErrTooLarge is returned when an upload exceeds the size limit.
	ErrTooLarge = errors.New("upload too large")
)

// Upload is a parsed GeoJSON file.
type Upload struct {
	ID            string                     `json:"id"`
	Name          string                     `json:"name,omitempty"`
	Size          int                        `json:"size"`
	Features      int                        `json:"features"`
	Columns       []string                   `json:"columns"`
	DefaultColumn string                     `json:"default_column"`
	CreatedAt     time.Time                  `json:"created_at"`
	ExpiresAt     time.Time                  `json:"expires_at"`
	Collection    *geojson.FeatureCollection `json:"-"`
}

// Config bounds the store.
type Config struct {
	MaxBytes   int64
	TTL        time.Duration
	MaxEntries int
}

// Store holds uploads by ID.
type Store struct {
	cfg Config
	now func() time.Time

	mu    sync.RWMutex
	items map[string]*Upload
}

// NewStore creates an empty store. Zero values in cfg mean no limit.
func NewStore(cfg Config) *Store {
	return &Store{
		cfg:   cfg,
		now:   time.Now,
		items: make(map[string]*Upload),
	}
}

// Add parses data and stores it under a new ID.
func (s *Store) Add(name string, data []byte) (*Upload, error) {
	if s.cfg.MaxBytes > 0 && int64(len(data)) > s.cfg.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), s.cfg.MaxBytes)
	}

	fc, err := geo.Parse(data)
	if err != nil {
		return nil, err
	}

	now := s.now()
	u := &Upload{
		ID:            uuid.NewString(),
		Name:          name,
		Size:          len(data),
		Features:      len(fc.Features),
		Columns:       geo.Columns(fc),
		DefaultColumn: geo.GuessColumn(fc),
		CreatedAt:     now,
		Collection:    fc,
	}
	if s.cfg.TTL > 0 {
		u.ExpiresAt = now.Add(s.cfg.TTL)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.MaxEntries > 0 {
		for len(s.items) >= s.cfg.MaxEntries {
			s.evictOldestLocked()
		}
	}
	s.items[u.ID] = u
	return u, nil
}

// Get returns an upload that has not expired.
func (s *Store) Get(id string) (*Upload, error) {
	s.mu.RLock()
	u, ok := s.items[id]
	s.mu.RUnlock()

	if !ok || s.expired(u, s.now()) {
		return nil, ErrUploadNotFound
	}
	return u, nil
}

// Delete removes an upload. It reports whether the ID existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.items[id]
	delete(s.items, id)
	return ok
}

// Len returns the number of stored uploads, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Sweep removes expired uploads and returns how many were removed.
func (s *Store) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, u := range s.items {
		if s.expired(u, now) {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}

func (s *Store) expired(u *Upload, now time.Time) bool {
	return !u.ExpiresAt.IsZero() && !now.Before(u.ExpiresAt)
}

func (s *Store) evictOldestLocked() {
	var oldest *Upload
	for _, u := range s.items {
		if oldest == nil || u.CreatedAt.Before(oldest.CreatedAt) {
			oldest = u
		}
	}
	if oldest != nil {
		delete(s.items, oldest.ID)
	}
}
