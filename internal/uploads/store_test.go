package uploads

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/goleak"

	"github.com/rkaran/silverdash/internal/geo"
)

const testGeoJSON = `{"type":"FeatureCollection","features":[
  {"type":"Feature","properties":{"ST_NM":"Goa","id":1},"geometry":{"type":"Polygon","coordinates":[[[73,14],[74,14],[74,15],[73,15],[73,14]]]}}
]}`

// fakeClock is a settable time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestStore(cfg Config) (*Store, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)}
	s := NewStore(cfg)
	s.now = clock.now
	return s, clock
}

func TestStore_AddGet(t *testing.T) {
	s, clock := newTestStore(Config{TTL: time.Minute})

	u, err := s.Add("india.geojson", []byte(testGeoJSON))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := uuid.Parse(u.ID); err != nil {
		t.Errorf("ID %q is not a uuid: %v", u.ID, err)
	}
	if u.Features != 1 || u.DefaultColumn != "ST_NM" {
		t.Errorf("Upload = %+v", u)
	}
	if !u.ExpiresAt.Equal(clock.t.Add(time.Minute)) {
		t.Errorf("ExpiresAt = %v, want %v", u.ExpiresAt, clock.t.Add(time.Minute))
	}

	got, err := s.Get(u.ID)
	if err != nil || got != u {
		t.Errorf("Get = %v, %v; want the stored upload", got, err)
	}

	clock.t = clock.t.Add(time.Minute)
	if _, err := s.Get(u.ID); !errors.Is(err, ErrUploadNotFound) {
		t.Errorf("Get after expiry = %v, want ErrUploadNotFound", err)
	}
	if n := s.Sweep(); n != 1 {
		t.Errorf("Sweep removed %d, want 1", n)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestStore_Limits(t *testing.T) {
	s, clock := newTestStore(Config{MaxBytes: int64(len(testGeoJSON)), MaxEntries: 2})

	if _, err := s.Add("big", []byte(testGeoJSON+" ")); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Add oversize = %v, want ErrTooLarge", err)
	}

	first, _ := s.Add("a", []byte(testGeoJSON))
	clock.t = clock.t.Add(time.Second)
	second, _ := s.Add("b", []byte(testGeoJSON))
	clock.t = clock.t.Add(time.Second)
	third, err := s.Add("c", []byte(testGeoJSON))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
	if _, err := s.Get(first.ID); !errors.Is(err, ErrUploadNotFound) {
		t.Error("oldest upload should have been evicted")
	}
	for _, u := range []*Upload{second, third} {
		if _, err := s.Get(u.ID); err != nil {
			t.Errorf("Get(%s) = %v", u.Name, err)
		}
	}
}

func TestStore_AddInvalid(t *testing.T) {
	s, _ := newTestStore(Config{})
	if _, err := s.Add("empty", []byte(`{"type":"FeatureCollection","features":[]}`)); !errors.Is(err, geo.ErrNoFeatures) {
		t.Errorf("Add = %v, want geo.ErrNoFeatures", err)
	}
	if _, err := s.Add("null", []byte(`{"type":"FeatureCollection","features":[null]}`)); err == nil {
		t.Error("Add with a null feature should fail")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestStore_Delete(t *testing.T) {
	s, _ := newTestStore(Config{})
	u, _ := s.Add("a", []byte(testGeoJSON))

	if !s.Delete(u.ID) {
		t.Error("Delete should report an existing upload")
	}
	if s.Delete(u.ID) {
		t.Error("second Delete should report false")
	}
}

func TestSweeper_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, clock := newTestStore(Config{TTL: time.Millisecond})
	if _, err := s.Add("a", []byte(testGeoJSON)); err != nil {
		t.Fatal(err)
	}
	clock.t = clock.t.Add(time.Second)

	sw := NewSweeper(s, 5*time.Millisecond, nil)
	if err := sw.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for s.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if s.Len() != 0 {
		t.Error("sweeper did not remove the expired upload")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := sw.Stop(ctx); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}
