package purchases

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/rkaran/silverdash/internal/model"
)

type reloadFunc func(ctx context.Context) model.Dataset

func (f reloadFunc) Reload(ctx context.Context) model.Dataset { return f(ctx) }

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "states.csv")
	writeCSV(t, path, "State,Silver_Purchased_kg\nGoa,1\n")

	p := NewProvider(NewCSVSource(path), nil)
	reloaded := make(chan model.Dataset, 16)
	w := NewWatcher(path, 20*time.Millisecond, reloadFunc(func(ctx context.Context) model.Dataset {
		ds := p.Reload(ctx)
		select {
		case reloaded <- ds:
		default:
		}
		return ds
	}), nil)

	ctx := context.Background()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Unrelated files in the same directory are ignored.
	writeCSV(t, filepath.Join(dir, "other.csv"), "x\n")
	writeCSV(t, path, "State,Silver_Purchased_kg\nGoa,42\n")

	// A reload may observe the file mid-write; wait for the final content.
	deadline := time.After(5 * time.Second)
	for done := false; !done; {
		select {
		case ds := <-reloaded:
			done = ds.Source == model.SourceCSV && ds.Rows[0].QuantityKg == 42
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}

	if err := w.Stop(ctx); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
	// Stop is idempotent.
	if err := w.Stop(ctx); err != nil {
		t.Errorf("second Stop failed: %v", err)
	}
}

func TestWatcher_StartMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "states.csv")
	w := NewWatcher(path, 0, reloadFunc(func(ctx context.Context) model.Dataset { return model.Dataset{} }), nil)
	if err := w.Start(context.Background()); err == nil {
		w.Stop(context.Background())
		t.Fatal("Start should fail when the directory does not exist")
	}
}

func writeCSV(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
