package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rkaran/silverdash/internal/config"
	"github.com/rkaran/silverdash/internal/uploads"
)

type fakeComponent struct {
	startErr error
	started  atomic.Bool
	stopped  atomic.Bool
}

func (f *fakeComponent) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started.Store(true)
	return nil
}

func (f *fakeComponent) Stop(ctx context.Context) error {
	f.stopped.Store(true)
	return nil
}

func TestRunUntilDone_StopsWhenGroupFails(t *testing.T) {
	comp := &fakeComponent{}
	boom := errors.New("listen failed")

	g, gctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		return runUntilDone(gctx, comp)
	})
	g.Go(func() error {
		time.Sleep(10 * time.Millisecond)
		return boom
	})

	if err := g.Wait(); !errors.Is(err, boom) {
		t.Fatalf("Wait() = %v, want %v", err, boom)
	}
	if !comp.started.Load() {
		t.Error("component was not started")
	}
	if !comp.stopped.Load() {
		t.Error("component was not stopped after the group failed")
	}
}

func TestRunUntilDone_StartFailureCancelsGroup(t *testing.T) {
	failing := &fakeComponent{startErr: errors.New("watch dir")}
	peer := &fakeComponent{}

	g, gctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		return runUntilDone(gctx, peer)
	})
	g.Go(func() error {
		return runUntilDone(gctx, failing)
	})

	err := g.Wait()
	if err == nil || err.Error() != "watch dir" {
		t.Fatalf("Wait() = %v, want watch dir", err)
	}
	if failing.stopped.Load() {
		t.Error("a component that failed to start must not be stopped")
	}
	if !peer.stopped.Load() {
		t.Error("peer was not stopped after a start failure")
	}
}

func TestRunUntilDone_Sweeper(t *testing.T) {
	store := uploads.NewStore(uploads.Config{TTL: time.Minute})
	sweeper := uploads.NewSweeper(store, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runUntilDone(ctx, sweeper) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runUntilDone = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("runUntilDone did not return after cancel")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, config.LoggingConfig{Level: "warn", Format: "json"})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record logged at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("json output = %s", out)
	}

	if _, err := newLogger(&buf, config.LoggingConfig{Level: "loud"}); err == nil {
		t.Error("newLogger accepted an unknown level")
	}
}
