package purchases

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rkaran/silverdash/internal/model"
)

// Provider holds the current state table and reloads it from a Source.
type Provider struct {
	src    Source
	logger *slog.Logger

	mu      sync.RWMutex
	current model.Dataset
	loaded  bool
	subs    []func(model.Dataset)
}

// NewProvider creates a provider over src. Nothing is loaded until the
// first Reload or Current call.
func NewProvider(src Source, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		src:    src,
		logger: logger,
	}
}

// Reload reads the source again, falling back to the sample table on error,
// and notifies subscribers.
func (p *Provider) Reload(ctx context.Context) model.Dataset {
	ds, err := LoadOrSample(ctx, p.src)
	if err != nil {
		p.logger.Warn("Loading state purchases failed, using sample data", "error", err)
	} else {
		p.logger.Info("Loaded state purchases", "source", ds.Source, "origin", ds.Origin, "rows", len(ds.Rows))
	}

	p.mu.Lock()
	p.current = ds
	p.loaded = true
	subs := make([]func(model.Dataset), len(p.subs))
	copy(subs, p.subs)
	p.mu.Unlock()

	for _, fn := range subs {
		fn(ds)
	}
	return ds
}

// Current returns the last loaded dataset, loading it first if needed.
func (p *Provider) Current(ctx context.Context) model.Dataset {
	p.mu.RLock()
	ds, loaded := p.current, p.loaded
	p.mu.RUnlock()
	if loaded {
		return ds
	}
	return p.Reload(ctx)
}

// Subscribe registers fn to run after every reload.
func (p *Provider) Subscribe(fn func(model.Dataset)) {
	p.mu.Lock()
	p.subs = append(p.subs, fn)
	p.mu.Unlock()
}
