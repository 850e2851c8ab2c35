package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rkaran/silverdash/internal/calculator"
	"github.com/rkaran/silverdash/internal/config"
	"github.com/rkaran/silverdash/internal/database"
	"github.com/rkaran/silverdash/internal/purchases"
	"github.com/rkaran/silverdash/internal/render"
	"github.com/rkaran/silverdash/internal/server"
	"github.com/rkaran/silverdash/internal/uploads"
	"github.com/rkaran/silverdash/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/silverdash.yaml", "path to config file")
	seed := flag.Bool("seed", false, "upsert the states CSV into postgres before serving")
	flag.Parse()

	if err := run(*configPath, *seed); err != nil {
		slog.Error("silverdash failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, seed bool) error {
	cfg, err := config.LoadAndValidate(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(os.Stdout, cfg.Logging)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	logger.Info("starting silverdash",
		"version", version.Version,
		"commit", version.Commit,
		"config", configPath,
		"source", cfg.Data.Source,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rates, err := calculator.NewRates(cfg.Pricing.CurrencyRates)
	if err != nil {
		return fmt.Errorf("build currency table: %w", err)
	}

	deps := server.Deps{
		Calculator: calculator.New(rates),
		Map:        mapOptions(cfg.Map),
		MaxUpload:  cfg.Uploads.MaxBytes,
	}

	var src purchases.Source = purchases.NewCSVSource(cfg.Data.StatesCSV)
	if cfg.Data.Source == config.SourcePostgres {
		logger.Info("connecting to database",
			"host", cfg.Database.Postgres.Host,
			"port", cfg.Database.Postgres.Port,
			"database", cfg.Database.Postgres.Name,
		)
		pool, err := database.Connect(ctx, cfg.Database.Postgres)
		if err != nil {
			return err
		}
		defer pool.Close()

		store := database.NewStateStore(pool, logger.With("component", "store"))
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		if seed {
			if err := seedStates(ctx, store, cfg.Data.StatesCSV, logger); err != nil {
				return err
			}
		}
		src = store
		deps.Database = store
		logger.Info("database connected")
	} else if seed {
		logger.Warn("ignoring -seed without a postgres source")
	}

	deps.States = purchases.NewProvider(src, logger.With("component", "states"))
	deps.States.Reload(ctx)

	deps.Uploads = uploads.NewStore(uploads.Config{
		MaxBytes:   cfg.Uploads.MaxBytes,
		TTL:        cfg.Uploads.TTL,
		MaxEntries: cfg.Uploads.MaxEntries,
	})
	srv := server.New(cfg.Server, deps, logger.With("component", "http"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})

	sweeper := uploads.NewSweeper(deps.Uploads, cfg.Uploads.SweepInterval, logger.With("component", "sweeper"))
	g.Go(func() error {
		return runUntilDone(gctx, sweeper)
	})

	if cfg.Data.Watch && cfg.Data.Source == config.SourceCSV {
		watcher := purchases.NewWatcher(cfg.Data.StatesCSV, cfg.Data.Debounce, deps.States, logger.With("component", "watcher"))
		g.Go(func() error {
			// The dashboard still works without live reload.
			if err := runUntilDone(gctx, watcher); err != nil {
				logger.Warn("csv watcher disabled", "path", cfg.Data.StatesCSV, "error", err)
			}
			return nil
		})
	}

	logger.Info("silverdash running",
		"url", fmt.Sprintf("http://localhost:%d/", cfg.Server.Port),
	)

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("silverdash stopped")
	return nil
}

// seedStates upserts the CSV table into postgres.
func seedStates(ctx context.Context, store *database.StateStore, path string, logger *slog.Logger) error {
	ds, err := purchases.NewCSVSource(path).Load(ctx)
	if err != nil {
		return fmt.Errorf("read seed csv: %w", err)
	}
	inserted, updated, err := store.SaveStates(ctx, ds.Rows)
	if err != nil {
		return err
	}
	logger.Info("seeded state purchases", "path", path, "inserted", inserted, "updated", updated)
	return nil
}

func newLogger(w io.Writer, cfg config.LoggingConfig) (*slog.Logger, error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func mapOptions(cfg config.MapConfig) render.MapOptions {
	opt := render.DefaultMapOptions()
	if cfg.Width > 0 {
		opt.Width = cfg.Width
	}
	if cfg.Height > 0 {
		opt.Height = cfg.Height
	}
	return opt
}

// lifecycle is a background component with the Start/Stop contract.
type lifecycle interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// runUntilDone starts c, waits for ctx to end, then stops c.
func runUntilDone(ctx context.Context, c lifecycle) error {
	if err := c.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return c.Stop(stopCtx)
}
