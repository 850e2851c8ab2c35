package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rkaran/silverdash/internal/model"
	"github.com/rkaran/silverdash/internal/version"
)

type healthResponse struct {
	Status     string                 `json:"status"`
	Version    version.Info           `json:"version"`
	Components map[string]interface{} `json:"components"`
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := healthResponse{
		Status:     "healthy",
		Version:    version.Get(),
		Components: make(map[string]interface{}),
	}

	// Check state table
	ds := s.deps.States.Current(ctx)
	health.Components["states"] = map[string]interface{}{
		"source":    ds.Source,
		"origin":    ds.Origin,
		"rows":      len(ds.Rows),
		"warnings":  ds.Warnings,
		"loaded_at": ds.LoadedAt,
	}
	if ds.Source == model.SourceSample {
		health.Status = "degraded"
	}

	// Check database
	if s.deps.Database != nil {
		if err := s.deps.Database.Ping(ctx); err != nil {
			health.Status = "unhealthy"
			health.Components["postgres"] = map[string]string{
				"status": "disconnected",
				"error":  err.Error(),
			}
		} else {
			health.Components["postgres"] = "connected"
		}
	}

	health.Components["uploads"] = map[string]interface{}{
		"count": s.deps.Uploads.Len(),
	}
	health.Components["websocket"] = map[string]interface{}{
		"clients": s.hub.Clients(),
	}

	code := http.StatusOK
	if health.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	respondWithJSON(w, code, health)
}
