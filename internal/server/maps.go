package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/rkaran/silverdash/internal/geo"
	"github.com/rkaran/silverdash/internal/render"
	"github.com/rkaran/silverdash/internal/uploads"
)

func (s *Server) uploadMapHandler(w http.ResponseWriter, r *http.Request) {
	body := io.Reader(r.Body)
	if s.deps.MaxUpload > 0 {
		body = http.MaxBytesReader(w, r.Body, s.deps.MaxUpload)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, "upload exceeds the size limit")
			return
		}
		respondWithError(w, http.StatusBadRequest, "read upload: "+err.Error())
		return
	}

	u, err := s.deps.Uploads.Add(r.URL.Query().Get("name"), data)
	if err != nil {
		if errors.Is(err, uploads.ErrTooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		respondWithError(w, http.StatusUnprocessableEntity, "Error loading GeoJSON: "+err.Error(), geo.Hints...)
		return
	}

	s.logger.Info("geojson uploaded", "id", u.ID, "features", u.Features, "bytes", u.Size)
	respondWithJSON(w, http.StatusCreated, u)
}

// lookupUpload answers 404 itself when the upload is missing.
func (s *Server) lookupUpload(w http.ResponseWriter, r *http.Request) (*uploads.Upload, bool) {
	id := mux.Vars(r)["id"]
	u, err := s.deps.Uploads.Get(id)
	if err != nil {
		respondWithError(w, http.StatusNotFound, err.Error()+": "+id, "Upload the GeoJSON file again; uploads expire.")
		return nil, false
	}
	return u, true
}

func (s *Server) getMapHandler(w http.ResponseWriter, r *http.Request) {
	u, ok := s.lookupUpload(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, u)
}

func (s *Server) deleteMapHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !s.deps.Uploads.Delete(id) {
		respondWithError(w, http.StatusNotFound, uploads.ErrUploadNotFound.Error()+": "+id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// join resolves the upload and column of a map request and joins it with
// the current state table.
func (s *Server) join(w http.ResponseWriter, r *http.Request) (geo.JoinResult, bool) {
	u, ok := s.lookupUpload(w, r)
	if !ok {
		return geo.JoinResult{}, false
	}

	column := r.URL.Query().Get("column")
	if column == "" {
		column = u.DefaultColumn
	}
	if !slices.Contains(u.Columns, column) {
		hints := append([]string{"Available columns: " + strings.Join(u.Columns, ", ")}, geo.Hints...)
		respondWithError(w, http.StatusBadRequest, "unknown column "+strconv.Quote(column), hints...)
		return geo.JoinResult{}, false
	}

	ds := s.deps.States.Current(r.Context())
	res := geo.Join(u.Collection.Features, column, ds.Rows)
	if res.Matched == 0 {
		s.logger.Warn("geojson join matched no states", "id", u.ID, "column", column)
	}
	return res, true
}

func (s *Server) joinMapHandler(w http.ResponseWriter, r *http.Request) {
	res, ok := s.join(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}

func (s *Server) mapSVGHandler(w http.ResponseWriter, r *http.Request) {
	res, ok := s.join(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.Choropleth(&buf, res, s.deps.Map); err != nil {
		if errors.Is(err, render.ErrNoGeometry) {
			respondWithError(w, http.StatusUnprocessableEntity, err.Error(), geo.Hints...)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "render map: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
