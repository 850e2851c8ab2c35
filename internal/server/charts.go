package server

import (
	"bytes"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rkaran/silverdash/internal/history"
	"github.com/rkaran/silverdash/internal/january"
	"github.com/rkaran/silverdash/internal/render"
)

// ChartNames lists the charts served under /charts/{name}.
var ChartNames = []string{"history", "states", "january", "cumulative", "weekly"}

func (s *Server) chartHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var chart render.Renderer
	switch name {
	case "history":
		bracket, err := history.ParseBracket(r.URL.Query().Get("bracket"))
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error(), bracketHints()...)
			return
		}
		chart = render.HistoryChart(history.Filter(history.Series(), bracket), bracket)
	case "states":
		chart = render.TopStatesChart(s.deps.States.Current(r.Context()).Rows)
	case "january":
		chart = render.JanuaryChart(january.Daily())
	case "cumulative":
		chart = render.CumulativeChart(january.Cumulative(january.Daily()))
	case "weekly":
		chart = render.WeeklyChart(january.Weekly(january.Daily()))
	default:
		respondWithError(w, http.StatusNotFound, "unknown chart "+name, ChartNames...)
		return
	}

	s.writeHTML(w, chart)
}

func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	bracket, err := history.ParseBracket(r.URL.Query().Get("bracket"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), bracketHints()...)
		return
	}

	days := january.Daily()
	page := render.Dashboard(
		history.Filter(history.Series(), bracket), bracket,
		s.deps.States.Current(r.Context()).Rows,
		days, january.Cumulative(days), january.Weekly(days),
	)
	s.writeHTML(w, page)
}

func (s *Server) writeHTML(w http.ResponseWriter, chart render.Renderer) {
	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		s.logger.Error("render chart", "error", err)
		respondWithError(w, http.StatusInternalServerError, "render chart: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
