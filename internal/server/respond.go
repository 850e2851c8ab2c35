package server

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the body of every 4xx/5xx answer.
type errorResponse struct {
	Error string   `json:"error"`
	Hints []string `json:"hints,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Error marshaling JSON"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string, hints ...string) {
	respondWithJSON(w, code, errorResponse{Error: message, Hints: hints})
}
