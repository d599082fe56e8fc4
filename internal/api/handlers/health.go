package handlers

import (
	"carp-solver/internal/services"
	"net/http"
)

// HealthHandler is a liveness check that also reports which route builders are loaded.
type HealthHandler struct {
	Builders *services.BuilderRegistry
}

type healthResponse struct {
	Status     string   `json:"status"`
	Strategies []string `json:"strategies"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := healthResponse{Status: "ok", Strategies: []string{}}
	if h.Builders != nil {
		res.Strategies = h.Builders.List()
	}
	writeJSON(w, r, http.StatusOK, res)
}
