package handlers

import (
	"carp-solver/internal/api/dto"
	"carp-solver/internal/ports"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// InstanceHandler exposes read-only access to stored instances.
type InstanceHandler struct {
	Repo ports.InstanceRepository
}

func (h *InstanceHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	items, err := h.Repo.ListInstances(r.Context())
	if err != nil {
		log.WithError(err).Error("list instances failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListInstancesResponse{
		Instances: make([]dto.InstanceResponse, 0, len(items)),
	}
	for _, it := range items {
		res.Instances = append(res.Instances, dto.InstanceResponse{
			Name:          it.Name,
			Vertices:      it.Vertices,
			Vehicles:      it.Vehicles,
			Capacity:      it.Capacity,
			RequiredEdges: it.RequiredEdges,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
