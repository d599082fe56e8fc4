package handlers

import (
	"carp-solver/internal/adapters/instancefile"
	"carp-solver/internal/api/dto"
	"carp-solver/internal/config"
	"carp-solver/internal/domain"
	"carp-solver/internal/metrics"
	"carp-solver/internal/platform/obs"
	"carp-solver/internal/ports"
	"carp-solver/internal/services"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Inline instances are read up to this many bytes.
const maxInstanceBytes = 8 << 20

type SolveHandler struct {
	Repo        ports.InstanceRepository
	Builders    *services.BuilderRegistry
	Defaults    config.SolverConfig
	MaxVertices int
}

// Solve loads or parses an instance, runs the requested strategy and returns the routes.
// A partial solution is still a 200 response; its residual is listed in `unassigned` and `warnings`.
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SolveRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxInstanceBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	inline := strings.TrimSpace(req.Instance) != ""
	named := strings.TrimSpace(req.Name) != ""
	if inline == named {
		writeError(w, r, http.StatusBadRequest, "exactly one of instance or name is required")
		return
	}

	var in *domain.Instance
	// Metric label for the instance; inline names come from the client and stay out of it.
	instanceLabel := "inline"
	if inline {
		parsed, err := instancefile.Parse(strings.NewReader(req.Instance))
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if parsed.Name == "" {
			parsed.Name = "inline"
		}
		in = parsed
	} else {
		if h.Repo == nil {
			writeError(w, r, http.StatusNotFound, "no instance store configured")
			return
		}
		stored, err := h.Repo.GetInstance(r.Context(), req.Name)
		if err != nil {
			if errors.Is(err, ports.ErrInstanceNotFound) {
				writeError(w, r, http.StatusNotFound, fmt.Sprintf("instance %q not found", req.Name))
				return
			}
			log.WithField("req_id", obs.RequestID(r.Context())).WithError(err).Error("load instance failed")
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		in = stored
		instanceLabel = stored.Name
	}

	if h.MaxVertices > 0 && in.Vertices > h.MaxVertices {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("instance has %d vertices, limit is %d", in.Vertices, h.MaxVertices))
		return
	}

	svcReq := services.SolveRequest{
		Strategy: h.Defaults.Strategy,
		Strict:   h.Defaults.Strict,
		Improve: services.ImproveOptions{
			Attempts: h.Defaults.ImproveAttempts,
			Seed:     h.Defaults.Seed,
		},
		Restart: services.RestartOptions{
			Rounds: h.Defaults.Restarts,
			Seed:   h.Defaults.Seed,
		},
	}
	if s := strings.TrimSpace(req.Strategy); s != "" {
		svcReq.Strategy = s
	}
	if req.ImproveAttempts != nil {
		if *req.ImproveAttempts < 0 {
			writeError(w, r, http.StatusBadRequest, "improve_attempts must not be negative")
			return
		}
		svcReq.Improve.Attempts = *req.ImproveAttempts
	}
	if req.Restarts != nil {
		// Requests stay bounded by a round count; only the server default may run to the time limit.
		if *req.Restarts < 0 {
			writeError(w, r, http.StatusBadRequest, "restarts must not be negative")
			return
		}
		svcReq.Restart.Rounds = *req.Restarts
	}
	if req.Seed != nil {
		svcReq.Improve.Seed = *req.Seed
		svcReq.Restart.Seed = *req.Seed
	}
	if req.Strict != nil {
		svcReq.Strict = *req.Strict
	}

	ctx := r.Context()
	if h.Defaults.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Defaults.TimeLimit)
		defer cancel()
	}

	start := time.Now()
	sol, err := services.Solve(ctx, in, svcReq, h.Builders)
	strategyLabel := h.strategyLabel(svcReq.Strategy)
	metrics.SolveDuration.WithLabelValues(strategyLabel).Observe(time.Since(start).Seconds())

	if err != nil {
		if isClientError(err) {
			metrics.Solves.WithLabelValues(strategyLabel, "invalid").Inc()
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		metrics.Solves.WithLabelValues(strategyLabel, "error").Inc()
		log.WithField("req_id", obs.RequestID(ctx)).WithError(err).Error("solve failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	outcome := "complete"
	if sol.Partial() {
		outcome = "partial"
		metrics.UnassignedEdges.WithLabelValues(sol.Strategy).Add(float64(len(sol.Unassigned)))
	}
	metrics.Solves.WithLabelValues(sol.Strategy, outcome).Inc()
	metrics.SolutionCost.WithLabelValues(instanceLabel, sol.Strategy).Set(float64(sol.TotalCost))

	writeJSON(w, r, http.StatusOK, toSolveResponse(in, sol))
}

// strategyLabel maps a requested strategy to a registered builder name, or "unknown".
func (h *SolveHandler) strategyLabel(name string) string {
	builders := h.Builders
	if builders == nil {
		builders = services.DefaultBuilders()
	}
	b, err := builders.Get(name)
	if err != nil {
		return "unknown"
	}
	return b.Name()
}

func isClientError(err error) bool {
	return errors.Is(err, domain.ErrInvalidInstance) ||
		errors.Is(err, domain.ErrDisconnected) ||
		errors.Is(err, domain.ErrOversizedDemand) ||
		errors.Is(err, services.ErrUnknownStrategy)
}

func toSolveResponse(in *domain.Instance, sol *domain.Solution) dto.SolveResponse {
	res := dto.SolveResponse{
		Instance:   in.Name,
		Strategy:   sol.Strategy,
		TotalCost:  sol.TotalCost,
		Routes:     make([]dto.RouteResponse, 0, len(sol.Routes)),
		Unassigned: make([][4]int, 0, len(sol.Unassigned)),
		Warnings:   []string{},
		Text:       instancefile.FormatSolution(sol),
	}

	for _, rt := range sol.Routes {
		edges := make([][2]int, 0, len(rt.Edges))
		for _, e := range rt.Edges {
			edges = append(edges, [2]int{e.From, e.To})
		}
		res.Routes = append(res.Routes, dto.RouteResponse{
			Vehicle: rt.Vehicle,
			Load:    rt.Load,
			Cost:    rt.Cost,
			Edges:   edges,
		})
	}

	for _, e := range sol.Unassigned {
		res.Unassigned = append(res.Unassigned, [4]int{e.X, e.Y, e.Cost, e.Demand})
	}
	if err := services.PartialError(in, sol); err != nil {
		res.Warnings = append(res.Warnings, err.Error())
	}

	return res
}
