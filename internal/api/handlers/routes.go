package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"neighborhood-route-service/internal/api/dto"
	"neighborhood-route-service/internal/ports"
	"neighborhood-route-service/internal/services"
)

// Hard ceiling on per-request solve budgets so one request cannot pin a CPU
// for minutes.
const maxTimeLimitSeconds = 300

type RouteHandler struct {
	Repo     ports.NeighborhoodRepository
	Geocoder ports.Geocoder

	// Applied when the request omits the corresponding field.
	DefaultTimeLimit time.Duration
	DefaultLimit     int
}

// Solve runs the route optimizer over the requested neighborhoods.
func (h *RouteHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SolveRouteRequest

	dec := json.NewDecoder(r.Body)
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

	limit := req.Limit
	if limit == 0 {
		limit = h.DefaultLimit
	}
	if limit < 0 {
		writeError(w, r, http.StatusBadRequest, "limit must be non-negative")
		return
	}

	timeLimit := h.DefaultTimeLimit
	if req.TimeLimitSeconds != 0 {
		if req.TimeLimitSeconds < 0 || req.TimeLimitSeconds > maxTimeLimitSeconds {
			writeError(w, r, http.StatusBadRequest, "time_limit_seconds must be between 0 and 300")
			return
		}
		timeLimit = time.Duration(req.TimeLimitSeconds * float64(time.Second))
	}

	svcReq := services.SolveRouteRequest{
		Limit:     limit,
		Start:     req.Start,
		TimeLimit: timeLimit,
	}

	result, err := services.SolveRoute(r.Context(), svcReq, h.Repo, h.Geocoder)
	if err != nil {
		if errors.Is(err, services.ErrUnknownStart) {
			writeError(w, r, http.StatusBadRequest, "start neighborhood not found")
			return
		}
		log.Error().Err(err).Msg("solve route failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.SolveRouteResponse{
		Start:     result.Start,
		Heuristic: dto.TourResponse{Stops: result.Heuristic.Stops, TotalKm: result.Heuristic.TotalKm},
		Best:      dto.TourResponse{Stops: result.Best.Stops, TotalKm: result.Best.TotalKm},
		Optimal:   result.Optimal,
		Metrics: dto.SearchMetricsResponse{
			NodesExpanded:  result.Metrics.NodesExpanded,
			MaxDepth:       result.Metrics.MaxDepth,
			ToursFound:     result.Metrics.ToursFound,
			ElapsedSeconds: result.Metrics.ElapsedSeconds,
			TimeLimitHit:   result.Metrics.TimeLimitHit,
		},
	}

	writeJSON(w, r, http.StatusOK, res)
}
