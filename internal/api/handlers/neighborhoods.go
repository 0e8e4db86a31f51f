package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"neighborhood-route-service/internal/api/dto"
	"neighborhood-route-service/internal/ports"
)

// NeighborhoodHandler exposes read-only neighborhood retrieval endpoints.
type NeighborhoodHandler struct {
	Repo ports.NeighborhoodRepository
}

func (h *NeighborhoodHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, r, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	hoods, err := h.Repo.ListNeighborhoods(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list neighborhoods failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListNeighborhoodsResponse{
		Neighborhoods: make([]dto.NeighborhoodResponse, 0, len(hoods)),
	}
	for _, n := range hoods {
		res.Neighborhoods = append(res.Neighborhoods, dto.NeighborhoodResponse{
			Code:        n.Code,
			Name:        n.Name,
			RecordCount: n.Count,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
