package dto

type SolveRouteRequest struct {
	Start            string  `json:"start"`
	Limit            int     `json:"limit"`
	TimeLimitSeconds float64 `json:"time_limit_seconds"`
}

type TourResponse struct {
	Stops   []string `json:"stops"`
	TotalKm float64  `json:"total_km"`
}

type SearchMetricsResponse struct {
	NodesExpanded  int     `json:"nodes_expanded"`
	MaxDepth       int     `json:"max_depth"`
	ToursFound     int     `json:"tours_found"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	TimeLimitHit   bool    `json:"time_limit_hit"`
}

type SolveRouteResponse struct {
	Start     string                `json:"start"`
	Heuristic TourResponse          `json:"heuristic"`
	Best      TourResponse          `json:"best"`
	Optimal   bool                  `json:"optimal"`
	Metrics   SearchMetricsResponse `json:"metrics"`
}
