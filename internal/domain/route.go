package domain

// Tour is one closed route over a set of neighborhoods: an ordered stop list
// that starts and ends at the same neighborhood, with its total length.
type Tour struct {
	Stops   []string
	TotalKm float64
}

// SearchMetrics describes the work the optimizer performed for one solve.
type SearchMetrics struct {
	NodesExpanded  int
	MaxDepth       int
	ToursFound     int
	ElapsedSeconds float64
	TimeLimitHit   bool
}

// RouteResult is the output of a route optimization run: the optimizer's
// best tour next to the greedy baseline it started from, plus search
// metrics. Optimal reports whether the search proved optimality; when false
// the best tour is the incumbent found within the time budget.
// It is immutable planning data and contains no side effects.
type RouteResult struct {
	Start     string
	Heuristic Tour
	Best      Tour
	Optimal   bool
	Metrics   SearchMetrics
}
