package solver

import "math"

// engine holds the per-solve search data. The distance matrix is prefetched
// into a dense row-major buffer to keep the bound computation, the hottest
// loop in the search, free of nested slice indirection.
type engine struct {
	n     int
	start int
	w     []float64
}

func newEngine(m [][]float64, start int) *engine {
	n := len(m)
	e := &engine{n: n, start: start, w: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		copy(e.w[i*n:(i+1)*n], m[i])
	}
	return e
}

func (e *engine) at(i, j int) float64 { return e.w[i*e.n+j] }

// lowerBound computes an admissible lower bound on the cost of completing
// the partial tour represented by nd:
//
//	LB = cost + minEdge(last, Unvisited ∪ {start})
//	          + Σ over unvisited i of (min1(i) + min2(i)) / 2
//
// The remainder term follows from the degree argument: every location on a
// closed tour has exactly two incident tour edges, and both endpoints of an
// unvisited location's edges lie in Unvisited ∪ {last, start}. Summing each
// unvisited location's two cheapest candidate edges counts every such edge
// from both ends, hence the halving.
//
// For a node that has visited everything (depth == n) the only completion is
// the closing edge, so the bound is exact: cost + d(last, start).
func (e *engine) lowerBound(nd *searchNode) float64 {
	last := nd.last()
	if nd.depth == e.n {
		return nd.cost + e.at(last, e.start)
	}

	lb := nd.cost

	// Cheapest way out of the current endpoint. The tour must eventually
	// return to start, so start stays an eligible target.
	minLast := math.Inf(1)
	for j := 0; j < e.n; j++ {
		if j == last {
			continue
		}
		if !nd.visited.has(j) || j == e.start {
			if d := e.at(last, j); d < minLast {
				minLast = d
			}
		}
	}
	lb += minLast

	// Two cheapest candidate edges per unvisited location, halved.
	sum := 0.0
	for i := 0; i < e.n; i++ {
		if nd.visited.has(i) {
			continue
		}
		min1 := math.Inf(1)
		min2 := math.Inf(1)
		for j := 0; j < e.n; j++ {
			if j == i {
				continue
			}
			if nd.visited.has(j) && j != last && j != e.start {
				continue
			}
			d := e.at(i, j)
			if d < min1 {
				min2 = min1
				min1 = d
			} else if d < min2 {
				min2 = d
			}
		}
		if math.IsInf(min2, 1) {
			// Single eligible neighbor; count it twice.
			min2 = min1
		}
		sum += min1 + min2
	}
	lb += sum / 2
	return lb
}
