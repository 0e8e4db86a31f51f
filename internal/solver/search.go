package solver

import (
	"container/heap"
	"fmt"
	"time"
)

// Metrics accumulates counters over a single Solve call. NodesExpanded
// counts every node popped from the frontier, including nodes discarded
// because their bound no longer beats the incumbent.
type Metrics struct {
	NodesExpanded int
	MaxDepth      int
	ToursFound    int
	Elapsed       time.Duration
	TimeLimitHit  bool
}

// Result is the outcome of a Solve call. Tour has length n+1 and starts and
// ends at the requested start index. Optimal reports whether the search
// exhausted the frontier: when false the tour is the best incumbent found
// within the time budget, not a proven optimum.
type Result struct {
	Tour    []int
	Cost    float64
	Optimal bool
	Metrics Metrics
}

// Solve finds a minimum-cost closed tour over the locations of the given
// symmetric distance matrix using best-first branch-and-bound.
//
// The incumbent is seeded from NearestNeighbor, so the returned cost never
// exceeds the heuristic's. The frontier is a min-heap keyed by an admissible
// lower bound with FIFO tie-breaking; given identical inputs and a generous
// time budget, the returned tour, cost, and counters (everything except
// Elapsed) are identical across runs.
//
// Solve validates all preconditions before allocating any search state and
// returns a wrapped validation sentinel on the first violation. Running out
// of time is not an error: the incumbent is returned with Optimal == false.
func Solve(m [][]float64, start int, timeLimit time.Duration) (Result, error) {
	if err := ValidateMatrix(m); err != nil {
		return Result{}, fmt.Errorf("solve: %w", err)
	}
	n := len(m)
	if start < 0 || start >= n {
		return Result{}, fmt.Errorf("solve: start %d, want [0,%d): %w", start, n, ErrStartOutOfRange)
	}
	if timeLimit <= 0 {
		return Result{}, fmt.Errorf("solve: time limit %v: %w", timeLimit, ErrInvalidTimeLimit)
	}

	// A single location routes trivially to itself; no search is performed.
	if n == 1 {
		return Result{Tour: []int{start, start}, Cost: 0, Optimal: true}, nil
	}

	began := time.Now()

	bestTour, bestCost := NearestNeighbor(m, start)

	e := newEngine(m, start)

	root := &searchNode{
		path:    []int{start},
		visited: newBitset(n),
		depth:   1,
	}
	root.visited.set(start)
	root.bound = e.lowerBound(root)

	var seq uint64
	queue := nodeQueue{root}
	heap.Init(&queue)

	var met Metrics
	for queue.Len() > 0 {
		if time.Since(began) >= timeLimit {
			met.TimeLimitHit = true
			break
		}

		nd := heap.Pop(&queue).(*searchNode)
		met.NodesExpanded++
		if nd.depth > met.MaxDepth {
			met.MaxDepth = nd.depth
		}

		// The frontier is bound-ordered: once the cheapest bound cannot beat
		// the incumbent, no queued node can, and the incumbent is optimal.
		if nd.bound >= bestCost {
			break
		}

		if nd.depth == n {
			closed := nd.cost + e.at(nd.last(), start)
			if closed < bestCost {
				bestCost = closed
				bestTour = append(append(make([]int, 0, n+1), nd.path...), start)
				met.ToursFound++
			}
			continue
		}

		last := nd.last()
		for j := 0; j < n; j++ {
			if nd.visited.has(j) {
				continue
			}
			child := &searchNode{
				path:    append(append(make([]int, 0, nd.depth+1), nd.path...), j),
				visited: nd.visited.clone(),
				cost:    nd.cost + e.at(last, j),
				depth:   nd.depth + 1,
			}
			child.visited.set(j)
			child.bound = e.lowerBound(child)
			// Prune before insertion; discarding here is equivalent to
			// discarding on pop but keeps the frontier small.
			if child.bound < bestCost {
				seq++
				child.seq = seq
				heap.Push(&queue, child)
			}
		}
	}

	met.Elapsed = time.Since(began)
	return Result{
		Tour:    bestTour,
		Cost:    bestCost,
		Optimal: !met.TimeLimitHit,
		Metrics: met,
	}, nil
}
