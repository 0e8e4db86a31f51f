package solver

import "math"

// NearestNeighbor builds a feasible closed tour greedily: starting at start,
// it repeatedly moves to the closest unvisited location (ties broken by
// lowest index), then returns to start. The result seeds the branch-and-bound
// incumbent and doubles as a comparison baseline.
//
// The function is pure: identical inputs always produce the identical tour.
// For fewer than two locations it returns a degenerate zero-cost tour.
//
// start must be a valid index into m; NearestNeighbor does not validate its
// inputs. Solve checks the matrix and start before calling it.
func NearestNeighbor(m [][]float64, start int) ([]int, float64) {
	n := len(m)
	if n == 0 {
		return []int{}, 0
	}
	if n == 1 {
		return []int{start, start}, 0
	}

	visited := make([]bool, n)
	visited[start] = true
	tour := make([]int, 1, n+1)
	tour[0] = start

	current := start
	cost := 0.0
	for step := 1; step < n; step++ {
		next := -1
		best := math.Inf(1)
		// Ascending scan with a strict comparison keeps the lowest index on ties.
		for j := 0; j < n; j++ {
			if !visited[j] && m[current][j] < best {
				best = m[current][j]
				next = j
			}
		}
		visited[next] = true
		tour = append(tour, next)
		cost += best
		current = next
	}

	cost += m[current][start]
	tour = append(tour, start)
	return tour, cost
}
