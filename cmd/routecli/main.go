package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"neighborhood-route-service/internal/adapters/geocode"
	"neighborhood-route-service/internal/dataset"
	"neighborhood-route-service/internal/domain"
	"neighborhood-route-service/internal/geo"
	"neighborhood-route-service/internal/solver"
)

// routecli runs the route optimizer directly over a dataset CSV, without a
// database or HTTP server. By default distances are approximated from the
// neighborhood codes so the tool works fully offline; -geocode switches to
// real coordinates resolved through Nominatim.
func main() {
	var (
		csvPath    = flag.String("csv", "data/enderecos_pr_filtered.csv", "dataset CSV path")
		ufFilter   = flag.String("uf", "", "keep only rows for this UF")
		topN       = flag.Int("top", 10, "route over the N neighborhoods with the most records")
		start      = flag.String("start", "", "start neighborhood name (default: most records)")
		timeLimit  = flag.Duration("time-limit", 30*time.Second, "search budget")
		useGeocode = flag.Bool("geocode", false, "resolve real coordinates via Nominatim")
		region     = flag.String("region", "PR, Brasil", "region suffix for geocoding queries")
	)
	flag.Parse()

	if err := run(*csvPath, *ufFilter, *topN, *start, *timeLimit, *useGeocode, *region); err != nil {
		fmt.Fprintln(os.Stderr, "routecli:", err)
		os.Exit(1)
	}
}

func run(csvPath, ufFilter string, topN int, start string, timeLimit time.Duration, useGeocode bool, region string) error {
	records, err := dataset.LoadRecords(csvPath, ufFilter)
	if err != nil {
		return err
	}
	hoods := dataset.TopN(dataset.Aggregate(records), topN)
	if len(hoods) == 0 {
		return fmt.Errorf("no usable rows in %q", csvPath)
	}

	var m [][]float64
	if useGeocode {
		gc := geocode.NewNominatimGeocoder("https://nominatim.openstreetmap.org", region)
		for _, h := range hoods {
			c, err := gc.Geocode(context.Background(), h.Name)
			if err != nil {
				return fmt.Errorf("geocode %q: %w", h.Name, err)
			}
			h.Coords = &c
		}
		m, err = geo.NeighborhoodMatrix(hoods)
		if err != nil {
			return err
		}
	} else {
		codes := make([]int, len(hoods))
		for i, h := range hoods {
			codes[i] = h.Code
		}
		m = geo.CodeProxyMatrix(codes)
	}

	startIdx := 0
	if s := strings.TrimSpace(start); s != "" {
		startIdx = -1
		for i, h := range hoods {
			if strings.EqualFold(h.Name, s) {
				startIdx = i
				break
			}
		}
		if startIdx < 0 {
			return fmt.Errorf("start neighborhood %q not among the top %d", start, len(hoods))
		}
	}

	heurPath, heurCost := solver.NearestNeighbor(m, startIdx)
	res, err := solver.Solve(m, startIdx, timeLimit)
	if err != nil {
		return err
	}

	unit := "km"
	if !useGeocode {
		unit = "units"
	}

	fmt.Printf("neighborhoods: %d (start: %s)\n\n", len(hoods), hoods[startIdx].Name)
	fmt.Printf("greedy baseline:  %.3f %s\n  %s\n", heurCost, unit, tourLine(hoods, heurPath))
	fmt.Printf("branch and bound: %.3f %s\n  %s\n\n", res.Cost, unit, tourLine(hoods, res.Tour))

	if res.Cost < heurCost {
		fmt.Printf("improvement: %.1f%%\n", 100*(heurCost-res.Cost)/heurCost)
	} else {
		fmt.Println("the greedy tour was already optimal")
	}

	status := "proven optimal"
	if !res.Optimal {
		status = "time limit hit, best incumbent shown"
	}
	fmt.Printf("status: %s\n", status)
	fmt.Printf("nodes expanded: %d, tours found: %d, max depth: %d, elapsed: %s\n",
		res.Metrics.NodesExpanded, res.Metrics.ToursFound, res.Metrics.MaxDepth, res.Metrics.Elapsed.Round(time.Millisecond))

	return nil
}

func tourLine(hoods []*domain.Neighborhood, path []int) string {
	names := make([]string, len(path))
	for i, idx := range path {
		names[i] = hoods[idx].Name
	}
	return strings.Join(names, " -> ")
}
