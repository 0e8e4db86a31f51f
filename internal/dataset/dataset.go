// Package dataset loads raw address record CSV exports and aggregates them
// into per-neighborhood counts for routing.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"neighborhood-route-service/internal/domain"
)

// Record is one raw address row. Only the fields the aggregation needs are
// retained.
type Record struct {
	UF           string
	Neighborhood string
	Code         int
}

// LoadRecords reads address records from a CSV file with a header row.
// Required columns: municipio, cod_ibge; optional: uf. Rows with an empty
// neighborhood name or an unparsable code are skipped, matching the
// upstream export which contains partially filled rows. When ufFilter is
// non-empty only records of that state are returned.
func LoadRecords(path string, ufFilter string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load records: open %q: %w", path, err)
	}
	defer f.Close()

	return ParseRecords(f, ufFilter)
}

// ParseRecords consumes CSV content from r. See LoadRecords.
func ParseRecords(r io.Reader, ufFilter string) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("parse records: read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}

	nameIdx, ok := col["municipio"]
	if !ok {
		return nil, fmt.Errorf("parse records: missing required column %q", "municipio")
	}
	codeIdx, ok := col["cod_ibge"]
	if !ok {
		return nil, fmt.Errorf("parse records: missing required column %q", "cod_ibge")
	}
	ufIdx, hasUF := col["uf"]

	ufFilter = strings.ToUpper(strings.TrimSpace(ufFilter))

	var records []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse records: line %d: %w", line, err)
		}

		name := strings.TrimSpace(row[nameIdx])
		if name == "" {
			continue
		}

		code, err := strconv.Atoi(strings.TrimSpace(row[codeIdx]))
		if err != nil {
			continue
		}

		uf := ""
		if hasUF {
			uf = strings.ToUpper(strings.TrimSpace(row[ufIdx]))
		}
		if ufFilter != "" && hasUF && uf != ufFilter {
			continue
		}

		records = append(records, Record{UF: uf, Neighborhood: name, Code: code})
	}

	return records, nil
}

// Aggregate collapses raw records into one Neighborhood per (code, name)
// pair with its record count, ordered by count descending then name
// ascending so the densest neighborhoods come first.
func Aggregate(records []Record) []*domain.Neighborhood {
	type key struct {
		code int
		name string
	}

	counts := make(map[key]int)
	for _, r := range records {
		counts[key{code: r.Code, name: r.Neighborhood}]++
	}

	hoods := make([]*domain.Neighborhood, 0, len(counts))
	for k, c := range counts {
		hoods = append(hoods, &domain.Neighborhood{Code: k.code, Name: k.name, Count: c})
	}

	sort.Slice(hoods, func(i, j int) bool {
		if hoods[i].Count != hoods[j].Count {
			return hoods[i].Count > hoods[j].Count
		}
		return hoods[i].Name < hoods[j].Name
	})

	return hoods
}

// TopN returns the first n neighborhoods of an aggregated slice, or the
// whole slice when it is shorter.
func TopN(hoods []*domain.Neighborhood, n int) []*domain.Neighborhood {
	if n <= 0 || n >= len(hoods) {
		return hoods
	}
	return hoods[:n]
}
