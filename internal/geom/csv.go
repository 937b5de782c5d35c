package geom

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strings"
)

var (
	latColumns   = []string{"lat", "latitude"}
	lonColumns   = []string{"lon", "lng", "long", "longitude"}
	valueColumns = []string{"value", "val", "count", "size"}
	labelColumns = []string{"name", "label", "title"}
)

// LoadCSV reads bubble records from a CSV with a header row.
// Column detection is case-insensitive: lat|latitude and
// lon|lng|long|longitude, falling back to y and x when those are absent;
// value|val|count|size and name|label|title are optional. Unparseable
// cells become NaN so the row keeps its index.
func LoadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv %s: %w", path, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("csv %s: empty file: %w", path, ErrNoRecords)
	}
	header := recs[0]
	column := func(names ...string) int {
		for _, n := range names {
			for i, h := range header {
				if strings.EqualFold(strings.TrimSpace(h), n) {
					return i
				}
			}
		}
		return -1
	}
	idxLat := column(latColumns...)
	if idxLat == -1 {
		idxLat = column("y")
	}
	idxLon := column(lonColumns...)
	if idxLon == -1 {
		idxLon = column("x")
	}
	if idxLat == -1 || idxLon == -1 {
		return nil, fmt.Errorf("csv %s: latitude/longitude columns not found", path)
	}
	idxValue := column(valueColumns...)
	idxLabel := column(labelColumns...)

	cell := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	out := make([]Record, 0, len(recs)-1)
	for _, row := range recs[1:] {
		props := make(map[string]string, len(header))
		for i, h := range header {
			props[strings.TrimSpace(h)] = cell(row, i)
		}
		rec := Record{
			Label:      cell(row, idxLabel),
			Longitude:  parseValue(cell(row, idxLon)),
			Latitude:   parseValue(cell(row, idxLat)),
			Value:      math.NaN(),
			Properties: props,
		}
		if idxValue >= 0 {
			rec.Value = parseValue(cell(row, idxValue))
		}
		out = append(out, rec)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("csv %s: %w", path, ErrNoRecords)
	}
	return out, nil
}
