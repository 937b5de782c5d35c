package geom

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadGeoJSON reads a GeoJSON file (bare geometry, Feature or
// FeatureCollection) into a single geometry.
func LoadGeoJSON(path string) (orb.Geometry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := DecodeGeoJSON(data)
	if err != nil {
		return nil, fmt.Errorf("geojson %s: %w", path, err)
	}
	return g, nil
}

func DecodeGeoJSON(data []byte) (orb.Geometry, error) {
	fs, err := decodeFeatures(data)
	if err != nil {
		return nil, err
	}
	gs := make([]orb.Geometry, 0, len(fs))
	for _, f := range fs {
		gs = append(gs, f.Geometry)
	}
	return collect(gs)
}

func decodeFeatures(data []byte) ([]*geojson.Feature, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case "":
		return nil, fmt.Errorf("missing type")
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, err
		}
		return fc.Features, nil
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		return []*geojson.Feature{f}, nil
	}
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, err
	}
	return []*geojson.Feature{geojson.NewFeature(g.Geometry())}, nil
}

// LoadRecordsGeoJSON reads point features as bubble records. The value
// and label come from the "value" and "name" properties (or their usual
// aliases); each point of a MultiPoint becomes its own record.
func LoadRecordsGeoJSON(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fs, err := decodeFeatures(data)
	if err != nil {
		return nil, fmt.Errorf("geojson %s: %w", path, err)
	}
	var recs []Record
	for _, f := range fs {
		var pts []orb.Point
		switch g := f.Geometry.(type) {
		case orb.Point:
			pts = []orb.Point{g}
		case orb.MultiPoint:
			pts = g
		default:
			continue
		}
		props := map[string]string{}
		for k, v := range f.Properties {
			props[k] = propString(v)
		}
		label := pick(props, labelColumns)
		value := parseValue(pick(props, valueColumns))
		for _, p := range pts {
			recs = append(recs, Record{
				Label:      label,
				Longitude:  p[0],
				Latitude:   p[1],
				Value:      value,
				Properties: props,
			})
		}
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("geojson %s: %w", path, ErrNoRecords)
	}
	return recs, nil
}

func propString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func pick(props map[string]string, keys []string) string {
	for _, k := range keys {
		for pk, v := range props {
			if strings.EqualFold(pk, k) {
				return v
			}
		}
	}
	return ""
}

func parseValue(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
