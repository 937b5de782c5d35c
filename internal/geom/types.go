package geom

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
)

var (
	ErrNoGeometry = errors.New("no geometries found")
	ErrNoRecords  = errors.New("no records found")
)

// Record is one data point for the bubble layer. NaN marks a missing
// coordinate or value.
type Record struct {
	Label      string
	Longitude  float64
	Latitude   float64
	Value      float64
	Properties map[string]string
}

func (r Record) HasPosition() bool {
	return !math.IsNaN(r.Longitude) && !math.IsNaN(r.Latitude)
}

// Data is geometry flattened for drawing: loose points and open or
// closed paths, all in lon/lat degrees.
type Data struct {
	Points []orb.Point
	Lines  []orb.LineString
	BBox   orb.Bound
}

// Flatten walks g into drawable points and paths.
func Flatten(g orb.Geometry) Data {
	var d Data
	var walk func(orb.Geometry)
	walk = func(g orb.Geometry) {
		switch g := g.(type) {
		case orb.Point:
			d.Points = append(d.Points, g)
		case orb.MultiPoint:
			d.Points = append(d.Points, g...)
		case orb.LineString:
			d.Lines = append(d.Lines, g)
		case orb.MultiLineString:
			d.Lines = append(d.Lines, g...)
		case orb.Ring:
			d.Lines = append(d.Lines, orb.LineString(g))
		case orb.Polygon:
			for _, r := range g {
				d.Lines = append(d.Lines, orb.LineString(r))
			}
		case orb.MultiPolygon:
			for _, p := range g {
				walk(p)
			}
		case orb.Collection:
			for _, c := range g {
				walk(c)
			}
		case orb.Bound:
			walk(g.ToPolygon())
		}
	}
	if g != nil {
		walk(g)
		d.BBox = g.Bound()
	}
	return d
}

// LoadOutline picks a loader by file extension.
func LoadOutline(path string) (orb.Geometry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return LoadGeoJSON(path)
	case ".shp":
		return LoadShapefile(path)
	case ".wkt":
		return LoadWKT(path)
	case ".kml":
		return LoadKML(path)
	}
	return nil, fmt.Errorf("unsupported outline format: %s", filepath.Ext(path))
}

// LoadRecords picks a record loader by file extension.
func LoadRecords(path string) ([]Record, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".geojson", ".json":
		return LoadRecordsGeoJSON(path)
	case ".kml":
		return LoadRecordsKML(path)
	case ".shp":
		return LoadRecordsShapefile(path)
	}
	return nil, fmt.Errorf("unsupported data format: %s", filepath.Ext(path))
}

func isEmpty(g orb.Geometry) bool {
	if g == nil {
		return true
	}
	switch g := g.(type) {
	case orb.MultiPoint:
		return len(g) == 0
	case orb.LineString:
		return len(g) == 0
	case orb.MultiLineString:
		return len(g) == 0
	case orb.Ring:
		return len(g) == 0
	case orb.Polygon:
		return len(g) == 0
	case orb.MultiPolygon:
		return len(g) == 0
	case orb.Collection:
		for _, c := range g {
			if !isEmpty(c) {
				return false
			}
		}
		return true
	}
	return false
}

func collect(gs []orb.Geometry) (orb.Geometry, error) {
	var c orb.Collection
	for _, g := range gs {
		if !isEmpty(g) {
			c = append(c, g)
		}
	}
	switch len(c) {
	case 0:
		return nil, ErrNoGeometry
	case 1:
		return c[0], nil
	}
	return c, nil
}
