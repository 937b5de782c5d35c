package geom

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
)

func shpPoints(pts []shp.Point) []orb.Point {
	out := make([]orb.Point, len(pts))
	for i, p := range pts {
		out[i] = orb.Point{p.X, p.Y}
	}
	return out
}

// shpParts splits a part-indexed point array.
func shpParts(parts []int32, pts []shp.Point) [][]orb.Point {
	out := make([][]orb.Point, 0, len(parts))
	for i, start := range parts {
		end := int32(len(pts))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || start >= end || int(end) > len(pts) {
			continue
		}
		out = append(out, shpPoints(pts[start:end]))
	}
	return out
}

// polygonFromRings groups shapefile rings into polygons. Outer rings are
// clockwise in the format; counter-clockwise rings are holes of the
// preceding outer ring.
func polygonFromRings(rings [][]orb.Point) orb.Geometry {
	var mp orb.MultiPolygon
	for _, pts := range rings {
		r := orb.Ring(pts)
		if len(r) < 3 {
			continue
		}
		if r.Orientation() == orb.CCW && len(mp) > 0 {
			mp[len(mp)-1] = append(mp[len(mp)-1], r)
			continue
		}
		mp = append(mp, orb.Polygon{r})
	}
	if len(mp) == 1 {
		return mp[0]
	}
	return mp
}

func shapeGeometry(s shp.Shape) orb.Geometry {
	switch g := s.(type) {
	case *shp.Point:
		return orb.Point{g.X, g.Y}
	case *shp.PointZ:
		return orb.Point{g.X, g.Y}
	case *shp.PointM:
		return orb.Point{g.X, g.Y}
	case *shp.MultiPoint:
		return orb.MultiPoint(shpPoints(g.Points))
	case *shp.PolyLine:
		var mls orb.MultiLineString
		for _, part := range shpParts(g.Parts, g.Points) {
			mls = append(mls, orb.LineString(part))
		}
		return mls
	case *shp.PolyLineZ:
		var mls orb.MultiLineString
		for _, part := range shpParts(g.Parts, g.Points) {
			mls = append(mls, orb.LineString(part))
		}
		return mls
	case *shp.Polygon:
		return polygonFromRings(shpParts(g.Parts, g.Points))
	case *shp.PolygonZ:
		return polygonFromRings(shpParts(g.Parts, g.Points))
	}
	return nil
}

func fieldNames(r *shp.Reader) []string {
	fields := r.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = strings.TrimRight(string(f.Name[:]), "\x00 ")
	}
	return names
}

// LoadShapefile reads every shape of an ESRI shapefile.
func LoadShapefile(path string) (orb.Geometry, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var gs []orb.Geometry
	for r.Next() {
		_, s := r.Shape()
		if g := shapeGeometry(s); g != nil {
			gs = append(gs, g)
		}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("shapefile %s: %w", path, err)
	}
	g, err := collect(gs)
	if err != nil {
		return nil, fmt.Errorf("shapefile %s: %w", path, err)
	}
	return g, nil
}

// LoadRecordsShapefile turns point shapes into records, taking the label
// and value from the attribute table.
func LoadRecordsShapefile(path string) ([]Record, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	names := fieldNames(r)
	var recs []Record
	for r.Next() {
		n, s := r.Shape()
		p, ok := shapeGeometry(s).(orb.Point)
		if !ok {
			continue
		}
		props := make(map[string]string, len(names))
		for i, name := range names {
			props[name] = strings.TrimSpace(r.ReadAttribute(n, i))
		}
		value := math.NaN()
		if v := pick(props, valueColumns); v != "" {
			value = parseValue(v)
		}
		recs = append(recs, Record{
			Label:      pick(props, labelColumns),
			Longitude:  p[0],
			Latitude:   p[1],
			Value:      value,
			Properties: props,
		})
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("shapefile %s: %w", path, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("shapefile %s: %w", path, ErrNoRecords)
	}
	return recs, nil
}
