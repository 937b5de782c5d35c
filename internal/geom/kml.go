package geom

import (
	"encoding/xml"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlBoundary struct {
	LinearRing kmlCoords `xml:"LinearRing"`
}

type kmlPolygon struct {
	Outer kmlBoundary   `xml:"outerBoundaryIs"`
	Inner []kmlBoundary `xml:"innerBoundaryIs"`
}

type kmlMulti struct {
	Points   []kmlCoords  `xml:"Point"`
	Lines    []kmlCoords  `xml:"LineString"`
	Polygons []kmlPolygon `xml:"Polygon"`
	Multi    []kmlMulti   `xml:"MultiGeometry"`
}

type kmlData struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value"`
}

type kmlPlacemark struct {
	Name string    `xml:"name"`
	Data []kmlData `xml:"ExtendedData>Data"`
	kmlMulti
}

// KML nests placemarks in Documents and Folders to any depth.
type kmlContainer struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
	Documents  []kmlContainer `xml:"Document"`
	Folders    []kmlContainer `xml:"Folder"`
}

func (c kmlContainer) walk(fn func(kmlPlacemark)) {
	for _, pm := range c.Placemarks {
		fn(pm)
	}
	for _, d := range c.Documents {
		d.walk(fn)
	}
	for _, f := range c.Folders {
		f.walk(fn)
	}
}

func readKML(path string) (kmlContainer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return kmlContainer{}, err
	}
	var doc kmlContainer
	if err := xml.Unmarshal(data, &doc); err != nil {
		return kmlContainer{}, fmt.Errorf("kml %s: %w", path, err)
	}
	return doc, nil
}

// parseCoords reads "lon,lat[,alt]" tuples separated by whitespace;
// altitude is ignored.
func parseCoords(s string) []orb.Point {
	var pts []orb.Point
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		pts = append(pts, orb.Point{lon, lat})
	}
	return pts
}

func (m kmlMulti) geometries() []orb.Geometry {
	var gs []orb.Geometry
	for _, p := range m.Points {
		if pts := parseCoords(p.Coordinates); len(pts) > 0 {
			gs = append(gs, pts[0])
		}
	}
	for _, l := range m.Lines {
		if pts := parseCoords(l.Coordinates); len(pts) > 1 {
			gs = append(gs, orb.LineString(pts))
		}
	}
	for _, p := range m.Polygons {
		outer := parseCoords(p.Outer.LinearRing.Coordinates)
		if len(outer) < 3 {
			continue
		}
		poly := orb.Polygon{orb.Ring(outer)}
		for _, in := range p.Inner {
			if hole := parseCoords(in.LinearRing.Coordinates); len(hole) >= 3 {
				poly = append(poly, orb.Ring(hole))
			}
		}
		gs = append(gs, poly)
	}
	for _, sub := range m.Multi {
		gs = append(gs, sub.geometries()...)
	}
	return gs
}

// LoadKML reads every placemark geometry of a KML file: points, line
// strings, polygons with holes and multi-geometries.
func LoadKML(path string) (orb.Geometry, error) {
	doc, err := readKML(path)
	if err != nil {
		return nil, err
	}
	var gs []orb.Geometry
	doc.walk(func(pm kmlPlacemark) {
		gs = append(gs, pm.geometries()...)
	})
	g, err := collect(gs)
	if err != nil {
		return nil, fmt.Errorf("kml %s: %w", path, err)
	}
	return g, nil
}

// LoadRecordsKML turns point placemarks into records. The value comes
// from an ExtendedData entry named like a value column.
func LoadRecordsKML(path string) ([]Record, error) {
	doc, err := readKML(path)
	if err != nil {
		return nil, err
	}
	var recs []Record
	doc.walk(func(pm kmlPlacemark) {
		if len(pm.Points) == 0 {
			return
		}
		pts := parseCoords(pm.Points[0].Coordinates)
		if len(pts) == 0 {
			return
		}
		props := map[string]string{}
		for _, d := range pm.Data {
			props[d.Name] = strings.TrimSpace(d.Value)
		}
		if pm.Name != "" {
			props["name"] = strings.TrimSpace(pm.Name)
		}
		value := math.NaN()
		if v := pick(props, valueColumns); v != "" {
			value = parseValue(v)
		}
		recs = append(recs, Record{
			Label:      strings.TrimSpace(pm.Name),
			Longitude:  pts[0][0],
			Latitude:   pts[0][1],
			Value:      value,
			Properties: props,
		})
	})
	if len(recs) == 0 {
		return nil, fmt.Errorf("kml %s: %w", path, ErrNoRecords)
	}
	return recs, nil
}
