package geom

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const featureCollection = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "box"},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[10,0],[10,10],[0,10],[0,0]]]}},
    {"type": "Feature", "properties": {"name": "Paris", "value": 12.5},
     "geometry": {"type": "Point", "coordinates": [2.35, 48.85]}},
    {"type": "Feature", "properties": {"Label": "pair", "count": "3"},
     "geometry": {"type": "MultiPoint", "coordinates": [[1,1],[2,2]]}}
  ]
}`

func TestLoadGeoJSONFeatureCollection(t *testing.T) {
	g, err := LoadGeoJSON(writeFile(t, "fc.geojson", featureCollection))
	require.NoError(t, err)
	c, ok := g.(orb.Collection)
	require.True(t, ok)
	assert.Len(t, c, 3)
	assert.IsType(t, orb.Polygon{}, c[0])
	assert.Equal(t, orb.Point{2.35, 48.85}, c[1])
}

func TestLoadGeoJSONSingle(t *testing.T) {
	g, err := LoadGeoJSON(writeFile(t, "g.json", `{"type":"LineString","coordinates":[[0,0],[5,5]]}`))
	require.NoError(t, err)
	assert.Equal(t, orb.LineString{{0, 0}, {5, 5}}, g)

	g, err = LoadGeoJSON(writeFile(t, "f.json", `{"type":"Feature","properties":null,"geometry":{"type":"Point","coordinates":[1,2]}}`))
	require.NoError(t, err)
	assert.Equal(t, orb.Point{1, 2}, g)
}

func TestLoadGeoJSONErrors(t *testing.T) {
	_, err := LoadGeoJSON(writeFile(t, "empty.geojson", `{"type":"FeatureCollection","features":[]}`))
	assert.ErrorIs(t, err, ErrNoGeometry)

	_, err = LoadGeoJSON(writeFile(t, "notype.geojson", `{"coordinates":[1,2]}`))
	assert.Error(t, err)

	_, err = LoadGeoJSON(filepath.Join(t.TempDir(), "missing.geojson"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRecordsGeoJSON(t *testing.T) {
	recs, err := LoadRecordsGeoJSON(writeFile(t, "fc.geojson", featureCollection))
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "Paris", recs[0].Label)
	assert.Equal(t, 12.5, recs[0].Value)
	assert.Equal(t, 2.35, recs[0].Longitude)
	assert.Equal(t, 48.85, recs[0].Latitude)

	assert.Equal(t, "pair", recs[1].Label)
	assert.Equal(t, 3.0, recs[2].Value)
	assert.Equal(t, orb.Point{2, 2}, orb.Point{recs[2].Longitude, recs[2].Latitude})

	_, err = LoadRecordsGeoJSON(writeFile(t, "poly.geojson", `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`))
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "pts.csv", "Name, Latitude, Longitude, Value\nParis,48.85,2.35,10\nnowhere,,,\nRome,41.9,12.5,n/a\n")
	recs, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "Paris", recs[0].Label)
	assert.Equal(t, 2.35, recs[0].Longitude)
	assert.Equal(t, 48.85, recs[0].Latitude)
	assert.Equal(t, 10.0, recs[0].Value)
	assert.Equal(t, "48.85", recs[0].Properties["Latitude"])

	assert.False(t, recs[1].HasPosition())
	assert.True(t, math.IsNaN(recs[2].Value))
	assert.True(t, recs[2].HasPosition())
}

func TestLoadCSVFallsBackToXY(t *testing.T) {
	recs, err := LoadCSV(writeFile(t, "xy.csv", "x,y,size\n-3,40,7\n"))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, -3.0, recs[0].Longitude)
	assert.Equal(t, 40.0, recs[0].Latitude)
	assert.Equal(t, 7.0, recs[0].Value)

	// explicit names win over x/y
	recs, err = LoadCSV(writeFile(t, "both.csv", "x,y,lon,lat\n1,2,3,4\n"))
	require.NoError(t, err)
	assert.Equal(t, 3.0, recs[0].Longitude)
	assert.Equal(t, 4.0, recs[0].Latitude)
}

func TestLoadCSVErrors(t *testing.T) {
	_, err := LoadCSV(writeFile(t, "none.csv", "a,b\n1,2\n"))
	assert.ErrorContains(t, err, "columns not found")

	_, err = LoadCSV(writeFile(t, "header.csv", "lat,lon\n"))
	assert.ErrorIs(t, err, ErrNoRecords)

	_, err = LoadCSV(writeFile(t, "empty.csv", ""))
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestParseWKT(t *testing.T) {
	g, err := ParseWKT("  POLYGON((0 0, 10 0, 10 10, 0 10, 0 0))  ")
	require.NoError(t, err)
	assert.Equal(t, orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}}, g)

	_, err = ParseWKT("")
	assert.ErrorIs(t, err, ErrNoGeometry)

	_, err = ParseWKT("CIRCLE(1 2)")
	assert.Error(t, err)
}

func TestLoadWKT(t *testing.T) {
	g, err := LoadWKT(writeFile(t, "shapes.wkt", "POINT(1 2)\n\nLINESTRING(0 0, 3 3)\n"))
	require.NoError(t, err)
	assert.Equal(t, orb.Collection{orb.Point{1, 2}, orb.LineString{{0, 0}, {3, 3}}}, g)

	_, err = LoadWKT(writeFile(t, "bad.wkt", "POINT(1 2)\nPOINT(x)\n"))
	assert.ErrorContains(t, err, ":2:")
}

const kmlDoc = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
 <Document>
  <Folder>
   <Placemark>
    <name>Paris</name>
    <ExtendedData><Data name="value"><value>12</value></Data></ExtendedData>
    <Point><coordinates>2.35,48.85,0</coordinates></Point>
   </Placemark>
  </Folder>
  <Placemark>
   <name>area</name>
   <Polygon>
    <outerBoundaryIs><LinearRing><coordinates>0,0 10,0 10,10 0,10 0,0</coordinates></LinearRing></outerBoundaryIs>
    <innerBoundaryIs><LinearRing><coordinates>2,2 3,2 3,3 2,2</coordinates></LinearRing></innerBoundaryIs>
   </Polygon>
  </Placemark>
  <Placemark>
   <MultiGeometry>
    <LineString><coordinates>0,0 1,1</coordinates></LineString>
   </MultiGeometry>
  </Placemark>
 </Document>
</kml>`

func TestLoadKML(t *testing.T) {
	path := writeFile(t, "doc.kml", kmlDoc)
	g, err := LoadKML(path)
	require.NoError(t, err)
	c, ok := g.(orb.Collection)
	require.True(t, ok)
	require.Len(t, c, 3)
	// document placemarks come before those in nested folders
	poly, ok := c[0].(orb.Polygon)
	require.True(t, ok)
	assert.Len(t, poly, 2)
	assert.Equal(t, orb.LineString{{0, 0}, {1, 1}}, c[1])
	assert.Equal(t, orb.Point{2.35, 48.85}, c[2])

	recs, err := LoadRecordsKML(path)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Paris", recs[0].Label)
	assert.Equal(t, 12.0, recs[0].Value)
}

func TestShapefileRoundTrip(t *testing.T) {
	dir := t.TempDir()

	polyPath := filepath.Join(dir, "outline.shp")
	w, err := shp.Create(polyPath, shp.POLYGON)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{shp.StringField("NAME", 20)}))
	ring := []shp.Point{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 0}}
	n := w.Write(&shp.Polygon{
		Box:       shp.Box{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
		NumParts:  1,
		NumPoints: int32(len(ring)),
		Parts:     []int32{0},
		Points:    ring,
	})
	require.NoError(t, w.WriteAttribute(int(n), 0, "box"))
	w.Close()

	g, err := LoadOutline(polyPath)
	require.NoError(t, err)
	poly, ok := g.(orb.Polygon)
	require.True(t, ok)
	assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}}, poly.Bound())

	ptsPath := filepath.Join(dir, "cities.shp")
	w, err = shp.Create(ptsPath, shp.POINT)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{shp.StringField("NAME", 20), shp.FloatField("VALUE", 10, 2)}))
	n = w.Write(&shp.Point{X: 2.35, Y: 48.85})
	require.NoError(t, w.WriteAttribute(int(n), 0, "Paris"))
	require.NoError(t, w.WriteAttribute(int(n), 1, 12.5))
	w.Close()

	recs, err := LoadRecords(ptsPath)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Paris", recs[0].Label)
	assert.Equal(t, 12.5, recs[0].Value)
	assert.InDelta(t, 2.35, recs[0].Longitude, 1e-12)
}

func TestPolygonFromRingsGroupsHoles(t *testing.T) {
	outer := []orb.Point{{0, 0}, {0, 10}, {10, 10}, {10, 0}, {0, 0}}
	hole := []orb.Point{{2, 2}, {4, 2}, {4, 4}, {2, 4}, {2, 2}}
	other := []orb.Point{{20, 0}, {20, 5}, {25, 5}, {25, 0}, {20, 0}}

	g := polygonFromRings([][]orb.Point{outer, hole, other})
	mp, ok := g.(orb.MultiPolygon)
	require.True(t, ok)
	require.Len(t, mp, 2)
	assert.Len(t, mp[0], 2)
	assert.Len(t, mp[1], 1)
}

func TestFlatten(t *testing.T) {
	g := orb.Collection{
		orb.Point{1, 1},
		orb.MultiPolygon{{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}, {{0.2, 0.2}, {0.5, 0.2}, {0.5, 0.5}, {0.2, 0.2}}}},
		orb.MultiLineString{{{5, 5}, {6, 6}}},
	}
	d := Flatten(g)
	assert.Len(t, d.Points, 1)
	assert.Len(t, d.Lines, 3)
	assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{6, 6}}, d.BBox)
	assert.Empty(t, Flatten(nil).Lines)
}

func TestLoadOutlineUnsupported(t *testing.T) {
	_, err := LoadOutline("map.gpx")
	assert.ErrorContains(t, err, "unsupported outline format")
	_, err = LoadRecords("map.gpx")
	assert.ErrorContains(t, err, "unsupported data format")
}
