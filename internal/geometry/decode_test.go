package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestDecode_Empty(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"nil payload", ""},
		{"json null", "null"},
		{"empty object", "{}"},
		{"whitespace", "   "},
		{"array payload", "[1, 2]"},
		{"invalid json", "{not json"},
		{"unknown shape", `{"foo": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, name := DecodeNamed([]byte(tt.raw))
			assert.Nil(t, g)
			assert.Empty(t, name)
		})
	}
}

func TestDecode_GeoJSONPassesThroughUnchanged(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		typ  geom.T
		flat []float64
	}{
		{"point", `{"type":"Point","coordinates":[-97.5,35.25]}`, &geom.Point{}, []float64{-97.5, 35.25}},
		{"linestring", `{"type":"LineString","coordinates":[[0,0],[1,1],[2,3]]}`, &geom.LineString{}, []float64{0, 0, 1, 1, 2, 3}},
		{"polygon", `{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,4],[0,0]]]}`, &geom.Polygon{}, []float64{0, 0, 4, 0, 4, 4, 0, 0}},
		{"multipolygon", `{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,0]]],[[[5,5],[6,5],[6,6],[5,5]]]]}`, &geom.MultiPolygon{}, []float64{0, 0, 1, 0, 1, 1, 0, 0, 5, 5, 6, 5, 6, 6, 5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, name := DecodeNamed([]byte(tt.raw))
			require.NotNil(t, g)
			assert.Equal(t, "geojson", name)
			assert.IsType(t, tt.typ, g)
			assert.Equal(t, tt.flat, g.FlatCoords())
		})
	}
}

func TestDecode_GeoJSONWithoutCoordinatesIsNull(t *testing.T) {
	assert.Nil(t, Decode([]byte(`{"type":"Point","coordinates":[]}`)))
	assert.Nil(t, Decode([]byte(`{"type":"Hexagon","coordinates":[1,2]}`)))
}

func TestDecode_EsriPoint(t *testing.T) {
	g, name := DecodeNamed([]byte(`{"x": 1, "y": 2, "spatialReference": {"wkid": 4326}}`))
	require.NotNil(t, g)
	assert.Equal(t, "esri-point", name)

	p, ok := g.(*geom.Point)
	require.True(t, ok)
	assert.Equal(t, 1.0, p.X())
	assert.Equal(t, 2.0, p.Y())
}

func TestDecode_EsriPointNonNumeric(t *testing.T) {
	assert.Nil(t, Decode([]byte(`{"x": null, "y": null}`)))
	assert.Nil(t, Decode([]byte(`{"x": "NaN", "y": 3}`)))
	assert.Nil(t, Decode([]byte(`{"x": 3}`)))
}

func TestDecode_EsriSingleRing(t *testing.T) {
	raw := `{"rings": [[[-122.0, 37.0], [-122.1, 37.0], [-122.1, 37.1], [-122.0, 37.1], [-122.0, 37.0]]]}`
	g, name := DecodeNamed([]byte(raw))
	require.NotNil(t, g)
	assert.Equal(t, "esri-rings", name)

	poly, ok := g.(*geom.Polygon)
	require.True(t, ok)
	assert.Equal(t, 1, poly.NumLinearRings())
	assert.Equal(t, []float64{-122.0, 37.0, -122.1, 37.0, -122.1, 37.1, -122.0, 37.1, -122.0, 37.0}, poly.FlatCoords())
}

func TestDecode_EsriRingIsClosed(t *testing.T) {
	g := Decode([]byte(`{"rings": [[[-1, 1], [-2, 1], [-2, 2]]]}`))
	require.NotNil(t, g)

	poly, ok := g.(*geom.Polygon)
	require.True(t, ok)
	assert.Equal(t, []float64{-1, 1, -2, 1, -2, 2, -1, 1}, poly.FlatCoords())
}

func TestDecode_EsriMultipleRingsBecomeMultiPolygon(t *testing.T) {
	raw := `{"rings": [
		[[0, 0], [10, 0], [10, 10], [0, 10], [0, 0]],
		[[1, 1], [1, 2], [2, 2], [2, 1], [1, 1]]
	]}`
	g := Decode([]byte(raw))
	require.NotNil(t, g)

	mp, ok := g.(*geom.MultiPolygon)
	require.True(t, ok)
	require.Equal(t, 2, mp.NumPolygons())
	assert.Equal(t, []float64{0, 0, 10, 0, 10, 10, 0, 10, 0, 0}, mp.Polygon(0).FlatCoords())
	assert.Equal(t, []float64{1, 1, 1, 2, 2, 2, 2, 1, 1, 1}, mp.Polygon(1).FlatCoords())
}

func TestDecode_EsriMalformedRingsSkipped(t *testing.T) {
	raw := `{"rings": [
		[[0, 0], [1, 1]],
		[[5, 5], [6, 5], [6, 6], [5, 5]]
	]}`
	g := Decode([]byte(raw))
	require.NotNil(t, g)

	mp, ok := g.(*geom.MultiPolygon)
	require.True(t, ok)
	require.Equal(t, 1, mp.NumPolygons())
	assert.Equal(t, []float64{5, 5, 6, 5, 6, 6, 5, 5}, mp.Polygon(0).FlatCoords())
}

func TestDecode_EsriInvalidRings(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no rings", `{"rings": []}`},
		{"empty ring", `{"rings": [[]]}`},
		{"two point ring", `{"rings": [[[0, 0], [1, 1]]]}`},
		{"non numeric", `{"rings": [[["a", "b"], [1, 1], [2, 2]]]}`},
		{"rings not array", `{"rings": "nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, Decode([]byte(tt.raw)))
		})
	}
}

func TestDecode_EsriPathsFirstPathOnly(t *testing.T) {
	raw := `{"paths": [[[-122.0, 37.0], [-122.1, 37.1]], [[0, 0], [1, 1]]]}`
	g, name := DecodeNamed([]byte(raw))
	require.NotNil(t, g)
	assert.Equal(t, "esri-paths", name)

	ls, ok := g.(*geom.LineString)
	require.True(t, ok)
	assert.Equal(t, []float64{-122.0, 37.0, -122.1, 37.1}, ls.FlatCoords())
}

func TestDecode_EsriInvalidPaths(t *testing.T) {
	assert.Nil(t, Decode([]byte(`{"paths": []}`)))
	assert.Nil(t, Decode([]byte(`{"paths": [[]]}`)))
	assert.Nil(t, Decode([]byte(`{"paths": [[[1, 2]]]}`)))
}

func TestDecode_ZValuesDropped(t *testing.T) {
	g := Decode([]byte(`{"paths": [[[1, 2, 100], [3, 4, 200]]]}`))
	require.NotNil(t, g)
	assert.Equal(t, geom.XY, g.Layout())
	assert.Equal(t, []float64{1, 2, 3, 4}, g.FlatCoords())
}

func TestDecode_PointWinsOverRings(t *testing.T) {
	g, name := DecodeNamed([]byte(`{"x": 1, "y": 2, "rings": [[[0, 0], [1, 0], [1, 1], [0, 0]]]}`))
	require.NotNil(t, g)
	assert.Equal(t, "esri-point", name)
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(geom.NewLineString(geom.XY)))
	assert.False(t, IsEmpty(geom.NewPointFlat(geom.XY, []float64{1, 2})))
}
