// Package geometry decodes feature-service geometry payloads into go-geom
// values and provides the axis swap and encoding helpers used downstream.
package geometry

import (
	"bytes"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

// errNoMatch is returned by an interpreter when the payload is not its shape.
var errNoMatch = eris.New("geometry: payload shape not recognized")

// Interpreter is one candidate reading of a raw geometry payload.
type Interpreter struct {
	Name   string
	Decode func(raw []byte) (geom.T, error)
}

// Interpreters is the ordered decode policy. The first interpreter that
// returns a geometry without error wins.
var Interpreters = []Interpreter{
	{Name: "geojson", Decode: decodeGeoJSON},
	{Name: "esri-point", Decode: decodeEsriPoint},
	{Name: "esri-rings", Decode: decodeEsriRings},
	{Name: "esri-paths", Decode: decodeEsriPaths},
}

// Decode converts a raw geometry payload into a canonical geometry.
// Absent, empty, or unrecognized payloads yield nil.
func Decode(raw []byte) geom.T {
	g, _ := DecodeNamed(raw)
	return g
}

// DecodeNamed is Decode that also reports which interpreter matched.
// The name is empty when the result is nil.
func DecodeNamed(raw []byte) (geom.T, string) {
	if isEmptyPayload(raw) {
		return nil, ""
	}
	for _, in := range Interpreters {
		g, err := in.Decode(raw)
		if err != nil {
			if !eris.Is(err, errNoMatch) {
				zap.L().Debug("geometry: interpreter rejected payload",
					zap.String("interpreter", in.Name),
					zap.Error(err),
				)
			}
			continue
		}
		return g, in.Name
	}
	return nil, ""
}

func isEmptyPayload(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return true
	}
	switch string(trimmed) {
	case "null", "{}":
		return true
	}
	return !gjson.ValidBytes(trimmed) || !gjson.ParseBytes(trimmed).IsObject()
}

func decodeGeoJSON(raw []byte) (geom.T, error) {
	if !gjson.GetBytes(raw, "type").Exists() {
		return nil, errNoMatch
	}
	var g geom.T
	if err := geojson.Unmarshal(raw, &g); err != nil {
		return nil, eris.Wrap(err, "geometry: decode geojson")
	}
	if IsEmpty(g) {
		return nil, eris.New("geometry: empty geojson geometry")
	}
	return g, nil
}

// IsEmpty reports whether g is nil or carries no coordinates.
func IsEmpty(g geom.T) bool {
	if g == nil {
		return true
	}
	if gc, ok := g.(*geom.GeometryCollection); ok {
		return gc.Empty()
	}
	return len(g.FlatCoords()) == 0
}

func decodeEsriPoint(raw []byte) (geom.T, error) {
	x := gjson.GetBytes(raw, "x")
	y := gjson.GetBytes(raw, "y")
	if !x.Exists() || !y.Exists() {
		return nil, errNoMatch
	}
	if x.Type != gjson.Number || y.Type != gjson.Number {
		return nil, eris.Errorf("geometry: esri point has non-numeric coordinates (%s, %s)", x.Raw, y.Raw)
	}
	return geom.NewPointFlat(geom.XY, []float64{x.Float(), y.Float()}), nil
}

// decodeEsriRings reads Esri polygon rings without exterior/hole
// disambiguation: a single ring becomes a Polygon, several rings become a
// MultiPolygon with one member per ring.
func decodeEsriRings(raw []byte) (geom.T, error) {
	field := gjson.GetBytes(raw, "rings")
	if !field.Exists() {
		return nil, errNoMatch
	}
	if !field.IsArray() {
		return nil, eris.New("geometry: esri rings is not an array")
	}

	rings := field.Array()
	if len(rings) == 1 {
		flat, err := ringCoords(rings[0])
		if err == nil {
			return geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)}), nil
		}
		zap.L().Debug("geometry: single ring polygon failed, trying multipolygon", zap.Error(err))
	}
	return multiPolygonFromRings(rings)
}

func multiPolygonFromRings(rings []gjson.Result) (geom.T, error) {
	mp := geom.NewMultiPolygon(geom.XY)
	for i, r := range rings {
		flat, err := ringCoords(r)
		if err != nil {
			zap.L().Debug("geometry: skipping malformed ring", zap.Int("ring", i), zap.Error(err))
			continue
		}
		poly := geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)})
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("geometry: skipping malformed polygon part", zap.Int("ring", i), zap.Error(err))
			continue
		}
	}
	if mp.NumPolygons() == 0 {
		return nil, eris.New("geometry: no valid rings")
	}
	return mp, nil
}

func decodeEsriPaths(raw []byte) (geom.T, error) {
	field := gjson.GetBytes(raw, "paths")
	if !field.Exists() {
		return nil, errNoMatch
	}
	if !field.IsArray() {
		return nil, eris.New("geometry: esri paths is not an array")
	}
	paths := field.Array()
	if len(paths) == 0 {
		return nil, eris.New("geometry: esri paths is empty")
	}

	// Only the first path is kept.
	flat, err := positions(paths[0])
	if err != nil {
		return nil, err
	}
	if len(flat) < 4 {
		return nil, eris.Errorf("geometry: linestring needs at least 2 positions, got %d", len(flat)/2)
	}
	return geom.NewLineStringFlat(geom.XY, flat), nil
}

// ringCoords returns the flat XY coordinates of a ring, closing it if needed.
func ringCoords(r gjson.Result) ([]float64, error) {
	flat, err := positions(r)
	if err != nil {
		return nil, err
	}
	n := len(flat) / 2
	if n == 0 {
		return nil, eris.New("geometry: empty ring")
	}
	if flat[0] != flat[len(flat)-2] || flat[1] != flat[len(flat)-1] {
		flat = append(flat, flat[0], flat[1])
		n++
	}
	if n < 4 {
		return nil, eris.Errorf("geometry: ring needs at least 4 positions once closed, got %d", n)
	}
	return flat, nil
}

// positions flattens an array of [x, y, ...] positions into XY pairs.
// Components beyond the second are dropped.
func positions(r gjson.Result) ([]float64, error) {
	if !r.IsArray() {
		return nil, eris.New("geometry: coordinate sequence is not an array")
	}
	pts := r.Array()
	flat := make([]float64, 0, len(pts)*2)
	for i, p := range pts {
		if !p.IsArray() {
			return nil, eris.Errorf("geometry: position %d is not an array", i)
		}
		c := p.Array()
		if len(c) < 2 {
			return nil, eris.Errorf("geometry: position %d has %d components", i, len(c))
		}
		if c[0].Type != gjson.Number || c[1].Type != gjson.Number {
			return nil, eris.Errorf("geometry: position %d is not numeric", i)
		}
		flat = append(flat, c[0].Float(), c[1].Float())
	}
	return flat, nil
}
