package geometry

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// SRIDWGS84 is the SRID stamped on geometries written to spatial databases.
const SRIDWGS84 = 4326

// WKT encodes g as Well-Known Text. A nil geometry encodes to "".
func WKT(g geom.T) (string, error) {
	if g == nil {
		return "", nil
	}
	s, err := wkt.Marshal(g)
	if err != nil {
		return "", eris.Wrap(err, "geometry: encode WKT")
	}
	return s, nil
}

// EWKB encodes g as little-endian EWKB carrying srid.
// Returns nil, nil for a nil geometry.
func EWKB(g geom.T, srid int) ([]byte, error) {
	if g == nil {
		return nil, nil
	}
	data, err := ewkb.Marshal(WithSRID(g, srid), ewkb.NDR)
	if err != nil {
		return nil, eris.Wrap(err, "geometry: encode EWKB")
	}
	return data, nil
}

// WithSRID returns a copy of g stamped with srid. Geometry kinds that
// cannot be cloned are returned as is.
func WithSRID(g geom.T, srid int) geom.T {
	switch t := g.(type) {
	case *geom.Point:
		return t.Clone().SetSRID(srid)
	case *geom.LineString:
		return t.Clone().SetSRID(srid)
	case *geom.Polygon:
		return t.Clone().SetSRID(srid)
	case *geom.MultiPoint:
		return t.Clone().SetSRID(srid)
	case *geom.MultiLineString:
		return t.Clone().SetSRID(srid)
	case *geom.MultiPolygon:
		return t.Clone().SetSRID(srid)
	default:
		return g
	}
}

// TypeName returns the OGC type name of g, or "" for nil.
func TypeName(g geom.T) string {
	switch g.(type) {
	case *geom.Point:
		return "Point"
	case *geom.LineString:
		return "LineString"
	case *geom.Polygon:
		return "Polygon"
	case *geom.MultiPoint:
		return "MultiPoint"
	case *geom.MultiLineString:
		return "MultiLineString"
	case *geom.MultiPolygon:
		return "MultiPolygon"
	case *geom.GeometryCollection:
		return "GeometryCollection"
	default:
		return ""
	}
}
