package geometry

import (
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

// Swap exchanges the first two components of every coordinate of g and
// returns a new geometry. Points, Polygons and MultiPolygons are handled;
// for polygons only the exterior ring is carried over. Any other geometry,
// including nil and LineStrings, is returned unchanged.
func Swap(g geom.T) geom.T {
	switch t := g.(type) {
	case *geom.Point:
		if t == nil || len(t.FlatCoords()) == 0 {
			return g
		}
		return geom.NewPointFlat(t.Layout(), swapFlat(t.FlatCoords(), t.Stride())).SetSRID(t.SRID())

	case *geom.Polygon:
		if t == nil || t.NumLinearRings() == 0 {
			return g
		}
		return swapExterior(t).SetSRID(t.SRID())

	case *geom.MultiPolygon:
		if t == nil {
			return g
		}
		mp := geom.NewMultiPolygon(t.Layout()).SetSRID(t.SRID())
		for i := 0; i < t.NumPolygons(); i++ {
			p := t.Polygon(i)
			if p.NumLinearRings() == 0 {
				continue
			}
			if err := mp.Push(swapExterior(p)); err != nil {
				zap.L().Debug("geometry: swap skipped polygon", zap.Int("polygon", i), zap.Error(err))
			}
		}
		return mp

	case *geom.LineString:
		zap.L().Debug("geometry: axis swap does not handle linestrings")
		return g

	default:
		return g
	}
}

// swapExterior rebuilds p from its exterior ring with swapped axes.
func swapExterior(p *geom.Polygon) *geom.Polygon {
	ring := p.LinearRing(0)
	flat := swapFlat(ring.FlatCoords(), ring.Stride())
	return geom.NewPolygonFlat(ring.Layout(), flat, []int{len(flat)})
}

func swapFlat(flat []float64, stride int) []float64 {
	out := make([]float64, len(flat))
	copy(out, flat)
	if stride < 2 {
		return out
	}
	for i := 0; i+1 < len(out); i += stride {
		out[i], out[i+1] = out[i+1], out[i]
	}
	return out
}
