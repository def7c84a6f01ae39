package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestSwap_Point(t *testing.T) {
	p := geom.NewPointFlat(geom.XY, []float64{-97.5, 35.2})

	got := Swap(p)
	require.IsType(t, &geom.Point{}, got)
	assert.Equal(t, []float64{35.2, -97.5}, got.FlatCoords())

	// The input is not mutated.
	assert.Equal(t, []float64{-97.5, 35.2}, p.FlatCoords())
}

func TestSwap_Polygon(t *testing.T) {
	poly := geom.NewPolygonFlat(geom.XY, []float64{0, 1, 2, 1, 2, 3, 0, 1}, []int{8})

	got := Swap(poly)
	require.IsType(t, &geom.Polygon{}, got)
	assert.Equal(t, []float64{1, 0, 1, 2, 3, 2, 1, 0}, got.FlatCoords())
}

func TestSwap_PolygonDropsHoles(t *testing.T) {
	poly := geom.NewPolygonFlat(geom.XY,
		[]float64{0, 0, 10, 0, 10, 10, 0, 0, 1, 1, 2, 1, 2, 2, 1, 1},
		[]int{8, 16},
	)

	got, ok := Swap(poly).(*geom.Polygon)
	require.True(t, ok)
	assert.Equal(t, 1, got.NumLinearRings())
	assert.Equal(t, []float64{0, 0, 0, 10, 10, 10, 0, 0}, got.FlatCoords())
}

func TestSwap_MultiPolygon(t *testing.T) {
	mp := geom.NewMultiPolygonFlat(geom.XY,
		[]float64{0, 1, 2, 1, 2, 3, 0, 1, 5, 6, 7, 6, 7, 8, 5, 6},
		[][]int{{8}, {16}},
	)

	got, ok := Swap(mp).(*geom.MultiPolygon)
	require.True(t, ok)
	require.Equal(t, 2, got.NumPolygons())
	assert.Equal(t, []float64{1, 0, 1, 2, 3, 2, 1, 0}, got.Polygon(0).FlatCoords())
	assert.Equal(t, []float64{6, 5, 6, 7, 8, 7, 6, 5}, got.Polygon(1).FlatCoords())
}

func TestSwap_Involution(t *testing.T) {
	tests := []struct {
		name string
		g    geom.T
	}{
		{"point", geom.NewPointFlat(geom.XY, []float64{3, 4})},
		{"polygon", geom.NewPolygonFlat(geom.XY, []float64{0, 1, 2, 1, 2, 3, 0, 1}, []int{8})},
		{"decoded esri polygon", Decode([]byte(`{"rings": [[[-122, 37], [-121, 37], [-121, 38]]]}`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.g)
			back := Swap(Swap(tt.g))
			assert.Equal(t, tt.g.FlatCoords(), back.FlatCoords())
			assert.Equal(t, TypeName(tt.g), TypeName(back))
		})
	}
}

func TestSwap_UnhandledReturnedUnchanged(t *testing.T) {
	ls := geom.NewLineStringFlat(geom.XY, []float64{1, 2, 3, 4})
	assert.Same(t, ls, Swap(ls))

	mpt := geom.NewMultiPointFlat(geom.XY, []float64{1, 2})
	assert.Same(t, mpt, Swap(mpt))

	assert.Nil(t, Swap(nil))
}

func TestSwap_KeepsSRID(t *testing.T) {
	p := geom.NewPointFlat(geom.XY, []float64{1, 2}).SetSRID(4326)
	assert.Equal(t, 4326, Swap(p).SRID())
}
