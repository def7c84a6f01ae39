package export

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sells-group/featurelayer-cli/internal/db"
	"github.com/sells-group/featurelayer-cli/internal/geometry"
	"github.com/sells-group/featurelayer-cli/internal/table"
)

var postgisTypes = map[kind]string{
	kindText:     "text",
	kindReal:     "double precision",
	kindBool:     "boolean",
	kindGeometry: "geometry(Geometry, 4326)",
}

// WritePostGIS creates schema.tableName if needed and loads t with COPY in
// one transaction. Geometries are sent as EWKB tagged with SRID 4326.
func WritePostGIS(ctx context.Context, pool db.Pool, schema, tableName string, t *table.Table) (int64, error) {
	log := zap.L().With(zap.String("component", "export.postgis"))

	cols := t.Columns()
	kinds := columnKinds(t)
	defs := make([]db.Column, len(cols))
	for i, c := range cols {
		defs[i] = db.Column{Name: c, Type: postgisTypes[kinds[i]]}
	}

	rows := make([][]any, t.Len())
	for i := range rows {
		row := t.Row(i)
		for c, v := range row {
			var err error
			if row[c], err = postgisValue(kinds[c], v); err != nil {
				return 0, eris.Wrapf(err, "postgis: row %d", i+1)
			}
		}
		rows[i] = row
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "postgis: begin tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := db.CreateTable(ctx, tx, schema, tableName, defs); err != nil {
		return 0, err
	}
	n, err := db.CopyRows(ctx, tx, schema, tableName, cols, rows)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrap(err, "postgis: commit")
	}

	log.Debug("copied rows", zap.String("table", db.Identifier(schema, tableName).Sanitize()), zap.Int64("rows", n))
	return n, nil
}

func postgisValue(k kind, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch k {
	case kindGeometry:
		g, ok := v.(geom.T)
		if !ok {
			return nil, nil
		}
		return geometry.EWKB(g, geometry.SRIDWGS84)
	case kindReal, kindBool:
		return v, nil
	default:
		return textValue(v)
	}
}
