package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	_ "modernc.org/sqlite"

	"github.com/sells-group/featurelayer-cli/internal/geometry"
	"github.com/sells-group/featurelayer-cli/internal/table"
)

var sqliteTypes = map[kind]string{
	kindText:     "TEXT",
	kindReal:     "REAL",
	kindBool:     "INTEGER",
	kindGeometry: "TEXT",
}

// WriteSQLite creates tableName in the SQLite database at path if needed and
// inserts every row in one transaction. Geometries are stored as WKT.
func WriteSQLite(ctx context.Context, path, tableName string, t *table.Table) (int64, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: open")
	}
	defer conn.Close()

	cols := t.Columns()
	if len(cols) == 0 {
		return 0, eris.New("sqlite: table has no columns")
	}
	kinds := columnKinds(t)

	quoted := make([]string, len(cols))
	defs := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = pgx.Identifier{c}.Sanitize()
		defs[i] = quoted[i] + " " + sqliteTypes[kinds[i]]
	}
	name := pgx.Identifier{tableName}.Sanitize()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", name, strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return 0, eris.Wrapf(err, "sqlite: create table %s", tableName)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", name, strings.Join(quoted, ", "), placeholders)
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for i := 0; i < t.Len(); i++ {
		for c, v := range t.Row(i) {
			if args[c], err = sqliteValue(kinds[c], v); err != nil {
				return 0, eris.Wrapf(err, "sqlite: row %d", i+1)
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, eris.Wrapf(err, "sqlite: insert row %d", i+1)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit")
	}
	return int64(t.Len()), nil
}

func sqliteValue(k kind, v any) (any, error) {
	switch k {
	case kindReal:
		return v, nil
	case kindBool:
		if b, ok := v.(bool); ok {
			if b {
				return int64(1), nil
			}
			return int64(0), nil
		}
		return nil, nil
	case kindGeometry:
		g, ok := v.(geom.T)
		if !ok || g == nil {
			return nil, nil
		}
		return geometry.WKT(g)
	default:
		return textValue(v)
	}
}
