// Package export writes feature tables to files and databases.
package export

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sells-group/featurelayer-cli/internal/db"
	"github.com/sells-group/featurelayer-cli/internal/geometry"
	"github.com/sells-group/featurelayer-cli/internal/table"
)

// Output formats.
const (
	FormatGeoJSON = "geojson"
	FormatCSV     = "csv"
	FormatXLSX    = "xlsx"
	FormatSQLite  = "sqlite"
	FormatPostGIS = "postgis"
)

// Formats lists every supported output format.
var Formats = []string{FormatGeoJSON, FormatCSV, FormatXLSX, FormatSQLite, FormatPostGIS}

// DefaultTable is the table name used by database sinks when none is given.
const DefaultTable = "features"

// Target says where a table is written. File formats use Path, database
// formats use Table (and Schema and Pool for PostGIS).
type Target struct {
	Path   string
	Table  string
	Schema string
	Pool   db.Pool
}

// ParseFormat normalizes and checks a format name.
func ParseFormat(s string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(s))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", eris.Errorf("export: unknown format %q (want one of %s)", s, strings.Join(Formats, ", "))
}

// Write writes t in the given format and returns the number of rows written.
func Write(ctx context.Context, format string, t *table.Table, target Target) (int64, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return 0, err
	}
	log := zap.L().With(zap.String("component", "export"), zap.String("format", f))

	var n int64
	switch f {
	case FormatGeoJSON:
		err = writeFile(target.Path, func(w *os.File) error { return WriteGeoJSON(w, t) })
		n = int64(t.Len())
	case FormatCSV:
		err = writeFile(target.Path, func(w *os.File) error { return WriteCSV(w, t) })
		n = int64(t.Len())
	case FormatXLSX:
		if target.Path == "" {
			return 0, eris.New("export: xlsx needs an output path")
		}
		err = WriteXLSX(target.Path, t)
		n = int64(t.Len())
	case FormatSQLite:
		if target.Path == "" {
			return 0, eris.New("export: sqlite needs a database path")
		}
		n, err = WriteSQLite(ctx, target.Path, tableName(target), t)
	case FormatPostGIS:
		if target.Pool == nil {
			return 0, eris.New("export: postgis needs a database connection")
		}
		n, err = WritePostGIS(ctx, target.Pool, target.Schema, tableName(target), t)
	}
	if err != nil {
		return 0, err
	}

	log.Info("table written",
		zap.Int64("rows", n),
		zap.Bool("spatial", t.Spatial()),
		zap.String("path", target.Path),
		zap.String("table", target.Table),
	)
	return n, nil
}

func tableName(target Target) string {
	if target.Table == "" {
		return DefaultTable
	}
	return target.Table
}

// writeFile creates path (or uses stdout for "" and "-") and runs fn on it.
func writeFile(path string, fn func(*os.File) error) error {
	if path == "" || path == "-" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return eris.Wrapf(f.Close(), "export: close %s", path)
}

// cellText renders a value for text formats. Geometries become WKT, nested
// values JSON, nil the empty string.
func cellText(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(x), nil
	case geom.T:
		return geometry.WKT(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return "", eris.Wrap(err, "export: encode value")
		}
		return string(b), nil
	}
}
