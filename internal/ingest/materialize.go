// Package ingest turns fetched layer features into normalized feature tables
// and combines several layers into one.
package ingest

import (
	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/sells-group/featurelayer-cli/internal/arcgis"
	"github.com/sells-group/featurelayer-cli/internal/geometry"
	"github.com/sells-group/featurelayer-cli/internal/table"
)

// Materialize builds a feature table from raw features. Every row carries
// its decoded geometry (nil when undecodable), its attributes and source.
// An empty source is derived from endpoint with arcgis.DeriveSource.
//
// Columns are geometry, then attributes in first-seen order, then source.
// Attributes named geometry or source are dropped.
func Materialize(features []arcgis.RawFeature, source, endpoint string) (*table.Table, error) {
	log := zap.L().With(zap.String("component", "ingest.materialize"))
	if source == "" {
		source = arcgis.DeriveSource(endpoint)
	}

	type record struct {
		geom  any
		attrs []attribute
	}

	columns := []string{table.GeometryColumn}
	seen := map[string]bool{table.GeometryColumn: true, table.SourceColumn: true}
	records := make([]record, 0, len(features))
	undecoded := 0

	for _, f := range features {
		var rec record
		if g, name := geometry.DecodeNamed(f.Geometry); g != nil {
			rec.geom = g
			log.Debug("decoded geometry", zap.String("interpreter", name), zap.String("type", geometry.TypeName(g)))
		} else if len(f.Geometry) > 0 && string(f.Geometry) != "null" {
			undecoded++
		}

		rec.attrs = attributes(f.AttributePayload())
		for _, a := range rec.attrs {
			if !seen[a.name] {
				seen[a.name] = true
				columns = append(columns, a.name)
			}
		}
		records = append(records, rec)
	}
	columns = append(columns, table.SourceColumn)

	if undecoded > 0 {
		log.Debug("geometry not recognized, stored as null",
			zap.String("source", source),
			zap.Int("features", undecoded),
		)
	}

	t := table.New(columns...)
	for _, rec := range records {
		values := make(map[string]any, len(rec.attrs)+2)
		for _, a := range rec.attrs {
			values[a.name] = a.value
		}
		values[table.GeometryColumn] = rec.geom
		values[table.SourceColumn] = source
		if err := t.Append(values); err != nil {
			return nil, eris.Wrap(err, "ingest: materialize")
		}
	}
	return t, nil
}

type attribute struct {
	name  string
	value any
}

// attributes reads a JSON object in key order. Reserved column names are
// skipped; anything that is not an object yields nothing.
func attributes(raw []byte) []attribute {
	if len(raw) == 0 {
		return nil
	}
	obj := gjson.ParseBytes(raw)
	if !obj.IsObject() {
		return nil
	}

	var out []attribute
	obj.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if name == table.GeometryColumn || name == table.SourceColumn {
			return true
		}
		out = append(out, attribute{name: name, value: value.Value()})
		return true
	})
	return out
}
