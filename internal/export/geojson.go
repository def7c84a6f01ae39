package export

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/featurelayer-cli/internal/geometry"
	"github.com/sells-group/featurelayer-cli/internal/table"
)

// WriteGeoJSON writes t as a FeatureCollection. Every column other than
// geometry becomes a property, in table column order; a nil geometry is
// written as null.
func WriteGeoJSON(w io.Writer, t *table.Table) error {
	var props []int
	for i, c := range t.Columns() {
		if c != table.GeometryColumn {
			props = append(props, i)
		}
	}
	columns := t.Columns()

	fc := featureCollection{Type: "FeatureCollection", Features: make([]feature, 0, t.Len())}
	for i := 0; i < t.Len(); i++ {
		g, err := geojson.Encode(t.Geometry(i))
		if err != nil {
			return eris.Wrapf(err, "export: encode geometry of row %d", i)
		}
		fc.Features = append(fc.Features, feature{
			Type:       "Feature",
			Geometry:   g,
			Properties: orderedProperties{columns: columns, index: props, row: t.Row(i)},
		})
	}

	if err := json.NewEncoder(w).Encode(fc); err != nil {
		return eris.Wrap(err, "export: encode geojson")
	}
	return nil
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

// feature mirrors geojson.Feature with properties that keep column order.
type feature struct {
	Type       string            `json:"type"`
	Geometry   *geojson.Geometry `json:"geometry"`
	Properties orderedProperties `json:"properties"`
}

type orderedProperties struct {
	columns []string
	index   []int
	row     table.Row
}

func (p orderedProperties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for n, i := range p.index {
		if n > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.columns[i])
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(p.row[i])
		if err != nil {
			return nil, eris.Wrapf(err, "export: encode property %q", p.columns[i])
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ReadGeoJSON reads a FeatureCollection into a table. Columns are geometry
// followed by property names in first-seen order.
func ReadGeoJSON(r io.Reader) (*table.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "export: read geojson")
	}
	if !gjson.ValidBytes(data) {
		return nil, eris.New("export: invalid geojson document")
	}
	doc := gjson.ParseBytes(data)
	if doc.Get("type").String() != "FeatureCollection" {
		return nil, eris.Errorf("export: expected FeatureCollection, got %q", doc.Get("type").String())
	}

	features := doc.Get("features").Array()
	columns := []string{table.GeometryColumn}
	seen := map[string]bool{table.GeometryColumn: true}
	for _, f := range features {
		f.Get("properties").ForEach(func(key, _ gjson.Result) bool {
			if name := key.String(); !seen[name] {
				seen[name] = true
				columns = append(columns, name)
			}
			return true
		})
	}

	t := table.New(columns...)
	for _, f := range features {
		values := make(map[string]any)
		f.Get("properties").ForEach(func(key, value gjson.Result) bool {
			if key.String() != table.GeometryColumn {
				values[key.String()] = value.Value()
			}
			return true
		})
		if g := f.Get("geometry"); g.Exists() {
			if decoded := geometry.Decode([]byte(g.Raw)); decoded != nil {
				values[table.GeometryColumn] = decoded
			}
		}
		if err := t.Append(values); err != nil {
			return nil, err
		}
	}
	return t, nil
}
