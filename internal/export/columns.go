package export

import (
	"github.com/twpayne/go-geom"

	"github.com/sells-group/featurelayer-cli/internal/table"
)

type kind int

const (
	kindText kind = iota
	kindReal
	kindBool
	kindGeometry
)

// columnKinds infers one storage kind per column from its non-nil values.
// Columns with mixed or nested values, or only nils, are text.
func columnKinds(t *table.Table) []kind {
	cols := t.Columns()
	kinds := make([]kind, len(cols))
	for c, name := range cols {
		if name == table.GeometryColumn {
			kinds[c] = kindGeometry
			continue
		}
		kinds[c] = inferKind(t.Column(name))
	}
	return kinds
}

func inferKind(values []any) kind {
	k, seen := kindText, false
	for _, v := range values {
		var vk kind
		switch v.(type) {
		case nil:
			continue
		case float64:
			vk = kindReal
		case bool:
			vk = kindBool
		case geom.T:
			vk = kindGeometry
		default:
			return kindText
		}
		if seen && vk != k {
			return kindText
		}
		k, seen = vk, true
	}
	return k
}

// textValue converts v for a text column, keeping nil as nil.
func textValue(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return cellText(v)
}
