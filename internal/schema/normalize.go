package schema

import (
	"go.uber.org/zap"

	"github.com/sells-group/featurelayer-cli/internal/table"
)

// Normalizer renames synonym columns to canonical names and makes sure every
// canonical field is present.
type Normalizer struct {
	// Project drops every column outside the canonical schema.
	Project bool

	lookup map[string]string
}

// NewNormalizer validates syn and returns a Normalizer that uses it. A nil
// table selects DefaultSynonyms.
func NewNormalizer(syn Synonyms, project bool) (*Normalizer, error) {
	if syn == nil {
		syn = DefaultSynonyms()
	}
	if err := syn.Validate(); err != nil {
		return nil, err
	}
	return &Normalizer{Project: project, lookup: syn.Lookup()}, nil
}

// MustNormalizer is like NewNormalizer but panics when syn does not
// validate. Use it for built-in tables only.
func MustNormalizer(syn Synonyms, project bool) *Normalizer {
	n, err := NewNormalizer(syn, project)
	if err != nil {
		panic(err)
	}
	return n
}

// Normalize returns a table on the canonical schema. Columns that map to the
// same canonical field are coalesced, first column in table order winning.
// Missing canonical fields are added as all-nil columns. Applying Normalize
// to its own output is a no-op.
func (n *Normalizer) Normalize(t *table.Table) *table.Table {
	log := zap.L().With(zap.String("component", "schema"))

	rename := make(map[string]string)
	for _, col := range t.Columns() {
		if field, ok := n.lookup[col]; ok && field != col {
			rename[col] = field
			log.Debug("rename column", zap.String("from", col), zap.String("to", field))
		}
	}

	out := t
	if len(rename) > 0 {
		out = t.Rename(rename)
	}
	for _, f := range Fields {
		if !out.Has(f) {
			out = out.WithColumn(f, nil)
		}
	}
	if n.Project {
		out = out.Select(Fields...)
	}
	if out == t {
		out = t.Clone()
	}
	return out
}
