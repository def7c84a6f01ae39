// Package schema defines the canonical broadband schema and normalizes
// feature tables onto it.
package schema

import (
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/featurelayer-cli/internal/table"
)

// Canonical field names.
const (
	FieldDownload  = "download"
	FieldUpload    = "upload"
	FieldLatency   = "latency"
	FieldSpeedTier = "speed_tier"
	FieldProvider  = "provider"
	FieldGeometry  = table.GeometryColumn
	FieldSource    = table.SourceColumn
)

// Fields is the canonical schema in column order.
var Fields = []string{
	FieldDownload,
	FieldUpload,
	FieldLatency,
	FieldSpeedTier,
	FieldProvider,
	FieldGeometry,
	FieldSource,
}

// ErrOverlappingSynonyms is returned when one source name would map to more
// than one canonical field.
var ErrOverlappingSynonyms = eris.New("schema: overlapping synonyms")

// IsField reports whether name is a canonical field.
func IsField(name string) bool {
	for _, f := range Fields {
		if f == name {
			return true
		}
	}
	return false
}

// Synonyms maps a canonical field to the source column names that mean it.
// Matching is exact and case-sensitive.
type Synonyms map[string][]string

// DefaultSynonyms returns a fresh copy of the built-in synonym table.
func DefaultSynonyms() Synonyms {
	return Synonyms{
		FieldDownload:  {"Avg_d_mbps", "dl", "download_speed", "down", "down_mbps", "AvgDown"},
		FieldUpload:    {"Avg_u_mbps", "ul", "upload_speed", "up", "up_mbps", "AvgUp"},
		FieldLatency:   {"AvgLatency", "ping", "latency_ms", "AvgLat"},
		FieldSpeedTier: {"Avg_dl_ul", "DxU", "tier", "category", "Speed_Categories"},
		FieldProvider:  {"brand_name", "ISP", "provider_name"},
		FieldGeometry:  {"geometry"},
	}
}

// Validate checks that every key is a canonical field, that no synonym is
// listed under two fields, and that no canonical name is claimed as a
// synonym of a different field.
func (s Synonyms) Validate() error {
	owner := make(map[string]string)
	for _, field := range s.fieldsInOrder() {
		if !IsField(field) {
			return eris.Errorf("schema: unknown canonical field %q", field)
		}
		for _, name := range s[field] {
			if strings.TrimSpace(name) == "" {
				return eris.Errorf("schema: empty synonym for %q", field)
			}
			if prev, ok := owner[name]; ok && prev != field {
				return eris.Wrapf(ErrOverlappingSynonyms, "%q listed under %q and %q", name, prev, field)
			}
			if IsField(name) && name != field {
				return eris.Wrapf(ErrOverlappingSynonyms, "canonical field %q listed as synonym of %q", name, field)
			}
			owner[name] = field
		}
	}
	return nil
}

// Lookup returns the inverted table: source name → canonical field.
func (s Synonyms) Lookup() map[string]string {
	out := make(map[string]string)
	for field, names := range s {
		for _, name := range names {
			out[name] = field
		}
	}
	return out
}

// fieldsInOrder lists the table's keys with canonical fields first in schema
// order, then anything else sorted, so validation errors are deterministic.
func (s Synonyms) fieldsInOrder() []string {
	var out, extra []string
	for _, f := range Fields {
		if _, ok := s[f]; ok {
			out = append(out, f)
		}
	}
	for k := range s {
		if !IsField(k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// ParseSynonyms decodes a YAML synonym table. The document has a top-level
// "synonyms" key mapping canonical field → list of names. Fields not named
// keep their default synonyms.
func ParseSynonyms(data []byte) (Synonyms, error) {
	var wrapper struct {
		Synonyms map[string][]string `yaml:"synonyms"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "schema: parse synonyms")
	}

	syn := DefaultSynonyms()
	for field, names := range wrapper.Synonyms {
		syn[field] = names
	}
	if err := syn.Validate(); err != nil {
		return nil, err
	}
	return syn, nil
}

// LoadSynonyms reads a YAML synonym table from path.
func LoadSynonyms(path string) (Synonyms, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "schema: read synonyms %s", path)
	}
	return ParseSynonyms(data)
}
