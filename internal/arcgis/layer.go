// Package arcgis reads ArcGIS FeatureServer layers page by page.
package arcgis

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

const (
	// DefaultPageSize is the resultRecordCount used when none is given.
	DefaultPageSize = 1000
	// DefaultWhere selects every feature.
	DefaultWhere = "1=1"
)

// ErrInvalidLayer is returned when a layer descriptor cannot be built.
var ErrInvalidLayer = eris.New("arcgis: invalid layer")

// Layer describes one FeatureServer query endpoint to ingest.
type Layer struct {
	URL      string
	PageSize int
	Where    string
	// Source labels every row produced from this layer. Empty means the
	// label is derived from URL.
	Source string
}

// LayerOption customizes a Layer built by NewLayer.
type LayerOption func(*Layer)

// WithPageSize sets the number of features requested per page.
func WithPageSize(n int) LayerOption {
	return func(l *Layer) { l.PageSize = n }
}

// WithWhere sets the server-side filter expression.
func WithWhere(where string) LayerOption {
	return func(l *Layer) { l.Where = where }
}

// WithSource sets an explicit source label.
func WithSource(source string) LayerOption {
	return func(l *Layer) { l.Source = source }
}

// NewLayer validates and builds a layer descriptor.
func NewLayer(rawURL string, opts ...LayerOption) (Layer, error) {
	l := Layer{
		URL:      strings.TrimSpace(rawURL),
		PageSize: DefaultPageSize,
		Where:    DefaultWhere,
	}
	for _, opt := range opts {
		opt(&l)
	}
	if l.Where == "" {
		l.Where = DefaultWhere
	}
	if err := l.Validate(); err != nil {
		return Layer{}, err
	}
	return l, nil
}

// Validate checks that the layer can be queried.
func (l Layer) Validate() error {
	if !IsValidHTTPURL(l.URL) {
		return eris.Wrapf(ErrInvalidLayer, "url %q is not an http(s) URL", l.URL)
	}
	if l.PageSize <= 0 {
		return eris.Wrapf(ErrInvalidLayer, "page size must be positive, got %d", l.PageSize)
	}
	return nil
}

// Label returns the explicit source label, or one derived from the URL.
func (l Layer) Label() string {
	if l.Source != "" {
		return l.Source
	}
	return DeriveSource(l.URL)
}

// QueryURL builds the URL of the page starting at offset. Query parameters
// already on the endpoint are kept; paging parameters override them.
func (l Layer) QueryURL(offset int) (string, error) {
	u, err := url.Parse(l.URL)
	if err != nil {
		return "", eris.Wrapf(err, "arcgis: parse layer url %s", l.URL)
	}
	q := u.Query()
	q.Set("where", l.Where)
	q.Set("outFields", "*")
	q.Set("f", "geojson")
	q.Set("resultOffset", strconv.Itoa(offset))
	q.Set("resultRecordCount", strconv.Itoa(l.PageSize))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// DeriveSource builds a source label from a layer URL: the second-to-last
// path segment when the path has a separator, otherwise the host. An empty
// segment falls back to the host.
func DeriveSource(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if strings.Contains(u.Path, "/") {
		parts := strings.Split(u.Path, "/")
		if seg := parts[len(parts)-2]; seg != "" {
			return seg
		}
	}
	if u.Host != "" {
		return u.Host
	}
	return rawURL
}

// IsValidHTTPURL checks if a URL is an absolute HTTP or HTTPS URL.
func IsValidHTTPURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
