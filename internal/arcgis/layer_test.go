package arcgis

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLayerURL = "https://services.arcgis.com/abc/arcgis/rest/services/Broadband/FeatureServer/0/query"

func TestNewLayer_Defaults(t *testing.T) {
	l, err := NewLayer(testLayerURL)
	require.NoError(t, err)
	assert.Equal(t, testLayerURL, l.URL)
	assert.Equal(t, DefaultPageSize, l.PageSize)
	assert.Equal(t, DefaultWhere, l.Where)
	assert.Empty(t, l.Source)
}

func TestNewLayer_Options(t *testing.T) {
	l, err := NewLayer(testLayerURL, WithPageSize(250), WithWhere("state='OK'"), WithSource("ookla"))
	require.NoError(t, err)
	assert.Equal(t, 250, l.PageSize)
	assert.Equal(t, "state='OK'", l.Where)
	assert.Equal(t, "ookla", l.Label())
}

func TestNewLayer_EmptyWhereFallsBack(t *testing.T) {
	l, err := NewLayer(testLayerURL, WithWhere(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultWhere, l.Where)
}

func TestNewLayer_Invalid(t *testing.T) {
	tests := []struct {
		name string
		url  string
		opts []LayerOption
	}{
		{"no scheme", "example.com/FeatureServer/0/query", nil},
		{"ftp scheme", "ftp://example.com/layer", nil},
		{"empty", "", nil},
		{"zero page size", testLayerURL, []LayerOption{WithPageSize(0)}},
		{"negative page size", testLayerURL, []LayerOption{WithPageSize(-5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLayer(tt.url, tt.opts...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidLayer))
		})
	}
}

func TestQueryURL(t *testing.T) {
	l, err := NewLayer(testLayerURL+"?token=secret&resultOffset=99", WithPageSize(500), WithWhere("speed > 25"))
	require.NoError(t, err)

	raw, err := l.QueryURL(1500)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "speed > 25", q.Get("where"))
	assert.Equal(t, "*", q.Get("outFields"))
	assert.Equal(t, "geojson", q.Get("f"))
	assert.Equal(t, "1500", q.Get("resultOffset"))
	assert.Equal(t, "500", q.Get("resultRecordCount"))
	assert.Equal(t, "secret", q.Get("token"))
	assert.Equal(t, "/abc/arcgis/rest/services/Broadband/FeatureServer/0/query", u.Path)
}

func TestDeriveSource(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"query endpoint", testLayerURL, "0"},
		{"layer endpoint", "https://host.example/arcgis/rest/services/Speeds/FeatureServer/3", "FeatureServer"},
		{"trailing slash", "https://host.example/arcgis/rest/services/Speeds/FeatureServer/", "FeatureServer"},
		{"single segment", "https://host.example/layer", "host.example"},
		{"no path", "https://host.example", "host.example"},
		{"with port", "http://localhost:8080", "localhost:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveSource(tt.url))
		})
	}
}

func TestLayerLabel_DerivedWhenEmpty(t *testing.T) {
	l, err := NewLayer("https://host.example/services/Speeds/FeatureServer/0")
	require.NoError(t, err)
	assert.Equal(t, "FeatureServer", l.Label())
}

func TestIsValidHTTPURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Valid HTTPS", "https://example.com", true},
		{"Valid HTTP", "http://example.com/path", true},
		{"No Scheme", "example.com", false},
		{"Invalid Scheme", "ftp://example.com", false},
		{"Just Scheme", "http://", false},
		{"Empty String", "", false},
		{"Garbage Input", "://?##", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidHTTPURL(tt.input); got != tt.want {
				t.Errorf("IsValidHTTPURL(%q) = %v; want %v", tt.input, got, tt.want)
			}
		})
	}
}
