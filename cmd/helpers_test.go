package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/sells-group/featurelayer-cli/internal/config"
)

// testConfig returns the defaults Load would produce, writing to path.
func testConfig(format, path string) *config.Config {
	c := &config.Config{
		PageSize: 1000,
		Where:    "1=1",
		HTTP:     config.HTTPConfig{TimeoutSecs: 5, UserAgent: "featurelayer-test"},
		Output: config.OutputConfig{
			Format: format,
			Path:   path,
			Table:  "features",
			Schema: "public",
		},
		Log: config.LogConfig{Level: "info", Format: "json"},
	}
	return c
}

// layerServer serves features (GeoJSON feature objects) as a single page
// followed by empty pages.
func layerServer(t *testing.T, features ...string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("resultOffset"))
		var page []string
		if offset == 0 {
			page = features
		}
		fmt.Fprintf(w, `{"type":"FeatureCollection","features":[%s]}`, strings.Join(page, ","))
	}))
	t.Cleanup(srv.Close)
	return srv
}
