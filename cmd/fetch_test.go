package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestFetchCmd_WritesNormalizedGeoJSON(t *testing.T) {
	srv := layerServer(t,
		`{"type":"Feature","geometry":{"type":"Point","coordinates":[-97.5,35.4]},"properties":{"AvgDown":50,"ISP":"Acme"}}`,
	)
	out := filepath.Join(t.TempDir(), "layer.geojson")

	oldCfg := cfg
	cfg = testConfig("geojson", out)
	defer func() { cfg = oldCfg }()

	fetchCmd.SetContext(context.Background())
	defer fetchCmd.SetContext(context.TODO())

	oldSource := fetchSource
	fetchSource = "ookla"
	defer func() { fetchSource = oldSource }()

	err := fetchCmd.RunE(fetchCmd, []string{srv.URL + "/arcgis/rest/services/Speeds/FeatureServer/0/query"})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	props := gjson.GetBytes(data, "features.0.properties")
	assert.Equal(t, 50.0, props.Get("download").Float())
	assert.Equal(t, "Acme", props.Get("provider").String())
	assert.Equal(t, "ookla", props.Get("source").String())
	assert.True(t, props.Get("upload").Exists())
	assert.Equal(t, gjson.Null, props.Get("upload").Type)
}

func TestFetchCmd_InvalidURL(t *testing.T) {
	oldCfg := cfg
	cfg = testConfig("geojson", filepath.Join(t.TempDir(), "x.geojson"))
	defer func() { cfg = oldCfg }()

	fetchCmd.SetContext(context.Background())
	defer fetchCmd.SetContext(context.TODO())

	err := fetchCmd.RunE(fetchCmd, []string{"ftp://example.com/layer"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid layer")
}

func TestFetchCmd_InvalidConfig(t *testing.T) {
	oldCfg := cfg
	cfg = testConfig("postgis", "")
	defer func() { cfg = oldCfg }()

	err := fetchCmd.RunE(fetchCmd, []string{"https://example.com/FeatureServer/0/query"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.database_url is required")
}
