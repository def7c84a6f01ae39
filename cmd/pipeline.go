package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/featurelayer-cli/internal/db"
	"github.com/sells-group/featurelayer-cli/internal/export"
	"github.com/sells-group/featurelayer-cli/internal/fetcher"
	"github.com/sells-group/featurelayer-cli/internal/geometry"
	"github.com/sells-group/featurelayer-cli/internal/ingest"
	"github.com/sells-group/featurelayer-cli/internal/schema"
	"github.com/sells-group/featurelayer-cli/internal/table"
)

// outputFlags are shared by the commands that write a table.
type outputFlags struct {
	format string
	path   string
	table  string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.format, "format", "", "output format: geojson, csv, xlsx, sqlite, postgis (default from config)")
	cmd.Flags().StringVarP(&o.path, "out", "o", "", "output file, \"-\" for stdout (default from config)")
	cmd.Flags().StringVar(&o.table, "table", "", "table name for sqlite and postgis output (default from config)")
}

// apply copies explicitly set output flags over the loaded config.
func (o *outputFlags) apply(cmd *cobra.Command) {
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = o.format
	}
	if cmd.Flags().Changed("out") {
		cfg.Output.Path = o.path
	}
	if cmd.Flags().Changed("table") {
		cfg.Output.Table = o.table
	}
}

// newCombiner wires the HTTP fetcher and the configured normalizer.
func newCombiner() (*ingest.Combiner, error) {
	syn := schema.DefaultSynonyms()
	if cfg.SynonymsFile != "" {
		var err error
		if syn, err = schema.LoadSynonyms(cfg.SynonymsFile); err != nil {
			return nil, err
		}
	}
	n, err := schema.NewNormalizer(syn, cfg.Project)
	if err != nil {
		return nil, err
	}

	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent: cfg.HTTP.UserAgent,
		Timeout:   time.Duration(cfg.HTTP.TimeoutSecs) * time.Second,
	})
	return ingest.NewCombiner(f, n), nil
}

// finish applies the optional axis swap and writes the table.
func finish(ctx context.Context, t *table.Table) error {
	if cfg.SwapAxes {
		if t.Spatial() {
			t = t.MapGeometry(geometry.Swap)
		} else {
			zap.L().Warn("swap_axes set but no row has a geometry, nothing to swap", zap.Int("rows", t.Len()))
		}
	}

	target := export.Target{
		Path:   cfg.Output.Path,
		Table:  cfg.Output.Table,
		Schema: cfg.Output.Schema,
	}
	if cfg.Output.Format == export.FormatPostGIS {
		if cfg.Output.DatabaseURL == "" {
			return eris.New("output.database_url is required for postgis output (FEATURELAYER_OUTPUT_DATABASE_URL)")
		}
		pool, err := db.Connect(ctx, cfg.Output.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		target.Pool = pool
	}

	if _, err := export.Write(ctx, cfg.Output.Format, t, target); err != nil {
		return eris.Wrap(err, "write output")
	}
	return nil
}
