package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/featurelayer-cli/internal/arcgis"
)

var (
	fetchSource   string
	fetchPageSize int
	fetchWhere    string
	fetchOutput   outputFlags
)

var fetchCmd = &cobra.Command{
	Use:   "fetch URL",
	Short: "Fetch one FeatureServer layer and write it on the canonical schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		fetchOutput.apply(cmd)
		if cmd.Flags().Changed("page-size") {
			cfg.PageSize = fetchPageSize
		}
		if cmd.Flags().Changed("where") {
			cfg.Where = fetchWhere
		}
		if err := cfg.Validate("fetch"); err != nil {
			return err
		}

		layer, err := arcgis.NewLayer(args[0],
			arcgis.WithPageSize(cfg.PageSize),
			arcgis.WithWhere(cfg.Where),
			arcgis.WithSource(fetchSource),
		)
		if err != nil {
			return err
		}

		c, err := newCombiner()
		if err != nil {
			return err
		}
		t, err := c.Ingest(ctx, layer)
		if err != nil {
			return eris.Wrap(err, "fetch layer")
		}

		zap.L().Info("layer fetched",
			zap.String("url", layer.URL),
			zap.String("source", layer.Label()),
			zap.Int("rows", t.Len()),
		)
		return finish(ctx, t)
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchSource, "source", "", "source label (default derived from the URL)")
	fetchCmd.Flags().IntVar(&fetchPageSize, "page-size", arcgis.DefaultPageSize, "features per page request")
	fetchCmd.Flags().StringVar(&fetchWhere, "where", arcgis.DefaultWhere, "server-side filter expression")
	fetchOutput.register(fetchCmd)
	rootCmd.AddCommand(fetchCmd)
}
