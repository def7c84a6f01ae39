package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/featurelayer-cli/internal/arcgis"
	"github.com/sells-group/featurelayer-cli/internal/ingest"
)

var (
	combineSources  []string
	combinePageSize int
	combineWhere    string
	combineOutput   outputFlags
)

var combineCmd = &cobra.Command{
	Use:   "combine [URL...]",
	Short: "Fetch several layers and write them as one normalized table",
	Long:  "Fetches every layer given as an argument (or listed under layers in featurelayer.yaml), normalizes each onto the canonical schema and writes the concatenation.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		combineOutput.apply(cmd)
		flags := cmd.Flags()
		if flags.Changed("page-size") {
			cfg.PageSize = combinePageSize
		}
		if flags.Changed("where") {
			cfg.Where = combineWhere
		}
		if flags.Changed("project") {
			cfg.Project, _ = flags.GetBool("project")
		}
		if flags.Changed("fail-fast") {
			cfg.FailFast, _ = flags.GetBool("fail-fast")
		}
		if flags.Changed("swap-axes") {
			cfg.SwapAxes, _ = flags.GetBool("swap-axes")
		}
		if err := cfg.Validate("combine"); err != nil {
			return err
		}

		urls, sources := args, combineSources
		if len(urls) == 0 {
			urls, sources = cfg.LayerURLs(), cfg.LayerSources()
			if flags.Changed("sources") {
				sources = combineSources
			}
		}
		if len(urls) == 0 {
			return eris.New("no layers: pass URLs as arguments or list them under layers in featurelayer.yaml")
		}

		c, err := newCombiner()
		if err != nil {
			return err
		}
		res, err := c.Combine(ctx, urls, ingest.CombineOptions{
			PageSize:    cfg.PageSize,
			Where:       cfg.Where,
			SourceNames: sources,
			FailFast:    cfg.FailFast,
		})
		if err != nil {
			return eris.Wrap(err, "combine layers")
		}

		for _, l := range res.Failed() {
			zap.L().Warn("layer not included",
				zap.String("run_id", res.RunID),
				zap.String("url", l.URL),
				zap.Error(l.Err),
			)
		}
		if res.AllFailed() {
			return eris.Wrapf(res.Layers[0].Err, "combine layers: all %d layers failed", len(res.Layers))
		}
		return finish(ctx, res.Table)
	},
}

func init() {
	combineCmd.Flags().StringSliceVar(&combineSources, "sources", nil, "source labels, one per layer in order")
	combineCmd.Flags().IntVar(&combinePageSize, "page-size", arcgis.DefaultPageSize, "features per page request")
	combineCmd.Flags().StringVar(&combineWhere, "where", arcgis.DefaultWhere, "server-side filter expression")
	combineCmd.Flags().Bool("project", false, "keep only canonical schema columns")
	combineCmd.Flags().Bool("fail-fast", false, "abort on the first layer failure")
	combineCmd.Flags().Bool("swap-axes", false, "swap x/y of point and polygon geometries before writing")
	combineOutput.register(combineCmd)
	rootCmd.AddCommand(combineCmd)
}
