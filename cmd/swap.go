package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/featurelayer-cli/internal/export"
	"github.com/sells-group/featurelayer-cli/internal/geometry"
)

var swapCmd = &cobra.Command{
	Use:   "swap IN OUT",
	Short: "Swap x and y of every geometry in a GeoJSON FeatureCollection",
	Long:  "Reads a GeoJSON FeatureCollection and writes it back with the axes of points and polygon exterior rings swapped. Other geometry types are copied unchanged.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := os.Open(args[0])
		if err != nil {
			return eris.Wrapf(err, "open %s", args[0])
		}
		defer in.Close()

		t, err := export.ReadGeoJSON(in)
		if err != nil {
			return eris.Wrapf(err, "read %s", args[0])
		}
		t = t.MapGeometry(geometry.Swap)

		out, err := os.Create(args[1])
		if err != nil {
			return eris.Wrapf(err, "create %s", args[1])
		}
		if err := export.WriteGeoJSON(out, t); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return eris.Wrapf(err, "close %s", args[1])
		}

		zap.L().Info("axes swapped",
			zap.String("in", args[0]),
			zap.String("out", args[1]),
			zap.Int("features", t.Len()),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(swapCmd)
}
