package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/psdkit"
)

func newScaleCmd(g *globalOpts) *cobra.Command {
	var width, height int
	var fast bool
	cmd := &cobra.Command{
		Use:   "scale [file]",
		Short: "Rescale a document to a new canvas size",
		Long: `Rescale a document to a new canvas size. Layer rasters are resampled
with a Lanczos filter. With --fast only the canvas and layer positions are
scaled and the pixel data is left untouched, so layer content no longer
matches the canvas density.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := g.readDocument(args[0])
			if err != nil {
				return err
			}
			scale := psdkit.ScaleLayerSet
			if fast {
				loggerFromContext(cmd.Context()).Warn("fast scaling keeps original pixel data")
				scale = psdkit.ScaleBounds
			}
			out, err := scale(set, width, height)
			if err != nil {
				return err
			}
			name := fmt.Sprintf("scaled_%dx%d", width, height)
			paths, err := g.writeArtifacts(newResultID(), []psdkit.Artifact{{Name: name, Set: out}})
			if err != nil {
				return err
			}
			g.report(paths)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "target canvas width")
	cmd.Flags().IntVar(&height, "height", 0, "target canvas height")
	cmd.Flags().BoolVar(&fast, "fast", false, "scale positions only, keep pixel data")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")
	return cmd
}
