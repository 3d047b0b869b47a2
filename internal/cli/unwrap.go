package cli

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/psdkit"
)

func newUnwrapCmd(g *globalOpts) *cobra.Command {
	var padding int
	cmd := &cobra.Command{
		Use:   "unwrap [file]",
		Short: "Unfold the parts of a flat design around its view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("padding") {
				padding = g.cfg.Canvas.Padding
			}
			set, err := g.readDocument(args[0])
			if err != nil {
				return err
			}
			out, err := psdkit.TransformOutward(set, padding)
			if err != nil {
				return err
			}
			paths, err := g.writeArtifacts(newResultID(), []psdkit.Artifact{{Name: "unwrapped", Set: out}})
			if err != nil {
				return err
			}
			g.report(paths)
			return nil
		},
	}
	cmd.Flags().IntVar(&padding, "padding", psdkit.DefaultPadding, "extra canvas space around the unfolded parts")
	return cmd
}
