package cli

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/psdkit"
)

func newCutCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "cut [reference] [image]",
		Short: "Clear the pixels of an image where it overlaps a reference",
		Long: `Clear the pixels of an image where it overlaps a reference image of the
same size. Pixels where both images have non-zero alpha become transparent
in the output; colour channels are kept.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := g.readImage(args[0])
			if err != nil {
				return err
			}
			img, err := g.readImage(args[1])
			if err != nil {
				return err
			}
			out, err := psdkit.RemoveIntersection(ref, img)
			if err != nil {
				return err
			}
			paths, err := g.writeArtifacts(newResultID(), []psdkit.Artifact{{Name: "cut", Image: out}})
			if err != nil {
				return err
			}
			g.report(paths)
			return nil
		},
	}
}
