package cli

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/psdkit"
)

func newPreviewCmd(g *globalOpts) *cobra.Command {
	var showView bool
	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Render the flattened, trimmed preview of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := g.readDocument(args[0])
			if err != nil {
				return err
			}
			img := psdkit.FinalPreview(set)
			if showView {
				img = psdkit.TrimTransparentMargins(psdkit.Flatten(set))
			}
			paths, err := g.writeArtifacts(newResultID(), []psdkit.Artifact{{Name: "preview", Image: img}})
			if err != nil {
				return err
			}
			g.report(paths)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showView, "show-view", false, "keep the view layer in the preview")
	return cmd
}
