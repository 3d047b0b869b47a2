package cli

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/psdkit"
)

func newRestoreCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "restore [template]",
		Short: "Fold a template back into its flat design and render previews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			set, err := g.readDocument(args[0])
			if err != nil {
				return err
			}
			tpl, err := psdkit.PrepareTemplate(cmd.Context(), set)
			if err != nil {
				return err
			}
			paths, err := g.writeArtifacts(newResultID(), tpl.Artifacts())
			if err != nil {
				return err
			}
			prog.done("Restored " + args[0])
			g.report(paths)
			return nil
		},
	}
}
