package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/psdkit"
	"github.com/gogpu/psdkit/internal/config"
)

// strokeFlags overrides the configured stroke settings.
type strokeFlags struct {
	widths []int
	color  string
	style  string
	smooth float64
}

func (f *strokeFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntSliceVar(&f.widths, "width", nil, "stroke widths in pixels, 1..10 (default from config)")
	cmd.Flags().StringVar(&f.color, "color", "", `stroke colour, "#rrggbb[aa]" or "r,g,b[,a]"`)
	cmd.Flags().StringVar(&f.style, "style", "", `stroke style, "precise" or "blurred"`)
	cmd.Flags().Float64Var(&f.smooth, "smooth", 0, "blur scale for the blurred style")
}

// apply returns the stroke spec and widths with the flags set on cmd
// layered over cfg.
func (f *strokeFlags) apply(cmd *cobra.Command, cfg *config.Config) (psdkit.StrokeSpec, []int, error) {
	c := *cfg
	flags := cmd.Flags()
	if flags.Changed("color") {
		c.Stroke.Color = f.color
	}
	if flags.Changed("style") {
		c.Stroke.Style = f.style
	}
	if flags.Changed("smooth") {
		c.Stroke.Smooth = f.smooth
	}
	spec, err := c.StrokeSpec()
	if err != nil {
		return psdkit.StrokeSpec{}, nil, err
	}
	widths := c.Stroke.Widths
	if flags.Changed("width") {
		widths = f.widths
	}
	return spec, widths, nil
}

func newStrokeCmd(g *globalOpts) *cobra.Command {
	var flags strokeFlags
	cmd := &cobra.Command{
		Use:   "stroke [template]",
		Short: "Build stroked versions of a template's restored design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			spec, widths, err := flags.apply(cmd, g.cfg)
			if err != nil {
				return err
			}
			set, err := g.readDocument(args[0])
			if err != nil {
				return err
			}
			tpl, err := psdkit.PrepareTemplate(cmd.Context(), set,
				psdkit.WithStroke(spec), psdkit.WithStrokeWidths(widths...))
			if err != nil {
				return err
			}

			var artifacts []psdkit.Artifact
			for _, a := range tpl.Artifacts() {
				if a.Name != "restored" && a.Name != "preview" && a.Name != "reference" {
					artifacts = append(artifacts, a)
				}
			}
			paths, err := g.writeArtifacts(newResultID(), artifacts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Built %d stroke versions (%s)", len(tpl.Strokes), spec.Style))
			g.report(paths)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
