package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/psdkit"
)

type generateOpts struct {
	window      string
	forceResize bool
	stroke      int
	padding     int
}

func newGenerateCmd(g *globalOpts) *cobra.Command {
	var opts generateOpts
	var flags strokeFlags

	cmd := &cobra.Command{
		Use:   "generate [template] [image]",
		Short: "Fill a template from an image and unfold it into the final document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			if !cmd.Flags().Changed("padding") {
				opts.padding = g.cfg.Canvas.Padding
			}
			spec, _, err := flags.apply(cmd, g.cfg)
			if err != nil {
				return err
			}

			set, err := g.readDocument(args[0])
			if err != nil {
				return err
			}
			img, err := g.readImage(args[1])
			if err != nil {
				return err
			}

			prepare := []psdkit.Option{psdkit.WithStroke(spec)}
			if opts.stroke > 0 {
				prepare = append(prepare, psdkit.WithStrokeWidths(opts.stroke))
			}
			tpl, err := psdkit.PrepareTemplate(ctx, set, prepare...)
			if err != nil {
				return err
			}
			base := tpl.Restored
			id := newResultID()
			if opts.stroke > 0 {
				v, _ := tpl.Stroke(opts.stroke)
				base = v.Set
				id = fmt.Sprintf("%s_%s", id, v.Name)
			}

			genOpts := []psdkit.Option{
				psdkit.WithPadding(opts.padding),
				psdkit.WithForceResize(opts.forceResize),
			}
			if opts.window != "" {
				component, err := g.readImage(opts.window)
				if err != nil {
					return err
				}
				genOpts = append(genOpts, psdkit.WithWindow(component))
			}

			res, err := psdkit.Generate(ctx, base, img, genOpts...)
			if err != nil {
				return err
			}
			paths, err := g.writeArtifacts(id, res.Artifacts())
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Generated %dx%d document", res.Final.Width, res.Final.Height))
			g.report(paths)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.window, "window", "", "image added as the top window layer over the view")
	cmd.Flags().BoolVar(&opts.forceResize, "force-resize", false, "resize the image to the template instead of scaling the template")
	cmd.Flags().IntVar(&opts.stroke, "stroke", 0, "use the stroke version of this width (0 for none)")
	cmd.Flags().IntVar(&opts.padding, "padding", psdkit.DefaultPadding, "extra canvas space around the unfolded parts")
	cmd.Flags().StringVar(&flags.color, "color", "", `stroke colour, "#rrggbb[aa]" or "r,g,b[,a]"`)
	cmd.Flags().StringVar(&flags.style, "style", "", `stroke style, "precise" or "blurred"`)
	return cmd
}
