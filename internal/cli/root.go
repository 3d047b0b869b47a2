package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gogpu/psdkit/internal/config"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// globalOpts holds the persistent flags and what PersistentPreRunE
// derives from them.
type globalOpts struct {
	configPath string
	verbose    bool
	outDir     string

	cfg *config.Config
	out io.Writer
}

// Execute runs the psdkit CLI.
func Execute(ctx context.Context) error {
	return newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

// newRootCmd builds the command tree writing results to stdout and logs
// to stderr.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globalOpts{out: stdout}

	root := &cobra.Command{
		Use:          "psdkit",
		Short:        "psdkit folds, strokes and fills layered print templates",
		Long:         `psdkit turns unfolded layered templates (a view with four parts around it) into restored designs, stroked variants and final documents filled from an image.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if g.verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(stderr, level)
			installLogger(logger)
			cmd.SetContext(withLogger(cmd.Context(), logger))

			cfg, err := config.Load(g.configPath)
			if err != nil {
				return err
			}
			g.cfg = cfg
			logger.Debug("configuration loaded", "file", g.configPath, "padding", cfg.Canvas.Padding,
				"stroke", cfg.Stroke.Width, "style", cfg.Stroke.Style)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("psdkit %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "TOML configuration file")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&g.outDir, "out", "o", ".", "output directory")

	root.AddCommand(newInspectCmd(g))
	root.AddCommand(newRestoreCmd(g))
	root.AddCommand(newUnwrapCmd(g))
	root.AddCommand(newStrokeCmd(g))
	root.AddCommand(newGenerateCmd(g))
	root.AddCommand(newPreviewCmd(g))
	root.AddCommand(newScaleCmd(g))
	root.AddCommand(newCutCmd(g))
	return root
}
