package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gogpu/psdkit"
)

func newInspectCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print canvas size, resolution and layers of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := g.readDocument(args[0])
			if err != nil {
				return err
			}
			return printInspect(g, set)
		},
	}
}

func printInspect(g *globalOpts, set *psdkit.LayerSet) error {
	res := set.Resolution
	fmt.Fprintf(g.out, "canvas     %dx%d\n", set.Width, set.Height)
	fmt.Fprintf(g.out, "resolution %gx%g (unit %d)\n", res.HRes, res.VRes, res.HResUnit)

	if err := set.Validate(); err != nil {
		fmt.Fprintln(g.out, warnStyle(g.out).Render(fmt.Sprintf("template   invalid: %v", err)))
	} else {
		fmt.Fprintln(g.out, "template   valid")
	}

	t := newTable(g.out, "Name", "Role", "Bounds", "Visible", "Pixels")
	for _, l := range set.Layers {
		role := "-"
		if r := l.Role(); r == psdkit.RoleView || r == psdkit.RoleWindow || r.IsPart() {
			role = string(r)
		}
		t.Row(l.Name, role, l.Rect().String(), strconv.FormatBool(l.Visible), strconv.Itoa(l.Raster.Alpha().Count()))
	}
	_, err := fmt.Fprintln(g.out, t.Render())
	return err
}
