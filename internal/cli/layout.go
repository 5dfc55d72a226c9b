package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/echart/pkg/render/layout"
)

// layoutCommand creates the layout command, which prints the computed layers.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		opts   renderOpts
		role   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Print the drawing layers of a chart",
		Long: `Compute the layout of a chart file and print its layers in drawing order.

With --json the layout document is written to stdout instead (the same
document 'render -f json' produces).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.computeLayout(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			if asJSON {
				return layout.WriteJSON(os.Stdout, l)
			}
			if err := validateRole(l, layout.Role(role)); err != nil {
				return err
			}
			printLayout(l, layout.Role(role))
			return nil
		},
	}

	addLayoutFlags(cmd, &opts)
	cmd.Flags().StringVar(&role, "role", "", "only show layers with this role (e.g. grid, series)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write the layout document as JSON")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the layout cache")

	return cmd
}

// computeLayout loads a chart file and runs the layout stage.
func (c *CLI) computeLayout(ctx context.Context, input string, opts renderOpts) (layout.Layout, error) {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return layout.Layout{}, err
	}
	defer runner.Close()

	f, err := runner.Load(ctx, input)
	if err != nil {
		return layout.Layout{}, err
	}
	l, hit, err := runner.LayoutWithCacheInfo(ctx, f, opts.pipelineOptions())
	if err != nil {
		return layout.Layout{}, err
	}
	loggerFromContext(ctx).Debug("layout ready", "cached", hit, "layers", len(l.Layers))
	return l, nil
}

func printLayout(l layout.Layout, role layout.Role) {
	fmt.Println(StyleTitle.Render(fmt.Sprintf("%s chart", l.Kind)))
	printKeyValue("canvas", fmt.Sprintf("%sx%s", layout.FormatValue(l.Width), layout.FormatValue(l.Height)))
	printKeyValue("plot", describeBox(l.Plot))
	printKeyValue("layers", fmt.Sprint(len(l.Layers)))
	fmt.Println()

	var idx []int
	for i, ly := range l.Layers {
		if role == "" || ly.Role == role {
			idx = append(idx, i)
		}
	}
	fmt.Println(layerTable(l, idx, -1).Render())
}

// layerTable renders the layers at idx; the row for layer cursor is
// highlighted.
func layerTable(l layout.Layout, idx []int, cursor int) *table.Table {
	rows := make([][]string, 0, len(idx))
	for _, i := range idx {
		ly := l.Layers[i]
		geom, col := describePrimitive(ly.Primitive)
		rows = append(rows, []string{fmt.Sprint(i), string(ly.Op), string(ly.Role), ly.Primitive.Type(), geom, col})
	}

	header := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Op", "Role", "Type", "Geometry", "Colour").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return header
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < len(idx) && idx[row] == cursor {
				return base.Foreground(colorCyan).Bold(true)
			}
			if col == 0 || col == 5 {
				return base.Foreground(colorDim)
			}
			return base
		})
}

// describePrimitive summarises geometry and colour of a primitive.
func describePrimitive(p layout.Primitive) (geometry, colour string) {
	n := layout.FormatValue
	switch p := p.(type) {
	case *layout.Rect:
		mode := "stroke"
		if p.Filled {
			mode = "fill"
		}
		return describeBox(p.Box) + " " + mode, p.Color.Hex()
	case *layout.Line:
		return fmt.Sprintf("(%s,%s)→(%s,%s)", n(p.From.X), n(p.From.Y), n(p.To.X), n(p.To.Y)), p.Color.Hex()
	case *layout.Path:
		var flags []string
		if p.Closed {
			flags = append(flags, "closed")
		}
		if p.Filled {
			flags = append(flags, "filled")
		}
		if p.Dash != nil {
			flags = append(flags, fmt.Sprintf("dash %s/%s", n(p.Dash.On), n(p.Dash.Off)))
		}
		g := fmt.Sprintf("%d points", len(p.Points))
		if len(flags) > 0 {
			g += " " + strings.Join(flags, ",")
		}
		return g, p.Color.Hex()
	case *layout.Text:
		return fmt.Sprintf("%q at (%s,%s)", p.Text, n(p.X), n(p.Y)), p.Color.Hex()
	}
	return "", ""
}

func describeBox(b layout.Box) string {
	n := layout.FormatValue
	return fmt.Sprintf("%sx%s+%s+%s", n(b.W), n(b.H), n(b.X), n(b.Y))
}

// validateRole reports whether any layer of l has the role.
func validateRole(l layout.Layout, role layout.Role) error {
	if role == "" || len(l.Filter(role)) > 0 {
		return nil
	}
	return fmt.Errorf("no layers with role %q", role)
}
