package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/echart/pkg/render/layout"
)

var (
	helpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	filterStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// inspectCommand creates the interactive layer browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse the layers of a chart interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.computeLayout(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(NewLayerBrowser(l), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	addLayoutFlags(cmd, &opts)
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the layout cache")
	return cmd
}

// LayerBrowser is the bubbletea model of the inspect command.
type LayerBrowser struct {
	Layout  layout.Layout
	Roles   []layout.Role // "" first, meaning all roles
	RoleIdx int
	Visible []int // indices into Layout.Layers
	Cursor  int   // position in Visible
	Offset  int
	Height  int
	Detail  bool
}

// NewLayerBrowser creates a browser showing every layer of l.
func NewLayerBrowser(l layout.Layout) LayerBrowser {
	roles := []layout.Role{""}
	seen := map[layout.Role]bool{}
	for _, ly := range l.Layers {
		if !seen[ly.Role] {
			seen[ly.Role] = true
			roles = append(roles, ly.Role)
		}
	}
	m := LayerBrowser{Layout: l, Roles: roles, Height: 15}
	m.filter()
	return m
}

func (m *LayerBrowser) filter() {
	role := m.Roles[m.RoleIdx]
	m.Visible = m.Visible[:0]
	for i, ly := range m.Layout.Layers {
		if role == "" || ly.Role == role {
			m.Visible = append(m.Visible, i)
		}
	}
	m.Cursor, m.Offset = 0, 0
}

// Selected returns the index of the highlighted layer, or -1.
func (m LayerBrowser) Selected() int {
	if len(m.Visible) == 0 {
		return -1
	}
	return m.Visible[m.Cursor]
}

func (m LayerBrowser) Init() tea.Cmd { return nil }

func (m LayerBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Visible)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "tab", "right", "l":
			m.Visible = append([]int(nil), m.Visible...)
			m.RoleIdx = (m.RoleIdx + 1) % len(m.Roles)
			m.filter()
		case "shift+tab", "left", "h":
			m.Visible = append([]int(nil), m.Visible...)
			m.RoleIdx = (m.RoleIdx + len(m.Roles) - 1) % len(m.Roles)
			m.filter()
		case "enter":
			m.Detail = !m.Detail
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
	}
	return m, nil
}

func (m LayerBrowser) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s chart · %d layers", m.Layout.Kind, len(m.Layout.Layers))))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ navigate  ⇥ role  ⏎ details  q quit"))
	b.WriteString("\n")

	role := "all"
	if r := m.Roles[m.RoleIdx]; r != "" {
		role = string(r)
	}
	b.WriteString(helpStyle.Render("role: ") + filterStyle.Render(role))
	b.WriteString("\n")

	end := min(m.Offset+m.Height, len(m.Visible))
	b.WriteString(layerTable(m.Layout, m.Visible[m.Offset:end], m.Selected()).Render())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.Visible)), len(m.Visible))))

	if m.Detail {
		if i := m.Selected(); i >= 0 {
			b.WriteString("\n")
			b.WriteString(detailStyle.Render(layerDetail(i, m.Layout.Layers[i])))
		}
	}
	return b.String()
}

// layerDetail lists every field of a layer.
func layerDetail(i int, ly layout.Layer) string {
	n := layout.FormatValue
	lines := []string{fmt.Sprintf("layer %d · %s · %s", i, ly.Op, ly.Role)}
	geom, col := describePrimitive(ly.Primitive)
	lines = append(lines, geom, "colour "+col)

	switch p := ly.Primitive.(type) {
	case *layout.Path:
		pts := make([]string, len(p.Points))
		for j, pt := range p.Points {
			pts[j] = fmt.Sprintf("(%s,%s)", n(pt.X), n(pt.Y))
		}
		lines = append(lines, "points "+strings.Join(pts, " "))
		if p.StrokeWidth > 0 {
			lines = append(lines, "stroke width "+n(p.StrokeWidth))
		}
	case *layout.Text:
		lines = append(lines,
			fmt.Sprintf("font %s %s", p.Font.Family, n(p.Font.Size)),
			fmt.Sprintf("box %sx%s baseline %s", n(p.W), n(p.H), n(p.Baseline)))
	case *layout.Line:
		lines = append(lines, "width "+n(p.Width))
	}
	return strings.Join(lines, "\n")
}
