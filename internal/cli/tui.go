package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/layerflow/pkg/ir"
)

// layoutModel is an interactive, per-layer browser over a computed
// layout: up/down moves between layers, each layer shows its nodes in
// order with their final coordinates.
type layoutModel struct {
	graph  ir.Graph[int]
	layers [][]ir.Node[int]
	cursor int
	height int
}

func newLayoutModel(g ir.Graph[int]) layoutModel {
	byLayer := map[int][]ir.Node[int]{}
	maxLayer := 0
	for _, n := range g.Nodes {
		if n.Dummy {
			continue
		}
		byLayer[n.Layer] = append(byLayer[n.Layer], n)
		if n.Layer > maxLayer {
			maxLayer = n.Layer
		}
	}
	layers := make([][]ir.Node[int], maxLayer+1)
	for l := 0; l <= maxLayer; l++ {
		nodes := byLayer[l]
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].Order < nodes[j].Order })
		layers[l] = nodes
	}
	return layoutModel{graph: g, layers: layers, height: 20}
}

func (m layoutModel) Init() tea.Cmd {
	return nil
}

func (m layoutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.layers)-1 {
				m.cursor++
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m layoutModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  (%d nodes, %d edges, %dx%d)\n\n",
		styleTitle.Render("layerflow layout browser"), len(m.graph.Nodes), len(m.graph.Edges), m.graph.Width, m.graph.Height)

	for i, layer := range m.layers {
		style := styleNormal
		prefix := "  "
		if i == m.cursor {
			style = styleSelected
			prefix = "> "
		}
		names := make([]string, len(layer))
		for j, n := range layer {
			names[j] = fmt.Sprintf("%s@(%d,%d)", n.Label, n.X, n.Y)
		}
		fmt.Fprintf(&b, "%s%s layer %d: %s\n", prefix, style.Render(fmt.Sprintf("%2d", i)), i, styleDim.Render(strings.Join(names, ", ")))
	}
	b.WriteString("\n" + styleDim.Render("up/down to move between layers, q to quit"))
	return styleBorder.Render(b.String())
}
