package lifecycle

import "github.com/enetx/g"

// ToDOT generates a DOT language string representation of the lifecycle for visualization.
// Edges are labelled "transition / action"; the current state is highlighted.
func (m *Machine) ToDOT() g.String {
	b := g.NewBuilder()

	b.WriteString("digraph Lifecycle {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString(
		"  node [shape=circle, style=filled, fillcolor=\"#f8f8f8\", color=\"#444444\", fontname=\"Helvetica\"];\n",
	)
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	b.WriteString("  __start [shape=point, style=invis];\n")
	b.WriteString(g.Format("  __start -> \"{}\" [label=\" initial\"];\n\n", Idle.Name()))

	for _, state := range States() {
		var attrs g.Slice[g.String]
		attrs.Push(g.Format("label=\"{}\"", state.Name()))

		if state == m.current {
			attrs.Push("fillcolor=\"#90ee90\"", "shape=doublecircle")
		}

		b.WriteString(g.Format("  \"{}\" [{}];\n", state.Name(), attrs.Join(", ")))
	}

	b.WriteByte('\n')

	for _, r := range rows {
		label := g.Format("{} / {}", r.Transition.Name(), r.Action.Name())
		b.WriteString(g.Format("  \"{}\" -> \"{}\" [label=\" {} \"];\n", r.From.Name(), r.To.Name(), label))
	}

	b.WriteString("\n  subgraph cluster_legend {\n")
	b.WriteString("    label = \"Legend\";\n")
	b.WriteString("    style = dashed;\n")
	b.WriteString(`    key [label=<
      <table border="0" cellpadding="4" cellspacing="0" cellborder="0">
        <tr><td align="right">●</td><td>State</td></tr>
        <tr><td align="right"><font color="green">◎</font></td><td>Current state</td></tr>
        <tr><td align="right">→</td><td>transition / action</td></tr>
      </table>
    >, shape=none];`)

	b.WriteString("\n  }\n")
	b.WriteString("}\n")

	return b.String()
}
