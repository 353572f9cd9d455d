package output

import (
	"fmt"
	"strings"

	"cyclecheck/internal/graph"
)

type DOTGenerator struct {
	graph *graph.Graph
}

func NewDOTGenerator(g *graph.Graph) *DOTGenerator {
	return &DOTGenerator{graph: g}
}

func (d *DOTGenerator) Generate(cycles [][]string) (string, error) {
	var buf strings.Builder

	buf.WriteString("digraph workspace {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=\"white\", fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=8, penwidth=1.2];\n")
	buf.WriteString("  splines=polyline;\n")
	buf.WriteString("  overlap=false;\n\n")

	cycleEdges := cycleEdgeSet(cycles)
	cycleNodes := cycleMemberSet(cycles)

	for _, id := range d.graph.NodeIDs() {
		pkg := d.graph.Package(id)
		label := fmt.Sprintf("%s\\n%s", pkg.Name, pkg.Version)
		if cycleNodes[id] {
			buf.WriteString(fmt.Sprintf("  \"%s\" [label=\"%s\", fillcolor=\"mistyrose\", color=\"red\", penwidth=2.0];\n", pkg.Name, label))
		} else {
			buf.WriteString(fmt.Sprintf("  \"%s\" [label=\"%s\", color=\"darkslategrey\"];\n", pkg.Name, label))
		}
	}
	buf.WriteString("\n")

	for _, from := range d.graph.NodeIDs() {
		fromName := d.graph.Package(from).Name
		for _, to := range d.graph.Edges(from) {
			toName := d.graph.Package(to).Name
			if cycleEdges[from+"->"+to] {
				buf.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [color=\"red\", penwidth=3.0, label=\"CYCLE\"];\n", fromName, toName))
			} else {
				buf.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [color=\"forestgreen\"];\n", fromName, toName))
			}
		}
	}

	buf.WriteString("}\n")

	return buf.String(), nil
}
