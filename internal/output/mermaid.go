package output

import (
	"fmt"
	"strings"
	"unicode"

	"cyclecheck/internal/graph"
)

type MermaidGenerator struct {
	graph *graph.Graph
}

func NewMermaidGenerator(g *graph.Graph) *MermaidGenerator {
	return &MermaidGenerator{graph: g}
}

func (m *MermaidGenerator) Generate(cycles [][]string) (string, error) {
	var b strings.Builder
	b.WriteString("flowchart LR\n")

	nodeIDs := m.graph.NodeIDs()
	names := make([]string, 0, len(nodeIDs))
	nameByID := make(map[string]string, len(nodeIDs))
	for _, id := range nodeIDs {
		name := m.graph.Package(id).Name
		names = append(names, name)
		nameByID[id] = name
	}
	ids := makeMermaidIDs(names)

	for _, id := range nodeIDs {
		pkg := m.graph.Package(id)
		label := fmt.Sprintf("%s\\n%s", pkg.Name, pkg.Version)
		b.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", ids[pkg.Name], escapeMermaidLabel(label)))
	}

	cycleEdges := cycleEdgeSet(cycles)
	cycleNodes := cycleMemberSet(cycles)

	b.WriteString("\n")
	if len(names) > 0 {
		b.WriteString("  classDef crateNode fill:#f7fbff,stroke:#4d6480,stroke-width:1px;\n")
		b.WriteString("  class ")
		b.WriteString(strings.Join(toIDs(names, ids), ","))
		b.WriteString(" crateNode;\n")
	}
	if len(cycleNodes) > 0 {
		cycleNames := make([]string, 0, len(cycleNodes))
		for _, id := range nodeIDs {
			if cycleNodes[id] {
				cycleNames = append(cycleNames, nameByID[id])
			}
		}
		b.WriteString("  classDef cycleNode fill:#ffecec,stroke:#cc0000,stroke-width:2px;\n")
		b.WriteString("  class ")
		b.WriteString(strings.Join(toIDs(cycleNames, ids), ","))
		b.WriteString(" cycleNode;\n")
	}

	b.WriteString("\n")
	linkIndex := 0
	cycleLinkIndexes := make([]int, 0)
	for _, from := range nodeIDs {
		for _, to := range m.graph.Edges(from) {
			edgeLabel := ""
			if cycleEdges[from+"->"+to] {
				edgeLabel = "|CYCLE|"
				cycleLinkIndexes = append(cycleLinkIndexes, linkIndex)
			}
			b.WriteString(fmt.Sprintf("  %s -->%s %s\n", ids[nameByID[from]], edgeLabel, ids[nameByID[to]]))
			linkIndex++
		}
	}
	if len(cycleLinkIndexes) > 0 {
		b.WriteString(fmt.Sprintf("\n  linkStyle %s stroke:#cc0000,stroke-width:3px;\n", joinInts(cycleLinkIndexes)))
	}

	return b.String(), nil
}

// cycleEdgeSet marks every edge that participates in a reported cycle,
// including the reflexive edge of a length-1 cycle.
func cycleEdgeSet(cycles [][]string) map[string]bool {
	out := make(map[string]bool)
	for _, cycle := range cycles {
		for i := 0; i < len(cycle); i++ {
			from := cycle[i]
			to := cycle[(i+1)%len(cycle)]
			out[from+"->"+to] = true
		}
	}
	return out
}

func cycleMemberSet(cycles [][]string) map[string]bool {
	out := make(map[string]bool)
	for _, cycle := range cycles {
		for _, id := range cycle {
			out[id] = true
		}
	}
	return out
}

func sanitizeMermaidID(name string) string {
	if name == "" {
		return "n"
	}
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	out := b.String()
	if unicode.IsDigit(rune(out[0])) {
		return "n_" + out
	}
	return out
}

func makeMermaidIDs(names []string) map[string]string {
	ids := make(map[string]string, len(names))
	used := make(map[string]int, len(names))
	for _, name := range names {
		base := sanitizeMermaidID(name)
		idx := used[base]
		used[base] = idx + 1
		if idx == 0 {
			ids[name] = base
			continue
		}
		ids[name] = fmt.Sprintf("%s_%d", base, idx+1)
	}
	return ids
}

func toIDs(names []string, ids map[string]string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if id, ok := ids[name]; ok {
			out = append(out, id)
		}
	}
	return out
}

func escapeMermaidLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func joinInts(v []int) string {
	parts := make([]string, 0, len(v))
	for _, n := range v {
		parts = append(parts, fmt.Sprintf("%d", n))
	}
	return strings.Join(parts, ",")
}
