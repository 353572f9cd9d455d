package graph

import (
	"sort"

	"cyclecheck/internal/manifest"
)

// Graph is the directed dependency graph of the workspace members. Nodes are
// package IDs; only edges between two workspace members are represented.
type Graph struct {
	nodes map[string]*manifest.Package
	edges map[string][]string
}

// Build constructs the graph from loaded metadata. Dependency names are
// resolved against the full package universe and an edge is added only when
// the resolved package is itself a workspace member; everything external is
// out of scope and cannot participate in a detectable cycle.
func Build(meta *manifest.Metadata) *Graph {
	g := &Graph{
		nodes: make(map[string]*manifest.Package),
		edges: make(map[string][]string),
	}

	members := meta.WorkspacePackages()
	for _, pkg := range members {
		g.nodes[pkg.ID] = pkg
	}

	for _, pkg := range members {
		for _, dep := range pkg.Dependencies {
			target := meta.PackageByName(dep.Name)
			if target == nil {
				continue
			}
			if _, ok := g.nodes[target.ID]; !ok {
				continue
			}
			g.edges[pkg.ID] = append(g.edges[pkg.ID], target.ID)
		}
	}

	return g
}

func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

func (g *Graph) EdgeCount() int {
	n := 0
	for _, targets := range g.edges {
		n += len(targets)
	}
	return n
}

func (g *Graph) Package(id string) *manifest.Package {
	return g.nodes[id]
}

// NodeIDs returns all node IDs in sorted order so traversals are
// deterministic across runs.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (g *Graph) Edges(from string) []string {
	return g.edges[from]
}

func (g *Graph) HasEdge(from, to string) bool {
	for _, target := range g.edges[from] {
		if target == to {
			return true
		}
	}
	return false
}
