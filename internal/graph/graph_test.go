package graph

import (
	"testing"

	"cyclecheck/internal/manifest"
)

func pkg(id, name string, deps ...string) manifest.Package {
	p := manifest.Package{ID: id, Name: name, Version: "0.1.0"}
	for _, d := range deps {
		p.Dependencies = append(p.Dependencies, manifest.Dependency{Name: d})
	}
	return p
}

// testMeta treats every given package as a workspace member.
func testMeta(pkgs ...manifest.Package) *manifest.Metadata {
	meta := &manifest.Metadata{Packages: pkgs}
	for _, p := range pkgs {
		meta.WorkspaceMembers = append(meta.WorkspaceMembers, p.ID)
	}
	return meta
}

func TestBuild_NodesAndEdges(t *testing.T) {
	meta := testMeta(
		pkg("id-a", "a", "b"),
		pkg("id-b", "b"),
	)

	g := Build(meta)
	if g.NodeCount() != 2 {
		t.Errorf("Expected 2 nodes, got %d", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Errorf("Expected 1 edge, got %d", g.EdgeCount())
	}
	if !g.HasEdge("id-a", "id-b") {
		t.Error("Expected edge id-a -> id-b")
	}
}

func TestBuild_NoDependencyDataYieldsEdgelessGraph(t *testing.T) {
	meta := testMeta(pkg("id-a", "a"), pkg("id-b", "b"))

	g := Build(meta)
	if g.EdgeCount() != 0 {
		t.Errorf("Expected edgeless graph, got %d edges", g.EdgeCount())
	}
}

func TestBuild_ExternalDependenciesIgnored(t *testing.T) {
	// "serde" is not in the universe at all; "ext" is in the universe but
	// not a workspace member. Neither may produce an edge.
	meta := testMeta(pkg("id-a", "a", "serde", "ext", "b"), pkg("id-b", "b"))
	meta.Packages = append(meta.Packages, pkg("id-ext", "ext"))

	g := Build(meta)
	if g.NodeCount() != 2 {
		t.Errorf("Expected 2 nodes, got %d", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Errorf("Expected only the workspace edge, got %d edges", g.EdgeCount())
	}
	if g.HasEdge("id-a", "id-ext") {
		t.Error("Edge to non-member package must not exist")
	}
}

func TestBuild_DuplicateNameBindsFirstMatch(t *testing.T) {
	meta := testMeta(
		pkg("id-dup-1", "dup"),
		pkg("id-dup-2", "dup"),
		pkg("id-c", "c", "dup"),
	)

	g := Build(meta)
	if !g.HasEdge("id-c", "id-dup-1") {
		t.Error("Expected dependency name to bind to the first matching package")
	}
	if g.HasEdge("id-c", "id-dup-2") {
		t.Error("Second package with the duplicate name must not receive the edge")
	}
}

func TestGraph_Package(t *testing.T) {
	meta := testMeta(pkg("id-a", "a"))

	g := Build(meta)
	if p := g.Package("id-a"); p == nil || p.Name != "a" {
		t.Errorf("Package lookup failed: %+v", p)
	}
	if p := g.Package("missing"); p != nil {
		t.Errorf("Expected nil for unknown id, got %+v", p)
	}
}
