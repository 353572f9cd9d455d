package manifest

// DepKind mirrors cargo's dependency kinds. Normal dependencies have an
// empty kind in the metadata output.
type DepKind string

const (
	KindNormal DepKind = ""
	KindDev    DepKind = "dev"
	KindBuild  DepKind = "build"
)

type Dependency struct {
	Name string  `json:"name"`
	Kind DepKind `json:"kind"`
}

type Package struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	ManifestPath string       `json:"manifest_path"`
	Dependencies []Dependency `json:"dependencies"`
}

// Metadata is the package universe for one workspace: every package cargo
// reports plus the subset of IDs that are workspace members.
type Metadata struct {
	Packages         []Package `json:"packages"`
	WorkspaceMembers []string  `json:"workspace_members"`
	WorkspaceRoot    string    `json:"workspace_root"`
}

func (m *Metadata) WorkspacePackages() []*Package {
	members := make(map[string]bool, len(m.WorkspaceMembers))
	for _, id := range m.WorkspaceMembers {
		members[id] = true
	}

	pkgs := make([]*Package, 0, len(m.WorkspaceMembers))
	for i := range m.Packages {
		if members[m.Packages[i].ID] {
			pkgs = append(pkgs, &m.Packages[i])
		}
	}
	return pkgs
}

func (m *Metadata) PackageByID(id string) *Package {
	for i := range m.Packages {
		if m.Packages[i].ID == id {
			return &m.Packages[i]
		}
	}
	return nil
}

// PackageByName returns the first package with the given name, in the order
// cargo listed them. Package names are unique within a workspace in practice;
// if two packages share a name the binding is whichever comes first.
func (m *Metadata) PackageByName(name string) *Package {
	for i := range m.Packages {
		if m.Packages[i].Name == name {
			return &m.Packages[i]
		}
	}
	return nil
}

// ExcludeMembers drops workspace members whose name matches. The packages stay
// in the universe so dependency names still resolve; they just stop being
// analyzed as workspace nodes.
func (m *Metadata) ExcludeMembers(match func(name string) bool) {
	kept := m.WorkspaceMembers[:0]
	for _, id := range m.WorkspaceMembers {
		pkg := m.PackageByID(id)
		if pkg != nil && match(pkg.Name) {
			continue
		}
		kept = append(kept, id)
	}
	m.WorkspaceMembers = kept
}
