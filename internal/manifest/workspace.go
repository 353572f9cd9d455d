package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"
)

// cargoManifest is the subset of Cargo.toml cyclecheck cares about. Dependency
// values are kept as primitives because they can be a version string, an
// inline table, or a workspace-inheritance marker.
type cargoManifest struct {
	Workspace         *workspaceSection         `toml:"workspace"`
	Package           *packageSection           `toml:"package"`
	Dependencies      map[string]toml.Primitive `toml:"dependencies"`
	DevDependencies   map[string]toml.Primitive `toml:"dev-dependencies"`
	BuildDependencies map[string]toml.Primitive `toml:"build-dependencies"`
	Target            map[string]targetSection  `toml:"target"`
}

type workspaceSection struct {
	Members []string `toml:"members"`
	Exclude []string `toml:"exclude"`
}

type packageSection struct {
	Name    string         `toml:"name"`
	Version toml.Primitive `toml:"version"`
}

type targetSection struct {
	Dependencies      map[string]toml.Primitive `toml:"dependencies"`
	DevDependencies   map[string]toml.Primitive `toml:"dev-dependencies"`
	BuildDependencies map[string]toml.Primitive `toml:"build-dependencies"`
}

// LoadWorkspace reads workspace metadata straight from the Cargo.toml files,
// for environments where cargo itself is not installed. The given manifest is
// treated as the workspace root. Like `cargo metadata --no-deps`, it never
// resolves versions, so cyclic workspaces load fine.
func LoadWorkspace(manifestPath string) (*Metadata, error) {
	if manifestPath == "" {
		manifestPath = "Cargo.toml"
	}
	absManifest, err := filepath.Abs(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("resolve manifest path %q: %w", manifestPath, err)
	}
	root := filepath.Dir(absManifest)

	m, _, err := decodeManifest(absManifest)
	if err != nil {
		return nil, err
	}
	if m.Workspace == nil && m.Package == nil {
		return nil, fmt.Errorf("%s has neither a [workspace] nor a [package] section", absManifest)
	}

	memberDirs := []string{}
	if m.Package != nil {
		memberDirs = append(memberDirs, root)
	}
	if m.Workspace != nil {
		dirs, err := expandMembers(root, m.Workspace.Members, m.Workspace.Exclude)
		if err != nil {
			return nil, err
		}
		for _, dir := range dirs {
			if dir != root {
				memberDirs = append(memberDirs, dir)
			}
		}
	}
	sort.Strings(memberDirs)

	meta := &Metadata{WorkspaceRoot: root}
	for _, dir := range memberDirs {
		pkg, err := loadPackage(filepath.Join(dir, "Cargo.toml"))
		if err != nil {
			return nil, err
		}
		meta.Packages = append(meta.Packages, *pkg)
		meta.WorkspaceMembers = append(meta.WorkspaceMembers, pkg.ID)
	}

	return meta, nil
}

func decodeManifest(path string) (*cargoManifest, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read manifest: %w", err)
	}
	var m cargoManifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return &m, md, nil
}

// expandMembers resolves the member path entries to directories containing a
// Cargo.toml. Entries without wildcards are taken literally; the rest are
// matched as globs against manifest directories found under the root.
func expandMembers(root string, members, exclude []string) ([]string, error) {
	excludeGlobs := make([]glob.Glob, 0, len(exclude))
	for _, p := range exclude {
		g, err := glob.Compile(filepath.ToSlash(p), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid workspace exclude pattern %q: %w", p, err)
		}
		excludeGlobs = append(excludeGlobs, g)
	}

	seen := make(map[string]bool)
	dirs := []string{}
	add := func(dir string) {
		rel, err := filepath.Rel(root, dir)
		if err != nil {
			return
		}
		rel = filepath.ToSlash(rel)
		for _, g := range excludeGlobs {
			if g.Match(rel) {
				return
			}
		}
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	var globbed []string
	for _, member := range members {
		if !strings.ContainsAny(member, "*?[{") {
			dir := filepath.Join(root, filepath.FromSlash(member))
			if _, err := os.Stat(filepath.Join(dir, "Cargo.toml")); err != nil {
				return nil, fmt.Errorf("workspace member %q has no Cargo.toml: %w", member, err)
			}
			add(dir)
			continue
		}
		globbed = append(globbed, filepath.ToSlash(member))
	}

	if len(globbed) > 0 {
		memberGlobs := make([]glob.Glob, 0, len(globbed))
		for _, p := range globbed {
			g, err := glob.Compile(p, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid workspace member pattern %q: %w", p, err)
			}
			memberGlobs = append(memberGlobs, g)
		}

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			base := filepath.Base(path)
			if path != root && (strings.HasPrefix(base, ".") || base == "target") {
				return filepath.SkipDir
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			for _, g := range memberGlobs {
				if g.Match(rel) {
					if _, err := os.Stat(filepath.Join(path, "Cargo.toml")); err == nil {
						add(path)
					}
					break
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("expand workspace members under %s: %w", root, err)
		}
	}

	return dirs, nil
}

func loadPackage(manifestPath string) (*Package, error) {
	m, md, err := decodeManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	if m.Package == nil || m.Package.Name == "" {
		return nil, fmt.Errorf("%s is missing a [package] name", manifestPath)
	}

	// version can be inherited from the workspace, in which case the field
	// is a table rather than a string.
	version := "0.0.0"
	var v string
	if err := md.PrimitiveDecode(m.Package.Version, &v); err == nil && v != "" {
		version = v
	}

	dir := filepath.Dir(manifestPath)
	pkg := &Package{
		ID:           fmt.Sprintf("path+file://%s#%s@%s", filepath.ToSlash(dir), m.Package.Name, version),
		Name:         m.Package.Name,
		Version:      version,
		ManifestPath: manifestPath,
	}

	pkg.Dependencies = append(pkg.Dependencies, collectDependencies(md, m.Dependencies, KindNormal)...)
	pkg.Dependencies = append(pkg.Dependencies, collectDependencies(md, m.DevDependencies, KindDev)...)
	pkg.Dependencies = append(pkg.Dependencies, collectDependencies(md, m.BuildDependencies, KindBuild)...)
	for _, target := range m.Target {
		pkg.Dependencies = append(pkg.Dependencies, collectDependencies(md, target.Dependencies, KindNormal)...)
		pkg.Dependencies = append(pkg.Dependencies, collectDependencies(md, target.DevDependencies, KindDev)...)
		pkg.Dependencies = append(pkg.Dependencies, collectDependencies(md, target.BuildDependencies, KindBuild)...)
	}

	sort.Slice(pkg.Dependencies, func(i, j int) bool {
		return pkg.Dependencies[i].Name < pkg.Dependencies[j].Name
	})
	return pkg, nil
}

func collectDependencies(md toml.MetaData, deps map[string]toml.Primitive, kind DepKind) []Dependency {
	out := make([]Dependency, 0, len(deps))
	for key, prim := range deps {
		out = append(out, Dependency{Name: dependencyName(md, key, prim), Kind: kind})
	}
	return out
}

// dependencyName honors `package = "..."` renames; otherwise the table key is
// the crate name.
func dependencyName(md toml.MetaData, key string, prim toml.Primitive) string {
	var detail struct {
		Package string `toml:"package"`
	}
	if err := md.PrimitiveDecode(prim, &detail); err == nil && detail.Package != "" {
		return detail.Package
	}
	return key
}
