package main

import (
	"fmt"
	"log/slog"
	"os"

	"cyclecheck/internal/config"
	"cyclecheck/internal/graph"
	"cyclecheck/internal/manifest"
	"cyclecheck/internal/output"
)

type App struct {
	Config *config.Config
	Meta   *manifest.Metadata
	Graph  *graph.Graph
}

func NewApp(cfg *config.Config) *App {
	return &App{Config: cfg}
}

// LoadMetadata retrieves the package universe, either by invoking cargo or by
// reading the manifests directly in offline mode, and applies the configured
// package excludes.
func (a *App) LoadMetadata() error {
	var (
		meta *manifest.Metadata
		err  error
	)
	if a.Config.Offline {
		meta, err = manifest.LoadWorkspace(a.Config.ManifestPath)
	} else {
		cmd := manifest.MetadataCommand{
			CargoPath:    a.Config.CargoPath,
			ManifestPath: a.Config.ManifestPath,
		}
		meta, err = cmd.Exec()
	}
	if err != nil {
		return err
	}

	if len(a.Config.Exclude.Packages) > 0 {
		globs, err := a.Config.CompileExcludes()
		if err != nil {
			return err
		}
		meta.ExcludeMembers(func(name string) bool {
			for _, g := range globs {
				if g.Match(name) {
					slog.Debug("excluding package from analysis", "package", name)
					return true
				}
			}
			return false
		})
	}

	slog.Debug("loaded workspace metadata",
		"root", meta.WorkspaceRoot,
		"members", len(meta.WorkspaceMembers))

	a.Meta = meta
	return nil
}

// Check builds the dependency graph and returns the detected cycles. An empty
// result is the success signal the exit code is derived from.
func (a *App) Check() [][]string {
	a.Graph = graph.Build(a.Meta)
	slog.Debug("built dependency graph",
		"nodes", a.Graph.NodeCount(),
		"edges", a.Graph.EdgeCount())
	return a.Graph.DetectCycles()
}

func (a *App) GenerateOutputs(cycles [][]string) error {
	if a.Config.Output.DOT != "" {
		dot, err := output.NewDOTGenerator(a.Graph).Generate(cycles)
		if err != nil {
			return err
		}
		if err := os.WriteFile(a.Config.Output.DOT, []byte(dot), 0644); err != nil {
			return fmt.Errorf("write DOT output: %w", err)
		}
	}

	if a.Config.Output.Mermaid != "" {
		mermaid, err := output.NewMermaidGenerator(a.Graph).Generate(cycles)
		if err != nil {
			return err
		}
		if err := os.WriteFile(a.Config.Output.Mermaid, []byte(mermaid), 0644); err != nil {
			return fmt.Errorf("write mermaid output: %w", err)
		}
	}

	return nil
}
