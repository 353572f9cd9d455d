package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// MetadataCommand loads workspace metadata by invoking cargo.
type MetadataCommand struct {
	// CargoPath overrides the cargo binary; empty means "cargo" from PATH.
	CargoPath string
	// ManifestPath is an optional path to the workspace Cargo.toml.
	ManifestPath string
}

func (c MetadataCommand) args() []string {
	// --no-deps keeps cargo from running its dependency resolver, which
	// refuses to load a workspace that contains a cycle. The declared
	// dependency lists are all we need.
	args := []string{"metadata", "--format-version", "1", "--no-deps"}
	if c.ManifestPath != "" {
		args = append(args, "--manifest-path", c.ManifestPath)
	}
	return args
}

func (c MetadataCommand) Exec() (*Metadata, error) {
	cargo := c.CargoPath
	if cargo == "" {
		cargo = "cargo"
	}

	cmd := exec.Command(cargo, c.args()...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("cargo metadata failed: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("cargo metadata failed: %w", err)
	}

	meta, err := DecodeMetadata(&stdout)
	if err != nil {
		return nil, fmt.Errorf("decode cargo metadata output: %w", err)
	}
	return meta, nil
}

func DecodeMetadata(r io.Reader) (*Metadata, error) {
	var meta Metadata
	if err := json.NewDecoder(r).Decode(&meta); err != nil {
		return nil, err
	}
	return &meta, nil
}
