package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"
)

type Config struct {
	ManifestPath string  `toml:"manifest_path"`
	CargoPath    string  `toml:"cargo_path"`
	Offline      bool    `toml:"offline"`
	Exclude      Exclude `toml:"exclude"`
	Output       Output  `toml:"output"`
}

type Exclude struct {
	// Packages holds glob patterns of crate names to drop from the analysis.
	Packages []string `toml:"packages"`
}

type Output struct {
	DOT     string `toml:"dot"`
	Mermaid string `toml:"mermaid"`
}

func Default() *Config {
	return &Config{CargoPath: "cargo"}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	if err := validateExcludes(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.CargoPath == "" {
		cfg.CargoPath = "cargo"
	}
}

func validateExcludes(cfg *Config) error {
	for _, p := range cfg.Exclude.Packages {
		if _, err := glob.Compile(p); err != nil {
			return fmt.Errorf("invalid exclude package pattern %q: %w", p, err)
		}
	}
	return nil
}

// CompileExcludes compiles the exclude patterns. Load already validated them,
// but callers passing a hand-built Config still get the error.
func (c *Config) CompileExcludes() ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(c.Exclude.Packages))
	for _, p := range c.Exclude.Packages {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude package pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}
