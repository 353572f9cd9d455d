package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"cyclecheck/internal/config"
	"cyclecheck/internal/report"
)

var (
	configPath   = flag.String("config", "./cyclecheck.toml", "Path to config file")
	manifestPath = flag.String("manifest-path", "", "Path to the workspace Cargo.toml")
	offline      = flag.Bool("offline", false, "Parse Cargo.toml files directly instead of invoking cargo")
	verbose      = flag.Bool("verbose", false, "Enable verbose logging")
	version      = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("cyclecheck v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg := loadConfig()

	// Accept `cyclecheck check [MANIFEST]` so the tool also works as a
	// cargo-style subcommand; the bare form behaves the same.
	args := flag.Args()
	if len(args) > 0 && args[0] == "check" {
		args = args[1:]
	}
	if *manifestPath != "" {
		cfg.ManifestPath = *manifestPath
	} else if len(args) > 0 {
		cfg.ManifestPath = args[0]
	}
	if *offline {
		cfg.Offline = true
	}

	app := NewApp(cfg)

	if err := app.LoadMetadata(); err != nil {
		slog.Error("failed to load workspace metadata", "error", err)
		os.Exit(1)
	}

	cycles := app.Check()

	if err := app.GenerateOutputs(cycles); err != nil {
		slog.Error("failed to generate outputs", "error", err)
	}

	printer := report.NewPrinter()
	if len(cycles) == 0 {
		printer.Clean()
		os.Exit(0)
	}

	printer.Cycles(cycles, app.Meta)
	os.Exit(1)
}

func loadConfig() *config.Config {
	cfg, err := config.Load(*configPath)
	if err == nil {
		return cfg
	}

	if *configPath == "./cyclecheck.toml" {
		if cfg, exErr := config.Load("./cyclecheck.example.toml"); exErr == nil {
			return cfg
		}
		// Running without a config file is the normal case.
		if os.IsNotExist(err) {
			return config.Default()
		}
	}

	slog.Error("failed to load config", "path", *configPath, "error", err)
	os.Exit(1)
	return nil
}
