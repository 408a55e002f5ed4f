package cmd

import (
	"log/slog"

	"github.com/esengine/eht/internal/generator"
	"github.com/esengine/eht/internal/scanner"
)

// Generate runs one scan-and-emit pass over the engine headers.
type Generate struct {
	Input    []string `help:"Directories to scan for annotated headers" default:"src/esengine/ecs/components" env:"EHT_INPUT"`
	Output   string   `help:"Output directory for the generated C++ bindings" default:"src/esengine/bindings" env:"EHT_OUTPUT"`
	TSOutput string   `name:"ts-output" help:"Output directory for the TypeScript declaration file" default:"bindings" env:"EHT_TS_OUTPUT"`
	Suffix   string   `help:"Header file suffix to scan" default:".hpp" env:"EHT_SUFFIX"`
	Exclude  []string `help:"Glob patterns for paths to skip (e.g. '**/detail/**')" env:"EHT_EXCLUDE"`
	Verbose  bool     `short:"v" help:"Log every discovered component" env:"EHT_VERBOSE"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger) error {
	logger.Info("Starting binding generation", "inputs", g.Input, "output", g.Output, "ts-output", g.TSOutput)

	gen := generator.New(g.config(), logger)
	return gen.Run()
}

func (g *Generate) config() generator.Config {
	suffix := g.Suffix
	if suffix == "" {
		suffix = scanner.DefaultSuffix
	}
	return generator.Config{
		Inputs:   g.Input,
		Output:   g.Output,
		TSOutput: g.TSOutput,
		Suffix:   suffix,
		Excludes: g.Exclude,
		Verbose:  g.Verbose,
	}
}
