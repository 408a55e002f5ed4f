// Package generator drives one full pipeline run: scan the input roots
// once, build the type resolver from the finished schema, render every
// backend and write the artifacts. Backends never touch the filesystem and
// never see each other's output; all I/O happens here.
package generator

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/esengine/eht/internal/generator/dts"
	"github.com/esengine/eht/internal/generator/embind"
	"github.com/esengine/eht/internal/generator/quickjs"
	"github.com/esengine/eht/internal/meta"
	"github.com/esengine/eht/internal/resolve"
	"github.com/esengine/eht/internal/scanner"
)

// Config carries the resolved CLI/config surface for one run.
type Config struct {
	Inputs   []string // scan roots, merged in order
	Output   string   // directory for the generated C++ bindings
	TSOutput string   // directory for the TypeScript declaration file
	Suffix   string   // header suffix filter
	Excludes []string // glob patterns to skip
	Verbose  bool
}

// renderFunc is the shared emitter contract: a pure function of the schema
// and resolver producing one text document.
type renderFunc func(*meta.Schema, *resolve.Resolver) (string, error)

type backend struct {
	name   string
	file   string
	outDir func(Config) string
	render renderFunc
}

// backends is rendered in slice order so repeated runs touch files in a
// stable sequence. No backend invocation depends on another's success.
var backends = []backend{
	{"embind", "WebBindings.generated.cpp", func(c Config) string { return c.Output }, embind.Render},
	{"quickjs", "ECSBindings.generated.cpp", func(c Config) string { return c.Output }, quickjs.Render},
	{"dts", "esengine.d.ts", func(c Config) string { return c.TSOutput }, dts.Render},
}

// Generator runs the scan-resolve-emit pipeline.
type Generator struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Generator {
	return &Generator{cfg: cfg, logger: logger}
}

// Run performs one full scan and rewrite. It fails when the merged schema
// contains no components, and otherwise reports every backend failure
// independently; a single failing backend does not stop the others.
func (g *Generator) Run() error {
	schema, err := scanner.Scan(g.logger, g.cfg.Inputs, scanner.Options{
		Suffix:   g.cfg.Suffix,
		Excludes: g.cfg.Excludes,
	})
	if err != nil {
		return err
	}

	g.logger.Info("scan complete", "enums", len(schema.Enums), "components", len(schema.Components))
	if g.cfg.Verbose {
		for _, c := range schema.Components {
			g.logger.Info("component",
				"name", c.QualifiedName(),
				"properties", len(c.Properties),
				"methods", len(c.Methods))
		}
	}

	if len(schema.Components) == 0 {
		g.logger.Error("no components found", "inputs", g.cfg.Inputs)
		return fmt.Errorf("no components found under %v", g.cfg.Inputs)
	}

	res := resolve.New(schema)

	var errs []error
	for _, b := range backends {
		if err := g.emit(b, schema, res); err != nil {
			g.logger.Error("backend failed", "backend", b.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", b.name, err))
		}
	}
	return errors.Join(errs...)
}

func (g *Generator) emit(b backend, schema *meta.Schema, res *resolve.Resolver) error {
	doc, err := b.render(schema, res)
	if err != nil {
		return err
	}

	dir := b.outDir(g.cfg)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, b.file)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	g.logger.Info("generated", "backend", b.name, "file", path)
	return nil
}
