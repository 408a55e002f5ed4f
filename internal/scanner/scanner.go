// Package scanner extracts the binding schema from annotated C++ headers.
// It walks one or more root directories, pattern-matches the ES_* marker
// vocabulary in each matching file and bounds entity bodies with a balanced
// brace scan. A file that fails to read or parse is logged and dropped; the
// scan itself only fails on a component name collision.
package scanner

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/esengine/eht/internal/meta"
)

// Options controls which files contribute to the schema.
type Options struct {
	Suffix   string   // header suffix filter, e.g. ".hpp"
	Excludes []string // glob patterns matched against slash paths
}

// DefaultSuffix is the header suffix scanned when none is configured.
const DefaultSuffix = ".hpp"

// Scan walks every root in order and merges the extracted entities into one
// Schema. Enums from all files are collected before any type is classified,
// so the resolver sees the complete enum set.
func Scan(logger *slog.Logger, roots []string, opts Options) (*meta.Schema, error) {
	suffix := opts.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}

	excludes := make([]glob.Glob, 0, len(opts.Excludes))
	for _, pattern := range opts.Excludes {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", pattern, err)
		}
		excludes = append(excludes, g)
	}

	schema := &meta.Schema{}
	for _, root := range roots {
		if err := scanRoot(logger, root, suffix, excludes, schema); err != nil {
			return nil, err
		}
	}

	if err := schema.CheckUnique(); err != nil {
		return nil, err
	}
	return schema, nil
}

func scanRoot(logger *slog.Logger, root, suffix string, excludes []glob.Glob, schema *meta.Schema) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are warnings, not run failures.
			logger.Warn("cannot access path, skipping", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, suffix) {
			return nil
		}
		slashPath := filepath.ToSlash(path)
		for _, g := range excludes {
			if g.Match(slashPath) {
				logger.Debug("excluded by pattern", "path", slashPath)
				return nil
			}
		}

		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("failed to read header, skipping", "path", path, "error", err)
			return nil
		}

		enums, components := parseHeader(logger, slashPath, string(content))
		schema.Enums = append(schema.Enums, enums...)
		schema.Components = append(schema.Components, components...)
		if len(enums) > 0 || len(components) > 0 {
			logger.Debug("parsed header", "path", slashPath, "enums", len(enums), "components", len(components))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}
	return nil
}
