package common

import (
	"sort"
	"strings"
)

const engineSourceRoot = "src/esengine/"

// EngineInclude converts a scanned header path into an include directive
// relative to the generated file's location inside the engine tree. prefix is
// the generated file's depth below the engine root ("../" for bindings/,
// "../../" for scripting/bindings/). Paths outside the engine tree are
// emitted as-is.
func EngineInclude(headerPath, prefix string) string {
	rel := headerPath
	if idx := strings.Index(rel, engineSourceRoot); idx >= 0 {
		rel = prefix + rel[idx+len(engineSourceRoot):]
	}
	return `#include "` + rel + `"`
}

// SortedSet renders a string set in stable, sorted order.
func SortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
