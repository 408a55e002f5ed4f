package scanner

import (
	"log/slog"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/esengine/eht/internal/meta"
)

// Marker grammar. The tool deliberately works on raw text: a cheap marker
// search finds candidate entity starts, then the balanced brace scan bounds
// the multi-line body. No C++ grammar is parsed.
var (
	reNamespace = regexp.MustCompile(`namespace\s+([\w:]+)\s*\{`)
	reComponent = regexp.MustCompile(`ES_COMPONENT\s*\(\s*\)\s*(?:struct|class)\s+(\w+)`)
	reEnum      = regexp.MustCompile(`ES_ENUM\s*\(\s*\)\s*enum\s+class\s+(\w+)(?:\s*:\s*(\w+))?`)
	reProperty  = regexp.MustCompile(`ES_PROPERTY\s*\(\s*\)\s*([^;{=]+?)\s+(\w+)\s*(?:\{([^}]*)\}|=\s*([^;]+))?;`)
	reMethod    = regexp.MustCompile(`ES_METHOD\s*\(([^)]*)\)\s*([\w:]+(?:\s*[*&])?)\s+(\w+)\s*\(([^)]*)\)`)
	reEnumEntry = regexp.MustCompile(`(\w+)\s*(?:=\s*(-?\d+))?\s*(?:,|$)`)
	reEnumAnnot = regexp.MustCompile(`ES_ENUM_VALUE\s*\([^)]*\)`)

	reLineComment  = regexp.MustCompile(`//[^\n]*`)
	reBlockComment = regexp.MustCompile(`/\*[\s\S]*?\*/`)
)

const defaultUnderlying = "int"

// parseHeader extracts every annotated enum and component from one header.
// A file carries at most one active namespace context: the first namespace
// marker wins and every entity in the file inherits it.
func parseHeader(logger *slog.Logger, path, content string) ([]meta.Enum, []meta.Component) {
	namespace := ""
	if m := reNamespace.FindStringSubmatch(content); m != nil {
		namespace = m[1]
	}

	enums := parseEnums(logger, path, content, namespace)
	components := parseComponents(logger, path, content, namespace)
	return enums, components
}

func parseEnums(logger *slog.Logger, path, content, namespace string) []meta.Enum {
	var enums []meta.Enum
	for _, loc := range reEnum.FindAllStringSubmatchIndex(content, -1) {
		name := content[loc[2]:loc[3]]
		underlying := defaultUnderlying
		if loc[4] >= 0 {
			underlying = content[loc[4]:loc[5]]
		}

		body, found, terminated := bodyAfter(content, loc[1])
		if !found {
			logger.Warn("enum has no body, skipping", "enum", name, "file", path)
			continue
		}
		if !terminated {
			logger.Warn("unterminated enum body, skipping", "enum", name, "file", path)
			continue
		}

		enums = append(enums, meta.Enum{
			Name:       name,
			Namespace:  namespace,
			Values:     parseEnumValues(body),
			Underlying: underlying,
		})
	}
	return enums
}

// parseEnumValues extracts enumerators from an enum body. Explicit `= N`
// literals are honored; unassigned names continue from the previous value.
func parseEnumValues(body string) []meta.EnumValue {
	clean := reBlockComment.ReplaceAllString(body, "")
	clean = reLineComment.ReplaceAllString(clean, "")
	clean = reEnumAnnot.ReplaceAllString(clean, "")
	next := 0
	var values []meta.EnumValue
	for _, entry := range strings.Split(clean, ",") {
		m := reEnumEntry.FindStringSubmatch(strings.TrimSpace(entry))
		if m == nil || m[1] == "" {
			continue
		}
		v := meta.EnumValue{Name: m[1], Value: next}
		if m[2] != "" {
			if n, err := strconv.Atoi(m[2]); err == nil {
				v.Value = n
				v.Explicit = true
			}
		}
		next = v.Value + 1
		values = append(values, v)
	}
	return values
}

func parseComponents(logger *slog.Logger, path, content, namespace string) []meta.Component {
	var components []meta.Component
	for _, loc := range reComponent.FindAllStringSubmatchIndex(content, -1) {
		name := content[loc[2]:loc[3]]

		body, found, terminated := bodyAfter(content, loc[1])
		if !found {
			logger.Warn("component has no body, skipping", "component", name, "file", path)
			continue
		}
		if !terminated {
			logger.Warn("unterminated component body, skipping", "component", name, "file", path)
			continue
		}

		components = append(components, meta.Component{
			Name:       name,
			Namespace:  namespace,
			Properties: parseProperties(body),
			Methods:    parseMethods(body),
			HeaderPath: filepath.ToSlash(path),
		})
	}
	return components
}

func parseProperties(body string) []meta.Property {
	var props []meta.Property
	for _, m := range reProperty.FindAllStringSubmatch(body, -1) {
		def := m[3]
		if def == "" {
			def = m[4]
		}
		props = append(props, meta.Property{
			Name:    m[2],
			Type:    strings.TrimSpace(m[1]),
			Default: strings.TrimSpace(def),
		})
	}
	return props
}

func parseMethods(body string) []meta.Method {
	var methods []meta.Method
	for _, m := range reMethod.FindAllStringSubmatch(body, -1) {
		attrs := m[1]
		methods = append(methods, meta.Method{
			Name:       m[3],
			ReturnType: strings.TrimSpace(m[2]),
			Params:     parseParams(m[4]),
			Const:      strings.Contains(attrs, "const"),
			Static:     strings.Contains(attrs, "static"),
		})
	}
	return methods
}

// parseParams splits a parameter list on commas; the last whitespace-separated
// token of each entry is the name, everything before it the type.
func parseParams(list string) []meta.Param {
	var params []meta.Param
	for _, p := range strings.Split(list, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		idx := strings.LastIndexAny(p, " \t")
		if idx < 0 {
			continue
		}
		params = append(params, meta.Param{
			Type: strings.TrimSpace(p[:idx]),
			Name: strings.TrimSpace(p[idx+1:]),
		})
	}
	return params
}
