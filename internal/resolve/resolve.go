// Package resolve classifies the raw C++ type strings found in the schema
// and exposes the per-backend type projections the generators share.
// Classification is a pure function of the type text plus the collected enum
// set, so a Resolver must be built from the finished schema.
package resolve

import (
	"strings"

	"github.com/esengine/eht/internal/meta"
)

// Category is the classification of a property type. Every raw type string
// maps to exactly one category; unknown types land on Unsupported so that no
// backend ever guesses at marshalling code.
type Category int

const (
	Unsupported Category = iota
	Primitive
	ValueMath
	EnumRef
	Handle
)

func (c Category) String() string {
	switch c {
	case Primitive:
		return "primitive"
	case ValueMath:
		return "value-math"
	case EnumRef:
		return "enum"
	case Handle:
		return "handle"
	default:
		return "unsupported"
	}
}

// primitives maps flat scalar types to their TypeScript projection.
var primitives = map[string]string{
	"bool":        "boolean",
	"i8":          "number",
	"i16":         "number",
	"i32":         "number",
	"i64":         "number",
	"u8":          "number",
	"u16":         "number",
	"u32":         "number",
	"u64":         "number",
	"f32":         "number",
	"f64":         "number",
	"float":       "number",
	"double":      "number",
	"int":         "number",
	"unsigned":    "number",
	"size_t":      "number",
	"usize":       "number",
	"Entity":      "Entity",
	"std::string": "string",
	"void":        "void",
}

// mathTypes maps the flat math value aggregates to their exported TS names.
// These are the only non-scalar types every backend can marshal field by
// field.
var mathTypes = map[string]string{
	"glm::vec2":  "Vec2",
	"glm::vec3":  "Vec3",
	"glm::vec4":  "Vec4",
	"glm::quat":  "Quat",
	"glm::uvec2": "UVec2",
}

// skipPrefixes are container and callable types no backend attempts to bind.
var skipPrefixes = []string{
	"std::vector<",
	"std::function<",
	"std::unordered_map<",
	"std::array<",
}

// skipExact are concrete types excluded from binding (no flat field layout).
var skipExact = map[string]bool{
	"glm::mat4": true,
}

const handleNamespace = "resource::"

// Resolver classifies raw types against the schema's enum set.
type Resolver struct {
	enums map[string]meta.Enum // keyed by bare and qualified name
}

// New builds a Resolver from a finished schema.
func New(s *meta.Schema) *Resolver {
	enums := make(map[string]meta.Enum, len(s.Enums)*2)
	for _, e := range s.Enums {
		enums[e.Name] = e
		enums[e.QualifiedName()] = e
	}
	return &Resolver{enums: enums}
}

// StripQualifiers removes const and reference markers, producing the
// canonical string all classification rules run against.
func StripQualifiers(raw string) string {
	t := strings.ReplaceAll(raw, "const", "")
	t = strings.ReplaceAll(t, "&", "")
	return strings.TrimSpace(t)
}

// Classify maps a raw type string to its category.
func (r *Resolver) Classify(raw string) Category {
	t := StripQualifiers(raw)
	if _, ok := primitives[t]; ok {
		return Primitive
	}
	if _, ok := mathTypes[t]; ok {
		return ValueMath
	}
	if _, ok := r.enums[t]; ok {
		return EnumRef
	}
	if strings.HasSuffix(t, "Handle") || strings.HasPrefix(t, handleNamespace) {
		return Handle
	}
	for _, p := range skipPrefixes {
		if strings.HasPrefix(t, p) {
			return Unsupported
		}
	}
	// skipExact is only documentation at this point: anything unrecognized
	// falls through to Unsupported anyway.
	if skipExact[t] {
		return Unsupported
	}
	return Unsupported
}

// EnumFor returns the collected enum a type refers to.
func (r *Resolver) EnumFor(raw string) (meta.Enum, bool) {
	e, ok := r.enums[StripQualifiers(raw)]
	return e, ok
}

// TSType projects a raw type into the declaration language. Enum references
// and handles cross the boundary as plain numbers; Unsupported types project
// to the dynamic placeholder.
func (r *Resolver) TSType(raw string) string {
	t := StripQualifiers(raw)
	switch r.Classify(raw) {
	case Primitive:
		return primitives[t]
	case ValueMath:
		return mathTypes[t]
	case EnumRef, Handle:
		return "number"
	default:
		return "any"
	}
}

// MathTSName returns the exported name of a value-math type ("Vec3").
func MathTSName(raw string) (string, bool) {
	name, ok := mathTypes[StripQualifiers(raw)]
	return name, ok
}

// MathTypeNames returns the canonical C++ math type names in stable order.
func MathTypeNames() []string {
	return []string{"glm::vec2", "glm::vec3", "glm::vec4", "glm::uvec2", "glm::quat"}
}

// NeedsBridge reports whether a component carries at least one enum or
// handle field. The embind value-object primitive only binds flat,
// self-describing aggregates, so such components are bound through a shadow
// record whose enum and handle fields are narrowed to integers.
func (r *Resolver) NeedsBridge(c meta.Component) bool {
	for _, p := range c.Properties {
		switch r.Classify(p.Type) {
		case EnumRef, Handle:
			return true
		}
	}
	return false
}
