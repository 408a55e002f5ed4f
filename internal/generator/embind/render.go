// Package embind renders the Emscripten value-object bindings for the web
// platform. Components whose fields are all flat value types bind directly;
// components with enum or handle fields bind through a generated shadow
// record whose narrow fields embind can marshal, plus a pair of conversion
// functions bridging the real component and its shadow.
package embind

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/esengine/eht/internal/common"
	"github.com/esengine/eht/internal/meta"
	"github.com/esengine/eht/internal/resolve"
)

const bindingsTemplate = `{{fileHeader}}
#ifdef ES_PLATFORM_WEB

#include <emscripten/bind.h>
#include "../ecs/Registry.hpp"
#include "../math/Math.hpp"
{{range componentIncludes}}{{.}}
{{end}}
using namespace emscripten;
using namespace esengine;
using namespace esengine::ecs;

// =============================================================================
// Math Types
// =============================================================================

EMSCRIPTEN_BINDINGS(esengine_math) {
    value_object<glm::vec2>("Vec2")
        .field("x", &glm::vec2::x)
        .field("y", &glm::vec2::y);

    value_object<glm::vec3>("Vec3")
        .field("x", &glm::vec3::x)
        .field("y", &glm::vec3::y)
        .field("z", &glm::vec3::z);

    value_object<glm::vec4>("Vec4")
        .field("x", &glm::vec4::x)
        .field("y", &glm::vec4::y)
        .field("z", &glm::vec4::z)
        .field("w", &glm::vec4::w);

    value_object<glm::uvec2>("UVec2")
        .field("x", &glm::uvec2::x)
        .field("y", &glm::uvec2::y);

    value_object<glm::quat>("Quat")
        .field("w", &glm::quat::w)
        .field("x", &glm::quat::x)
        .field("y", &glm::quat::y)
        .field("z", &glm::quat::z);
}
{{enumBindings}}{{shadowRecords}}{{componentBindings}}{{registryBindings}}
#endif  // ES_PLATFORM_WEB
`

// Render produces WebBindings.generated.cpp.
func Render(schema *meta.Schema, res *resolve.Resolver) (string, error) {
	funcMap := template.FuncMap{
		"fileHeader": func() string {
			return common.FileHeader("WebBindings.generated.cpp", "Auto-generated Emscripten embind bindings")
		},
		"componentIncludes": func() []string { return componentIncludes(schema) },
		"enumBindings":      func() string { return enumBindings(schema) },
		"shadowRecords":     func() string { return shadowRecords(schema, res) },
		"componentBindings": func() string { return componentBindings(schema, res) },
		"registryBindings":  func() string { return registryBindings(schema, res) },
	}
	tmpl, err := template.New("embind").Funcs(funcMap).Parse(bindingsTemplate)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, nil); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return b.String(), nil
}

func componentIncludes(schema *meta.Schema) []string {
	set := make(map[string]struct{})
	for _, c := range schema.Components {
		if c.HeaderPath == "" {
			continue
		}
		set[common.EngineInclude(c.HeaderPath, "../")] = struct{}{}
	}
	return common.SortedSet(set)
}

func enumBindings(schema *meta.Schema) string {
	if len(schema.Enums) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`
// =============================================================================
// Enums
// =============================================================================

EMSCRIPTEN_BINDINGS(esengine_enums) {
`)
	for i, e := range schema.Enums {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "    enum_<%s>(\"%s\")", e.QualifiedName(), e.Name)
		for _, v := range e.Values {
			fmt.Fprintf(&b, "\n        .value(\"%s\", %s::%s)", v.Name, e.QualifiedName(), v.Name)
		}
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// shadowName returns the generated shadow record type for a component.
func shadowName(c meta.Component) string {
	return c.Name + "Shadow"
}

// shadowFieldType maps a bridged field to its narrow shadow type.
func shadowFieldType(res *resolve.Resolver, p meta.Property) string {
	switch res.Classify(p.Type) {
	case resolve.EnumRef:
		return "i32"
	case resolve.Handle:
		return "u32"
	default:
		return resolve.StripQualifiers(p.Type)
	}
}

// shadowRecords emits, for every component needing a bridge, the flat shadow
// struct plus the two pure conversion functions. Unsupported fields do not
// appear in the shadow at all.
func shadowRecords(schema *meta.Schema, res *resolve.Resolver) string {
	var bridged []meta.Component
	for _, c := range schema.Components {
		if res.NeedsBridge(c) {
			bridged = append(bridged, c)
		}
	}
	if len(bridged) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`
// =============================================================================
// Shadow Records
// =============================================================================
// Embind value objects can only carry flat, self-describing value fields.
// Enum and handle fields are narrowed to plain integers in a shadow record;
// the registry accessors below convert at the boundary.
`)
	for _, c := range bridged {
		shadow := shadowName(c)
		b.WriteString("\n")
		fmt.Fprintf(&b, "struct %s {\n", shadow)
		for _, p := range c.Properties {
			if res.Classify(p.Type) == resolve.Unsupported {
				continue
			}
			fmt.Fprintf(&b, "    %s %s;\n", shadowFieldType(res, p), p.Name)
		}
		b.WriteString("};\n\n")

		fmt.Fprintf(&b, "static %s to%s(const %s& in) {\n", shadow, shadow, c.QualifiedName())
		fmt.Fprintf(&b, "    %s out;\n", shadow)
		for _, p := range c.Properties {
			switch res.Classify(p.Type) {
			case resolve.EnumRef:
				fmt.Fprintf(&b, "    out.%s = static_cast<i32>(in.%s);\n", p.Name, p.Name)
			case resolve.Handle:
				fmt.Fprintf(&b, "    out.%s = in.%s.id();\n", p.Name, p.Name)
			case resolve.Unsupported:
			default:
				fmt.Fprintf(&b, "    out.%s = in.%s;\n", p.Name, p.Name)
			}
		}
		b.WriteString("    return out;\n}\n\n")

		fmt.Fprintf(&b, "static %s from%s(const %s& in) {\n", c.QualifiedName(), shadow, shadow)
		fmt.Fprintf(&b, "    %s out;\n", c.QualifiedName())
		for _, p := range c.Properties {
			canon := resolve.StripQualifiers(p.Type)
			switch res.Classify(p.Type) {
			case resolve.EnumRef:
				fmt.Fprintf(&b, "    out.%s = static_cast<%s>(in.%s);\n", p.Name, canon, p.Name)
			case resolve.Handle:
				fmt.Fprintf(&b, "    out.%s = %s(in.%s);\n", p.Name, canon, p.Name)
			case resolve.Unsupported:
			default:
				fmt.Fprintf(&b, "    out.%s = in.%s;\n", p.Name, p.Name)
			}
		}
		b.WriteString("    return out;\n}\n")
	}
	return b.String()
}

func componentBindings(schema *meta.Schema, res *resolve.Resolver) string {
	var b strings.Builder
	b.WriteString(`
// =============================================================================
// Components
// =============================================================================

EMSCRIPTEN_BINDINGS(esengine_components) {
`)
	for i, c := range schema.Components {
		if i > 0 {
			b.WriteString("\n")
		}
		bindType := c.QualifiedName()
		if res.NeedsBridge(c) {
			bindType = shadowName(c)
		}
		fmt.Fprintf(&b, "    // %s\n", c.Name)
		fmt.Fprintf(&b, "    value_object<%s>(\"%s\")", bindType, c.Name)
		for _, p := range c.Properties {
			if res.Classify(p.Type) == resolve.Unsupported {
				continue
			}
			fmt.Fprintf(&b, "\n        .field(\"%s\", &%s::%s)", p.Name, bindType, p.Name)
		}
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func registryBindings(schema *meta.Schema, res *resolve.Resolver) string {
	var b strings.Builder
	b.WriteString(`
// =============================================================================
// Registry
// =============================================================================

EMSCRIPTEN_BINDINGS(esengine_registry) {
    class_<Registry>("Registry")
        .constructor<>()
        .function("create", optional_override([](Registry& r) {
            return static_cast<u32>(r.create());
        }))
        .function("destroy", optional_override([](Registry& r, u32 e) {
            r.destroy(static_cast<Entity>(e));
        }))
        .function("valid", optional_override([](Registry& r, u32 e) {
            return r.valid(static_cast<Entity>(e));
        }))
        .function("entityCount", &Registry::entityCount)
`)
	for _, c := range schema.Components {
		full := c.QualifiedName()
		name := common.ToPascalCase(c.Name)

		fmt.Fprintf(&b, "\n        // %s\n", c.Name)
		fmt.Fprintf(&b, "        .function(\"has%s\", optional_override([](Registry& r, u32 e) {\n", name)
		fmt.Fprintf(&b, "            return r.has<%s>(static_cast<Entity>(e));\n", full)
		b.WriteString("        }))\n")

		if res.NeedsBridge(c) {
			shadow := shadowName(c)
			fmt.Fprintf(&b, "        .function(\"get%s\", optional_override([](Registry& r, u32 e) {\n", name)
			fmt.Fprintf(&b, "            return to%s(r.get<%s>(static_cast<Entity>(e)));\n", shadow, full)
			b.WriteString("        }))\n")
			fmt.Fprintf(&b, "        .function(\"add%s\", optional_override([](Registry& r, u32 e, const %s& c) {\n", name, shadow)
			fmt.Fprintf(&b, "            r.emplaceOrReplace<%s>(static_cast<Entity>(e), from%s(c));\n", full, shadow)
			b.WriteString("        }))\n")
		} else {
			fmt.Fprintf(&b, "        .function(\"get%s\", optional_override([](Registry& r, u32 e) -> %s& {\n", name, full)
			fmt.Fprintf(&b, "            return r.get<%s>(static_cast<Entity>(e));\n", full)
			b.WriteString("        }), allow_raw_pointers())\n")
			fmt.Fprintf(&b, "        .function(\"add%s\", optional_override([](Registry& r, u32 e, const %s& c) {\n", name, full)
			fmt.Fprintf(&b, "            r.emplaceOrReplace<%s>(static_cast<Entity>(e), c);\n", full)
			b.WriteString("        }))\n")
		}

		fmt.Fprintf(&b, "        .function(\"remove%s\", optional_override([](Registry& r, u32 e) {\n", name)
		fmt.Fprintf(&b, "            r.remove<%s>(static_cast<Entity>(e));\n", full)
		b.WriteString("        }))\n")
	}
	b.WriteString("        ;\n}\n")
	return b.String()
}
