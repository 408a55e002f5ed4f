// Package quickjs renders the QuickJS bindings used by the native scripting
// runtime: conversion helpers for every math value type, one get/add
// trampoline pair per component, and the registration function that wires
// everything onto the global Registry object. Fields without a registered
// converter are emitted as an explicit TODO comment rather than silently
// dropped.
package quickjs

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/esengine/eht/internal/common"
	"github.com/esengine/eht/internal/meta"
	"github.com/esengine/eht/internal/resolve"
)

const bindingsTemplate = `{{fileHeader}}
#ifdef ES_SCRIPTING_ENABLED

#include "ECSBindings.hpp"
#include "../../ecs/Registry.hpp"
#include "../../math/Math.hpp"
{{range componentIncludes}}{{.}}
{{end}}
namespace esengine::scripting {

// Global registry pointer for C callbacks
static ecs::Registry* g_registry = nullptr;
{{conversionHelpers}}{{lifecycleBindings}}{{componentBindings}}{{mainBind}}
}  // namespace esengine::scripting

#endif  // ES_SCRIPTING_ENABLED
`

// Render produces ECSBindings.generated.cpp.
func Render(schema *meta.Schema, res *resolve.Resolver) (string, error) {
	funcMap := template.FuncMap{
		"fileHeader": func() string {
			return common.FileHeader("ECSBindings.generated.cpp", "Auto-generated QuickJS bindings for the native scripting runtime")
		},
		"componentIncludes": func() []string { return componentIncludes(schema) },
		"conversionHelpers": conversionHelpers,
		"lifecycleBindings": lifecycleBindings,
		"componentBindings": func() string { return componentBindings(schema, res) },
		"mainBind":          func() string { return mainBind(schema) },
	}
	tmpl, err := template.New("quickjs").Funcs(funcMap).Parse(bindingsTemplate)
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
		set[common.EngineInclude(c.HeaderPath, "../../")] = struct{}{}
	}
	return common.SortedSet(set)
}

// mathHelperDef describes one math type's js<->native helper pair.
type mathHelperDef struct {
	ctype  string   // glm type
	fields []string // field order for both directions
	unit   string   // zero/identity initializer
	toNum  string   // JS_To* call used when reading fields
	newNum string   // JS_New* call used when writing fields
	scalar string   // native scalar the fields are cast to
}

var mathHelperDefs = []mathHelperDef{
	{"glm::vec2", []string{"x", "y"}, "(0.0f)", "JS_ToFloat64", "JS_NewFloat64", "f32"},
	{"glm::vec3", []string{"x", "y", "z"}, "(0.0f)", "JS_ToFloat64", "JS_NewFloat64", "f32"},
	{"glm::vec4", []string{"x", "y", "z", "w"}, "(0.0f)", "JS_ToFloat64", "JS_NewFloat64", "f32"},
	{"glm::uvec2", []string{"x", "y"}, "(0u)", "JS_ToUint32", "JS_NewUint32", "u32"},
	{"glm::quat", []string{"w", "x", "y", "z"}, "(1.0f, 0.0f, 0.0f, 0.0f)", "JS_ToFloat64", "JS_NewFloat64", "f32"},
}

// conversionHelpers emits object-property marshalling helpers in both
// directions for every math value type.
func conversionHelpers() string {
	var b strings.Builder
	b.WriteString(`
// =============================================================================
// Type Conversion Helpers
// =============================================================================
`)
	for _, def := range mathHelperDefs {
		h := mathHelpers[def.ctype]

		// js -> native
		fmt.Fprintf(&b, "\nstatic %s %s(JSContext* ctx, JSValue jsObj) {\n", def.ctype, h.from)
		fmt.Fprintf(&b, "    %s result%s;\n", def.ctype, def.unit)
		for _, f := range def.fields {
			fmt.Fprintf(&b, "    JSValue %s = JS_GetPropertyStr(ctx, jsObj, \"%s\");\n", f, f)
		}
		if def.toNum == "JS_ToFloat64" {
			for _, f := range def.fields {
				fmt.Fprintf(&b, "    double d%s;\n", f)
			}
			for _, f := range def.fields {
				fmt.Fprintf(&b, "    JS_ToFloat64(ctx, &d%s, %s);\n", f, f)
			}
			for _, f := range def.fields {
				fmt.Fprintf(&b, "    result.%s = static_cast<%s>(d%s);\n", f, def.scalar, f)
			}
		} else {
			for _, f := range def.fields {
				fmt.Fprintf(&b, "    u32 n%s;\n", f)
			}
			for _, f := range def.fields {
				fmt.Fprintf(&b, "    JS_ToUint32(ctx, &n%s, %s);\n", f, f)
			}
			for _, f := range def.fields {
				fmt.Fprintf(&b, "    result.%s = n%s;\n", f, f)
			}
		}
		for _, f := range def.fields {
			fmt.Fprintf(&b, "    JS_FreeValue(ctx, %s);\n", f)
		}
		b.WriteString("    return result;\n}\n")

		// native -> js
		fmt.Fprintf(&b, "\nstatic JSValue %s(JSContext* ctx, const %s& value) {\n", h.to, def.ctype)
		b.WriteString("    JSValue obj = JS_NewObject(ctx);\n")
		for _, f := range def.fields {
			fmt.Fprintf(&b, "    JS_SetPropertyStr(ctx, obj, \"%s\", %s(ctx, value.%s));\n", f, def.newNum, f)
		}
		b.WriteString("    return obj;\n}\n")
	}
	return b.String()
}

// lifecycleBindings emits the entity create/destroy/valid trampolines.
func lifecycleBindings() string {
	return `
// =============================================================================
// Entity Lifecycle
// =============================================================================

static JSValue js_Registry_create(JSContext* ctx, JSValueConst this_val, int argc, JSValueConst* argv) {
    (void)this_val;
    (void)argc;
    (void)argv;
    if (!g_registry) {
        return JS_ThrowReferenceError(ctx, "Registry not bound");
    }
    Entity entity = g_registry->create();
    return JS_NewUint32(ctx, static_cast<u32>(entity));
}

static JSValue js_Registry_destroy(JSContext* ctx, JSValueConst this_val, int argc, JSValueConst* argv) {
    (void)this_val;
    if (argc < 1) {
        return JS_ThrowTypeError(ctx, "destroy() requires entity argument");
    }
    if (!g_registry) {
        return JS_ThrowReferenceError(ctx, "Registry not bound");
    }
    u32 entity;
    JS_ToUint32(ctx, &entity, argv[0]);
    g_registry->destroy(static_cast<Entity>(entity));
    return JS_UNDEFINED;
}

static JSValue js_Registry_valid(JSContext* ctx, JSValueConst this_val, int argc, JSValueConst* argv) {
    (void)this_val;
    if (argc < 1) {
        return JS_ThrowTypeError(ctx, "valid() requires entity argument");
    }
    if (!g_registry) {
        return JS_ThrowReferenceError(ctx, "Registry not bound");
    }
    u32 entity;
    JS_ToUint32(ctx, &entity, argv[0]);
    return JS_NewBool(ctx, g_registry->valid(static_cast<Entity>(entity)));
}
`
}

func componentBindings(schema *meta.Schema, res *resolve.Resolver) string {
	var b strings.Builder
	for _, c := range schema.Components {
		full := c.QualifiedName()
		name := common.ToPascalCase(c.Name)

		fmt.Fprintf(&b, `
// =============================================================================
// %s Component Bindings
// =============================================================================

`, c.Name)

		// Getter: reject when the entity lacks the component, then marshal
		// field by field.
		fmt.Fprintf(&b, "static JSValue js_Registry_get%s(JSContext* ctx, JSValueConst this_val, int argc, JSValueConst* argv) {\n", name)
		b.WriteString("    (void)this_val;\n    (void)argc;\n")
		b.WriteString("    u32 entity;\n")
		b.WriteString("    JS_ToUint32(ctx, &entity, argv[0]);\n")
		fmt.Fprintf(&b, "    if (!g_registry->has<%s>(entity)) {\n", full)
		fmt.Fprintf(&b, "        return JS_ThrowReferenceError(ctx, \"Entity does not have %s component\");\n", c.Name)
		b.WriteString("    }\n")
		fmt.Fprintf(&b, "    auto& comp = g_registry->get<%s>(entity);\n", full)
		b.WriteString("    JSValue obj = JS_NewObject(ctx);\n")
		for _, p := range c.Properties {
			for _, line := range getStatements(res, p) {
				b.WriteString(line + "\n")
			}
		}
		b.WriteString("    return obj;\n}\n\n")

		// Setter: read each named property off the input object, convert,
		// then replace-or-insert the component.
		fmt.Fprintf(&b, "static JSValue js_Registry_add%s(JSContext* ctx, JSValueConst this_val, int argc, JSValueConst* argv) {\n", name)
		b.WriteString("    (void)this_val;\n    (void)argc;\n")
		b.WriteString("    u32 entity;\n")
		b.WriteString("    JS_ToUint32(ctx, &entity, argv[0]);\n")
		fmt.Fprintf(&b, "    %s comp;\n", full)
		for _, p := range c.Properties {
			fmt.Fprintf(&b, "    JSValue %sVal = JS_GetPropertyStr(ctx, argv[1], \"%s\");\n", p.Name, p.Name)
			for _, line := range setStatements(res, p) {
				b.WriteString(line + "\n")
			}
			fmt.Fprintf(&b, "    JS_FreeValue(ctx, %sVal);\n", p.Name)
		}
		fmt.Fprintf(&b, "    g_registry->emplaceOrReplace<%s>(entity, comp);\n", full)
		b.WriteString("    return JS_UNDEFINED;\n}\n")
	}
	return b.String()
}

func mainBind(schema *meta.Schema) string {
	var b strings.Builder
	b.WriteString(`
// =============================================================================
// Main Binding Function
// =============================================================================

void bindECS(ScriptContext& ctx, ecs::Registry& registry) {
    g_registry = &registry;
    JSContext* jsCtx = ctx.getJSContext();
    JSValue global = JS_GetGlobalObject(jsCtx);
    JSValue registryObj = JS_NewObject(jsCtx);

    // Entity lifecycle
    JS_SetPropertyStr(jsCtx, registryObj, "create",
                     JS_NewCFunction(jsCtx, js_Registry_create, "create", 0));
    JS_SetPropertyStr(jsCtx, registryObj, "destroy",
                     JS_NewCFunction(jsCtx, js_Registry_destroy, "destroy", 1));
    JS_SetPropertyStr(jsCtx, registryObj, "valid",
                     JS_NewCFunction(jsCtx, js_Registry_valid, "valid", 1));
`)
	for _, c := range schema.Components {
		name := common.ToPascalCase(c.Name)
		fmt.Fprintf(&b, "\n    // %s\n", c.Name)
		fmt.Fprintf(&b, "    JS_SetPropertyStr(jsCtx, registryObj, \"get%s\",\n", name)
		fmt.Fprintf(&b, "                     JS_NewCFunction(jsCtx, js_Registry_get%s, \"get%s\", 1));\n", name, name)
		fmt.Fprintf(&b, "    JS_SetPropertyStr(jsCtx, registryObj, \"add%s\",\n", name)
		fmt.Fprintf(&b, "                     JS_NewCFunction(jsCtx, js_Registry_add%s, \"add%s\", 2));\n", name, name)
	}
	b.WriteString(`
    JS_SetPropertyStr(jsCtx, global, "Registry", registryObj);
    JS_FreeValue(jsCtx, global);
}
`)
	return b.String()
}
