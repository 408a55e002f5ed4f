package quickjs_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esengine/eht/internal/generator/quickjs"
	"github.com/esengine/eht/internal/meta"
	"github.com/esengine/eht/internal/resolve"
)

func testSchema() *meta.Schema {
	return &meta.Schema{
		Enums: []meta.Enum{
			{Name: "Direction", Namespace: "esengine::ecs", Underlying: "u8"},
		},
		Components: []meta.Component{
			{
				Name:      "Transform",
				Namespace: "esengine::ecs",
				Properties: []meta.Property{
					{Name: "position", Type: "glm::vec3"},
					{Name: "rotation", Type: "glm::quat"},
					{Name: "scale", Type: "glm::vec3"},
				},
				HeaderPath: "src/esengine/ecs/components/Transform.hpp",
			},
			{
				Name:      "Facing",
				Namespace: "esengine::ecs",
				Properties: []meta.Property{
					{Name: "dir", Type: "Direction"},
					{Name: "icon", Type: "TextureHandle"},
					{Name: "angle", Type: "f32"},
					{Name: "label", Type: "std::string"},
				},
				HeaderPath: "src/esengine/ecs/components/Facing.hpp",
			},
		},
	}
}

func render(t *testing.T) string {
	t.Helper()
	schema := testSchema()
	out, err := quickjs.Render(schema, resolve.New(schema))
	require.NoError(t, err)
	return out
}

func TestRenderFrame(t *testing.T) {
	out := render(t)

	assert.True(t, strings.HasPrefix(out, "/**"))
	assert.Contains(t, out, "#ifdef ES_SCRIPTING_ENABLED")
	assert.Contains(t, out, `#include "../../ecs/components/Facing.hpp"`)
	assert.Contains(t, out, "namespace esengine::scripting {")
	assert.Contains(t, out, "static ecs::Registry* g_registry = nullptr;")
	assert.Contains(t, out, "#endif  // ES_SCRIPTING_ENABLED")
}

func TestRenderConversionHelpers(t *testing.T) {
	out := render(t)

	assert.Contains(t, out, "static glm::vec3 jsToVec3(JSContext* ctx, JSValue jsObj)")
	assert.Contains(t, out, "static JSValue vec3ToJS(JSContext* ctx, const glm::vec3& value)")
	assert.Contains(t, out, "static glm::quat jsToQuat(JSContext* ctx, JSValue jsObj)")
	assert.Contains(t, out, "static glm::uvec2 jsToUVec2(JSContext* ctx, JSValue jsObj)")
	// Quat identity initializer, w first.
	assert.Contains(t, out, "glm::quat result(1.0f, 0.0f, 0.0f, 0.0f);")
}

func TestRenderLifecycle(t *testing.T) {
	out := render(t)

	assert.Contains(t, out, "static JSValue js_Registry_create(JSContext* ctx")
	assert.Contains(t, out, `return JS_ThrowReferenceError(ctx, "Registry not bound");`)
	assert.Contains(t, out, `return JS_ThrowTypeError(ctx, "destroy() requires entity argument");`)
}

func TestRenderComponentTrampolines(t *testing.T) {
	out := render(t)

	assert.Contains(t, out, "static JSValue js_Registry_getTransform(JSContext* ctx")
	assert.Contains(t, out, `return JS_ThrowReferenceError(ctx, "Entity does not have Transform component");`)
	assert.Contains(t, out, `JS_SetPropertyStr(ctx, obj, "position", vec3ToJS(ctx, comp.position));`)
	assert.Contains(t, out, "comp.position = jsToVec3(ctx, positionVal);")
	assert.Contains(t, out, "g_registry->emplaceOrReplace<esengine::ecs::Transform>(entity, comp);")

	// Primitive marshalling.
	assert.Contains(t, out, `JS_SetPropertyStr(ctx, obj, "angle", JS_NewFloat64(ctx, comp.angle));`)
	assert.Contains(t, out, "comp.angle = static_cast<f32>(dangle);")
	assert.Contains(t, out, `JS_SetPropertyStr(ctx, obj, "label", JS_NewString(ctx, comp.label.c_str()));`)
	assert.Contains(t, out, "const char* slabel = JS_ToCString(ctx, labelVal);")
}

func TestRenderUnconvertedFieldsAreLoud(t *testing.T) {
	out := render(t)

	// Enum and handle fields have no scripting converter yet: the generated
	// code must say so instead of silently dropping them.
	assert.Contains(t, out, "// TODO: Add converter for Direction")
	assert.Contains(t, out, "// TODO: Add converter for TextureHandle")
}

func TestRenderMainBind(t *testing.T) {
	out := render(t)

	assert.Contains(t, out, "void bindECS(ScriptContext& ctx, ecs::Registry& registry) {")
	assert.Contains(t, out, `JS_NewCFunction(jsCtx, js_Registry_create, "create", 0));`)
	assert.Contains(t, out, `JS_NewCFunction(jsCtx, js_Registry_getFacing, "getFacing", 1));`)
	assert.Contains(t, out, `JS_NewCFunction(jsCtx, js_Registry_addTransform, "addTransform", 2));`)
	assert.Contains(t, out, `JS_SetPropertyStr(jsCtx, global, "Registry", registryObj);`)
}

func TestRenderDeterministic(t *testing.T) {
	assert.Equal(t, render(t), render(t))
}
