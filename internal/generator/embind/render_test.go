package embind_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esengine/eht/internal/generator/embind"
	"github.com/esengine/eht/internal/meta"
	"github.com/esengine/eht/internal/resolve"
)

func testSchema() *meta.Schema {
	return &meta.Schema{
		Enums: []meta.Enum{
			{
				Name:       "Direction",
				Namespace:  "esengine::ecs",
				Underlying: "u8",
				Values: []meta.EnumValue{
					{Name: "North", Value: 0},
					{Name: "South", Value: 10, Explicit: true},
				},
			},
		},
		Components: []meta.Component{
			{
				Name:      "Transform",
				Namespace: "esengine::ecs",
				Properties: []meta.Property{
					{Name: "position", Type: "glm::vec3"},
					{Name: "rotation", Type: "glm::quat"},
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
					{Name: "history", Type: "std::vector<u32>"},
				},
				HeaderPath: "src/esengine/ecs/components/Facing.hpp",
			},
		},
	}
}

func render(t *testing.T) string {
	t.Helper()
	schema := testSchema()
	out, err := embind.Render(schema, resolve.New(schema))
	require.NoError(t, err)
	return out
}

func TestRenderFrame(t *testing.T) {
	out := render(t)

	assert.True(t, strings.HasPrefix(out, "/**"))
	assert.Contains(t, out, "#ifdef ES_PLATFORM_WEB")
	assert.Contains(t, out, "#include <emscripten/bind.h>")
	assert.Contains(t, out, `value_object<glm::vec3>("Vec3")`)
	assert.Contains(t, out, "#endif  // ES_PLATFORM_WEB")
}

func TestRenderIncludesSorted(t *testing.T) {
	out := render(t)

	facing := strings.Index(out, `#include "../ecs/components/Facing.hpp"`)
	transform := strings.Index(out, `#include "../ecs/components/Transform.hpp"`)
	require.GreaterOrEqual(t, facing, 0)
	require.GreaterOrEqual(t, transform, 0)
	assert.Less(t, facing, transform, "includes must be in sorted order")
}

func TestRenderEnumBindings(t *testing.T) {
	out := render(t)

	assert.Contains(t, out, `enum_<esengine::ecs::Direction>("Direction")`)
	assert.Contains(t, out, `.value("North", esengine::ecs::Direction::North)`)
	assert.Contains(t, out, `.value("South", esengine::ecs::Direction::South)`)
}

func TestRenderShadowRecord(t *testing.T) {
	out := render(t)

	// Facing carries enum and handle fields, so it binds via a shadow.
	assert.Contains(t, out, "struct FacingShadow {")
	assert.Contains(t, out, "    i32 dir;")
	assert.Contains(t, out, "    u32 icon;")
	assert.Contains(t, out, "    f32 angle;")
	// Unsupported fields are absent from the shadow entirely.
	assert.NotContains(t, out, "history")

	assert.Contains(t, out, "static FacingShadow toFacingShadow(const esengine::ecs::Facing& in)")
	assert.Contains(t, out, "out.dir = static_cast<i32>(in.dir);")
	assert.Contains(t, out, "out.icon = in.icon.id();")

	assert.Contains(t, out, "static esengine::ecs::Facing fromFacingShadow(const FacingShadow& in)")
	assert.Contains(t, out, "out.dir = static_cast<Direction>(in.dir);")
	assert.Contains(t, out, "out.icon = TextureHandle(in.icon);")

	// Transform is flat and needs no shadow.
	assert.NotContains(t, out, "TransformShadow")
}

func TestRenderComponentBindings(t *testing.T) {
	out := render(t)

	assert.Contains(t, out, `value_object<esengine::ecs::Transform>("Transform")`)
	assert.Contains(t, out, `.field("position", &esengine::ecs::Transform::position)`)

	// Bridged components bind the shadow under the real name.
	assert.Contains(t, out, `value_object<FacingShadow>("Facing")`)
	assert.Contains(t, out, `.field("dir", &FacingShadow::dir)`)
	assert.Contains(t, out, `.field("icon", &FacingShadow::icon)`)
}

func TestRenderRegistryBindings(t *testing.T) {
	out := render(t)

	assert.Contains(t, out, `class_<Registry>("Registry")`)
	assert.Contains(t, out, `.function("entityCount", &Registry::entityCount)`)
	assert.Contains(t, out, `.function("hasTransform", optional_override([](Registry& r, u32 e) {`)

	// Plain component accessors hand out references.
	assert.Contains(t, out, "-> esengine::ecs::Transform& {")
	assert.Contains(t, out, "allow_raw_pointers()")

	// Bridged accessors convert at the boundary.
	assert.Contains(t, out, "return toFacingShadow(r.get<esengine::ecs::Facing>(static_cast<Entity>(e)));")
	assert.Contains(t, out, "r.emplaceOrReplace<esengine::ecs::Facing>(static_cast<Entity>(e), fromFacingShadow(c));")

	assert.Contains(t, out, `.function("removeFacing", optional_override([](Registry& r, u32 e) {`)
}

func TestRenderDeterministic(t *testing.T) {
	assert.Equal(t, render(t), render(t))
}
