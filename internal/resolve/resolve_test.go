package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esengine/eht/internal/meta"
	"github.com/esengine/eht/internal/resolve"
)

func testResolver() *resolve.Resolver {
	return resolve.New(&meta.Schema{
		Enums: []meta.Enum{
			{Name: "Direction", Namespace: "esengine::ecs", Underlying: "u8"},
		},
	})
}

func TestClassify(t *testing.T) {
	res := testResolver()

	tests := []struct {
		raw  string
		want resolve.Category
	}{
		{"f32", resolve.Primitive},
		{"bool", resolve.Primitive},
		{"std::string", resolve.Primitive},
		{"Entity", resolve.Primitive},
		{"const f32&", resolve.Primitive},
		{"glm::vec3", resolve.ValueMath},
		{"glm::uvec2", resolve.ValueMath},
		{"const glm::quat&", resolve.ValueMath},
		{"Direction", resolve.EnumRef},
		{"esengine::ecs::Direction", resolve.EnumRef},
		{"TextureHandle", resolve.Handle},
		{"resource::Ref<Mesh>", resolve.Handle},
		{"glm::mat4", resolve.Unsupported},
		{"std::vector<u32>", resolve.Unsupported},
		{"std::function<void()>", resolve.Unsupported},
		{"SomeUnknownType", resolve.Unsupported},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, res.Classify(tt.raw))
		})
	}
}

func TestStripQualifiers(t *testing.T) {
	assert.Equal(t, "glm::vec3", resolve.StripQualifiers("const glm::vec3&"))
	assert.Equal(t, "f32", resolve.StripQualifiers("f32"))
	assert.Equal(t, "std::string", resolve.StripQualifiers("const std::string &"))
}

func TestEnumFor(t *testing.T) {
	res := testResolver()

	e, ok := res.EnumFor("Direction")
	require.True(t, ok)
	assert.Equal(t, "esengine::ecs::Direction", e.QualifiedName())

	e, ok = res.EnumFor("esengine::ecs::Direction")
	require.True(t, ok)
	assert.Equal(t, "Direction", e.Name)

	_, ok = res.EnumFor("BlendMode")
	assert.False(t, ok)
}

func TestTSType(t *testing.T) {
	res := testResolver()

	tests := []struct {
		raw  string
		want string
	}{
		{"f32", "number"},
		{"bool", "boolean"},
		{"std::string", "string"},
		{"Entity", "Entity"},
		{"void", "void"},
		{"glm::vec3", "Vec3"},
		{"glm::uvec2", "UVec2"},
		// Enums and handles cross the boundary as plain numbers.
		{"Direction", "number"},
		{"TextureHandle", "number"},
		{"std::vector<u32>", "any"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, res.TSType(tt.raw))
		})
	}
}

func TestNeedsBridge(t *testing.T) {
	res := testResolver()

	flat := meta.Component{Name: "Transform", Properties: []meta.Property{
		{Name: "position", Type: "glm::vec3"},
		{Name: "speed", Type: "f32"},
	}}
	assert.False(t, res.NeedsBridge(flat))

	withEnum := meta.Component{Name: "Facing", Properties: []meta.Property{
		{Name: "dir", Type: "Direction"},
	}}
	assert.True(t, res.NeedsBridge(withEnum))

	withHandle := meta.Component{Name: "Sprite", Properties: []meta.Property{
		{Name: "texture", Type: "TextureHandle"},
	}}
	assert.True(t, res.NeedsBridge(withHandle))

	// Unsupported fields alone do not force a bridge; they are just skipped.
	withVector := meta.Component{Name: "Path", Properties: []meta.Property{
		{Name: "points", Type: "std::vector<glm::vec3>"},
	}}
	assert.False(t, res.NeedsBridge(withVector))
}

func TestMathTypeNames(t *testing.T) {
	assert.Equal(t, []string{"glm::vec2", "glm::vec3", "glm::vec4", "glm::uvec2", "glm::quat"}, resolve.MathTypeNames())

	name, ok := resolve.MathTSName("const glm::quat&")
	require.True(t, ok)
	assert.Equal(t, "Quat", name)
}
