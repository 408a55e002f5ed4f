package common_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/esengine/eht/internal/common"
)

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"transform", "Transform"},
		// C++ PascalCase names must pass through untouched.
		{"RigidBody", "RigidBody"},
		{"rigid_body", "RigidBody"},
		{"rigid-body", "RigidBody"},
		{"rigid body", "RigidBody"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, common.ToPascalCase(tt.in), "input %q", tt.in)
	}
}

func TestToCamelCase(t *testing.T) {
	assert.Equal(t, "rigidBody", common.ToCamelCase("rigid_body"))
	assert.Equal(t, "transform", common.ToCamelCase("Transform"))
	assert.Equal(t, "", common.ToCamelCase(""))
}

func TestSanitizeLeadingDigit(t *testing.T) {
	assert.Equal(t, "Num2D", common.SanitizeLeadingDigit("2D"))
	assert.Equal(t, "Opaque", common.SanitizeLeadingDigit("Opaque"))
	assert.Equal(t, "", common.SanitizeLeadingDigit(""))
}

func TestEngineInclude(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		prefix string
		want   string
	}{
		{
			name:   "bindings directory depth",
			path:   "src/esengine/ecs/components/Transform.hpp",
			prefix: "../",
			want:   `#include "../ecs/components/Transform.hpp"`,
		},
		{
			name:   "scripting bindings depth",
			path:   "src/esengine/ecs/components/Transform.hpp",
			prefix: "../../",
			want:   `#include "../../ecs/components/Transform.hpp"`,
		},
		{
			name:   "engine root nested in a longer path",
			path:   "/home/dev/engine/src/esengine/render/Camera.hpp",
			prefix: "../",
			want:   `#include "../render/Camera.hpp"`,
		},
		{
			name:   "path outside the engine tree passes through",
			path:   "extern/thing/Widget.hpp",
			prefix: "../",
			want:   `#include "extern/thing/Widget.hpp"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, common.EngineInclude(tt.path, tt.prefix))
		})
	}
}

func TestSortedSet(t *testing.T) {
	set := map[string]struct{}{
		"b.hpp": {},
		"a.hpp": {},
		"c.hpp": {},
	}
	assert.Equal(t, []string{"a.hpp", "b.hpp", "c.hpp"}, common.SortedSet(set))
	assert.Empty(t, common.SortedSet(nil))
}

func TestFileHeader(t *testing.T) {
	h := common.FileHeader("esengine.d.ts", "Engine TypeScript definitions")
	assert.True(t, strings.HasPrefix(h, "/**"))
	assert.Contains(t, h, "@file    esengine.d.ts")
	assert.Contains(t, h, "DO NOT EDIT")
	assert.Contains(t, h, common.GetVersion())
}
