// Package meta holds the schema extracted from annotated engine headers.
// A Schema is produced once per run by the scanner and consumed read-only
// by every generator backend.
package meta

import "fmt"

// Schema is the aggregate result of one scan: every enum and component
// discovered across all input roots, in root order.
type Schema struct {
	Enums      []Enum
	Components []Component
}

// EnumValue is a single enumerator. Value is the effective numeric value:
// the explicit literal when the header declares one, otherwise the positional
// continuation from the previous value (C++ rule).
type EnumValue struct {
	Name     string
	Value    int
	Explicit bool
}

// Enum represents an `ES_ENUM() enum class` declaration.
type Enum struct {
	Name       string
	Namespace  string
	Values     []EnumValue
	Underlying string // underlying integer type, "int" when unspecified
}

// QualifiedName returns the namespace-qualified C++ name.
func (e Enum) QualifiedName() string {
	if e.Namespace == "" {
		return e.Name
	}
	return e.Namespace + "::" + e.Name
}

// Property is an `ES_PROPERTY()` field: raw declared type plus the default
// value text, captured verbatim and never evaluated.
type Property struct {
	Name    string
	Type    string
	Default string
}

// Param is one (type, name) pair of a method parameter list.
type Param struct {
	Type string
	Name string
}

// Method is an `ES_METHOD(...)` member function.
type Method struct {
	Name       string
	ReturnType string
	Params     []Param
	Const      bool
	Static     bool
}

// Component represents an `ES_COMPONENT() struct/class` declaration.
// HeaderPath is the slash-normalized originating file, used only to compute
// include paths for generated code.
type Component struct {
	Name       string
	Namespace  string
	Properties []Property
	Methods    []Method
	HeaderPath string
}

// QualifiedName returns the namespace-qualified C++ name.
func (c Component) QualifiedName() string {
	if c.Namespace == "" {
		return c.Name
	}
	return c.Namespace + "::" + c.Name
}

// Component looks up a component by bare name.
func (s *Schema) Component(name string) (Component, bool) {
	for _, c := range s.Components {
		if c.Name == name {
			return c, true
		}
	}
	return Component{}, false
}

// CheckUnique verifies component names are unique across the whole schema.
// Colliding names would silently merge registry accessors in every backend,
// so a collision is a hard error.
func (s *Schema) CheckUnique() error {
	seen := make(map[string]string, len(s.Components))
	for _, c := range s.Components {
		if prev, ok := seen[c.Name]; ok {
			return fmt.Errorf("duplicate component %q declared in %s and %s", c.Name, prev, c.HeaderPath)
		}
		seen[c.Name] = c.HeaderPath
	}
	return nil
}
