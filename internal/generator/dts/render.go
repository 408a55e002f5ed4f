// Package dts renders the TypeScript declaration file for the scanned
// schema: math interfaces, enums, component interfaces and the Registry
// surface, as pure type signatures.
package dts

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/esengine/eht/internal/common"
	"github.com/esengine/eht/internal/meta"
	"github.com/esengine/eht/internal/resolve"
)

const declTemplate = `{{fileHeader}}
// =============================================================================
// Core Types
// =============================================================================

export type Entity = number;

// =============================================================================
// Math Types
// =============================================================================

export interface Vec2 { x: number; y: number; }
export interface Vec3 { x: number; y: number; z: number; }
export interface Vec4 { x: number; y: number; z: number; w: number; }
export interface UVec2 { x: number; y: number; }
export interface Quat { w: number; x: number; y: number; z: number; }
{{if .Schema.Enums}}
// =============================================================================
// Enums
// =============================================================================
{{range .Schema.Enums}}
export enum {{.Name}} {
{{- range .Values}}
    {{memberName .Name}} = {{.Value}},
{{- end}}
}
{{end}}{{end}}
// =============================================================================
// Components
// =============================================================================
{{range .Schema.Components}}
export interface {{.Name}} {
{{- range .Properties}}
    {{.Name}}: {{tsType .Type}};
{{- end}}
{{- range .Methods}}{{if not .Static}}
    {{methodSig .}}
{{- end}}{{end}}
}
{{end}}
// =============================================================================
// Registry
// =============================================================================

export interface Registry {
    create(): Entity;
    destroy(entity: Entity): void;
    valid(entity: Entity): boolean;
    entityCount(): number;
{{range .Schema.Components}}
    has{{accessor .Name}}(entity: Entity): boolean;
    get{{accessor .Name}}(entity: Entity): {{.Name}};
    add{{accessor .Name}}(entity: Entity, component: {{.Name}}): void;
    remove{{accessor .Name}}(entity: Entity): void;
{{end -}}
}

// =============================================================================
// Module
// =============================================================================

export interface ESEngineModule {
    Registry: new () => Registry;
{{- range .Schema.Components}}
    {{.Name}}: new () => {{.Name}};
{{- end}}
}

export default function createModule(): Promise<ESEngineModule>;
`

// Render produces esengine.d.ts. Pure function of (schema, resolver);
// identical inputs yield byte-identical output.
func Render(schema *meta.Schema, res *resolve.Resolver) (string, error) {
	funcMap := template.FuncMap{
		"fileHeader": func() string {
			return common.FileHeader("esengine.d.ts", "Engine TypeScript definitions")
		},
		"memberName": common.SanitizeLeadingDigit,
		"tsType":     res.TSType,
		"accessor":   common.ToPascalCase,
		"methodSig":  func(m meta.Method) string { return methodSig(res, m) },
	}
	tmpl, err := template.New("dts").Funcs(funcMap).Parse(declTemplate)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	var b strings.Builder
	data := struct{ Schema *meta.Schema }{Schema: schema}
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return b.String(), nil
}

func methodSig(res *resolve.Resolver, m meta.Method) string {
	params := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		params = append(params, fmt.Sprintf("%s: %s", p.Name, res.TSType(p.Type)))
	}
	return fmt.Sprintf("%s(%s): %s;", m.Name, strings.Join(params, ", "), res.TSType(m.ReturnType))
}
