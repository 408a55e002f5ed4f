package quickjs

import (
	"fmt"

	"github.com/esengine/eht/internal/meta"
	"github.com/esengine/eht/internal/resolve"
)

// mathHelpers maps a canonical math type to its two conversion helpers.
var mathHelpers = map[string]struct{ from, to string }{
	"glm::vec2":  {"jsToVec2", "vec2ToJS"},
	"glm::vec3":  {"jsToVec3", "vec3ToJS"},
	"glm::vec4":  {"jsToVec4", "vec4ToJS"},
	"glm::uvec2": {"jsToUVec2", "uvec2ToJS"},
	"glm::quat":  {"jsToQuat", "quatToJS"},
}

// converter renders the marshalling statements for one property in each
// direction. get statements populate the result object from comp.<name>;
// set statements assign comp.<name> from the JSValue variable <name>Val.
// A nil entry in the table means the category has no converter in this
// backend and the emitters fall back to the loud TODO placeholder instead of
// silently dropping the field.
type converter struct {
	get func(p meta.Property, canon string) []string
	set func(p meta.Property, canon string) []string
}

// converters is the category-indexed descriptor table for this backend.
// Adding a category is a table edit, not a dispatch-site hunt.
var converters = map[resolve.Category]converter{
	resolve.Primitive: {get: primitiveGet, set: primitiveSet},
	resolve.ValueMath: {get: mathGet, set: mathSet},
	// EnumRef, Handle and Unsupported intentionally absent: raw enum and
	// handle fields have no scripting-side representation yet.
}

func primitiveGet(p meta.Property, canon string) []string {
	obj := func(expr string) []string {
		return []string{fmt.Sprintf(`    JS_SetPropertyStr(ctx, obj, "%s", %s);`, p.Name, expr)}
	}
	switch canon {
	case "bool":
		return obj(fmt.Sprintf("JS_NewBool(ctx, comp.%s)", p.Name))
	case "f32", "f64", "float", "double":
		return obj(fmt.Sprintf("JS_NewFloat64(ctx, comp.%s)", p.Name))
	case "i8", "i16", "i32", "int":
		return obj(fmt.Sprintf("JS_NewInt32(ctx, comp.%s)", p.Name))
	case "u8", "u16", "u32", "unsigned", "Entity":
		return obj(fmt.Sprintf("JS_NewUint32(ctx, comp.%s)", p.Name))
	case "i64", "u64", "size_t", "usize":
		return obj(fmt.Sprintf("JS_NewInt64(ctx, static_cast<int64_t>(comp.%s))", p.Name))
	case "std::string":
		return obj(fmt.Sprintf("JS_NewString(ctx, comp.%s.c_str())", p.Name))
	default:
		return nil
	}
}

func primitiveSet(p meta.Property, canon string) []string {
	v := p.Name + "Val"
	switch canon {
	case "bool":
		return []string{fmt.Sprintf("    comp.%s = JS_ToBool(ctx, %s) > 0;", p.Name, v)}
	case "f32", "float":
		return []string{
			fmt.Sprintf("    double d%s;", p.Name),
			fmt.Sprintf("    JS_ToFloat64(ctx, &d%s, %s);", p.Name, v),
			fmt.Sprintf("    comp.%s = static_cast<f32>(d%s);", p.Name, p.Name),
		}
	case "f64", "double":
		return []string{
			fmt.Sprintf("    double d%s;", p.Name),
			fmt.Sprintf("    JS_ToFloat64(ctx, &d%s, %s);", p.Name, v),
			fmt.Sprintf("    comp.%s = d%s;", p.Name, p.Name),
		}
	case "i8", "i16", "i32", "int":
		return []string{
			fmt.Sprintf("    i32 n%s;", p.Name),
			fmt.Sprintf("    JS_ToInt32(ctx, &n%s, %s);", p.Name, v),
			fmt.Sprintf("    comp.%s = static_cast<%s>(n%s);", p.Name, canon, p.Name),
		}
	case "u8", "u16", "u32", "unsigned", "Entity":
		return []string{
			fmt.Sprintf("    u32 n%s;", p.Name),
			fmt.Sprintf("    JS_ToUint32(ctx, &n%s, %s);", p.Name, v),
			fmt.Sprintf("    comp.%s = static_cast<%s>(n%s);", p.Name, canon, p.Name),
		}
	case "i64", "u64", "size_t", "usize":
		return []string{
			fmt.Sprintf("    int64_t n%s;", p.Name),
			fmt.Sprintf("    JS_ToInt64(ctx, &n%s, %s);", p.Name, v),
			fmt.Sprintf("    comp.%s = static_cast<%s>(n%s);", p.Name, canon, p.Name),
		}
	case "std::string":
		return []string{
			fmt.Sprintf("    const char* s%s = JS_ToCString(ctx, %s);", p.Name, v),
			fmt.Sprintf("    if (s%s) {", p.Name),
			fmt.Sprintf("        comp.%s = s%s;", p.Name, p.Name),
			fmt.Sprintf("        JS_FreeCString(ctx, s%s);", p.Name),
			"    }",
		}
	default:
		return nil
	}
}

func mathGet(p meta.Property, canon string) []string {
	h, ok := mathHelpers[canon]
	if !ok {
		return nil
	}
	return []string{fmt.Sprintf(`    JS_SetPropertyStr(ctx, obj, "%s", %s(ctx, comp.%s));`, p.Name, h.to, p.Name)}
}

func mathSet(p meta.Property, canon string) []string {
	h, ok := mathHelpers[canon]
	if !ok {
		return nil
	}
	return []string{fmt.Sprintf("    comp.%s = %s(ctx, %sVal);", p.Name, h.from, p.Name)}
}

// getStatements resolves one property to its getter marshalling lines, or
// the TODO placeholder when no converter covers its category.
func getStatements(res *resolve.Resolver, p meta.Property) []string {
	canon := resolve.StripQualifiers(p.Type)
	if conv, ok := converters[res.Classify(p.Type)]; ok {
		if lines := conv.get(p, canon); lines != nil {
			return lines
		}
	}
	return []string{fmt.Sprintf("    // TODO: Add converter for %s", p.Type)}
}

// setStatements resolves one property to its setter conversion lines, or the
// TODO placeholder.
func setStatements(res *resolve.Resolver, p meta.Property) []string {
	canon := resolve.StripQualifiers(p.Type)
	if conv, ok := converters[res.Classify(p.Type)]; ok {
		if lines := conv.set(p, canon); lines != nil {
			return lines
		}
	}
	return []string{fmt.Sprintf("    // TODO: Add converter for %s", p.Type)}
}
