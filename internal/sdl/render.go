package sdl

import (
	"sort"
	"strings"

	language "github.com/hanpama/typegraph/internal/language"
	"github.com/hanpama/typegraph/internal/typegraph"
)

// Render produces SDL from a finished schema.
// Deterministic ordering: type names sorted lexicographically, fields in
// declaration order. Structural fields are left out; computed fields and
// refinements are listed as comments.
func Render(s *typegraph.Schema) string {
	if s == nil {
		return ""
	}
	var b strings.Builder

	// Collect and sort type names, excluding built-in scalars
	typeNames := make([]string, 0, len(s.Scalars())+len(s.Objects()))
	for _, sc := range s.Scalars() {
		if !typegraph.IsBuiltinScalar(sc.Name) {
			typeNames = append(typeNames, sc.Name)
		}
	}
	for _, obj := range s.Objects() {
		typeNames = append(typeNames, obj.Name)
	}
	sort.Strings(typeNames)

	for _, name := range typeNames {
		id, _ := s.Lookup(name)
		if scalarID, ok := id.AsScalar(); ok {
			renderScalar(&b, s.Scalar(scalarID))
			continue
		}
		objectID, _ := id.AsObject()
		obj := s.Object(objectID)
		if obj.Kind == typegraph.ObjectKindUnion {
			renderUnion(&b, s, obj)
		} else {
			renderObject(&b, s, obj)
		}
	}

	out := strings.TrimRight(b.String(), "\n") + "\n"
	return out
}

// ----- render helpers -----

func renderDescription(b *strings.Builder, desc, indent string) {
	if desc == "" {
		return
	}
	b.WriteString(indent)
	b.WriteString("\"\"\"\n")
	// Escape quotes in description
	escaped := strings.ReplaceAll(desc, "\"", "\\\"")
	for _, line := range strings.Split(escaped, "\n") {
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(indent)
	b.WriteString("\"\"\"\n")
}

func renderScalar(b *strings.Builder, sc *typegraph.SchemaScalar) {
	renderDescription(b, sc.Description, "")
	b.WriteString("scalar ")
	b.WriteString(sc.Name)
	b.WriteString("\n\n")
}

func renderUnion(b *strings.Builder, s *typegraph.Schema, obj *typegraph.SchemaObject) {
	renderDescription(b, obj.Description, "")
	b.WriteString("union ")
	b.WriteString(obj.Name)
	renderDirectives(b, obj.Directives)
	b.WriteString("\n")
	renderRefinements(b, s, obj, "")
	b.WriteString("\n")
}

func renderObject(b *strings.Builder, s *typegraph.Schema, obj *typegraph.SchemaObject) {
	renderDescription(b, obj.Description, "")
	b.WriteString(keyword(obj.Kind))
	b.WriteString(" ")
	b.WriteString(obj.Name)
	renderDirectives(b, obj.Directives)
	b.WriteString(" {\n")
	renderRefinements(b, s, obj, "  ")
	for _, id := range obj.Resolvers {
		renderResolver(b, s.Resolver(id))
	}
	for _, id := range obj.ServerFields {
		field := s.ServerField(id)
		if field.Location.Generated {
			continue
		}
		renderField(b, field)
	}
	b.WriteString("}\n\n")
}

func keyword(kind typegraph.ObjectKind) string {
	switch kind {
	case typegraph.ObjectKindInterface:
		return "interface"
	case typegraph.ObjectKindInput:
		return "input"
	default:
		return "type"
	}
}

func renderRefinements(b *strings.Builder, s *typegraph.Schema, obj *typegraph.SchemaObject, indent string) {
	if len(obj.ValidRefinements) == 0 {
		return
	}
	names := make([]string, len(obj.ValidRefinements))
	for i, r := range obj.ValidRefinements {
		names[i] = s.Object(r.Target).Name
	}
	b.WriteString(indent)
	b.WriteString("# refines to: ")
	b.WriteString(strings.Join(names, ", "))
	b.WriteString("\n")
}

func renderResolver(b *strings.Builder, r *typegraph.Resolver) {
	b.WriteString("  # ")
	switch r.Variant {
	case typegraph.ResolverVariantRefetchField:
		b.WriteString("refetch")
	case typegraph.ResolverVariantMutationField:
		b.WriteString("mutation field " + r.Name)
	default:
		b.WriteString("computed field " + r.Name)
	}
	if len(r.SelectionSet) > 0 {
		names := make([]string, len(r.SelectionSet))
		for i, sel := range r.SelectionSet {
			names[i] = sel.Name
		}
		b.WriteString(": ")
		b.WriteString(strings.Join(names, ", "))
	}
	b.WriteString("\n")
}

func renderField(b *strings.Builder, field *typegraph.ServerField) {
	renderDescription(b, field.Description, "  ")
	b.WriteString("  ")
	b.WriteString(field.Name)
	if len(field.Arguments) > 0 {
		b.WriteString("(")
		for i, arg := range field.Arguments {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(arg.Name)
			b.WriteString(": ")
			b.WriteString(arg.Type.String())
			if arg.DefaultValue != nil {
				b.WriteString(" = ")
				b.WriteString(arg.DefaultValue.String())
			}
		}
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(field.Type.String())
	b.WriteString("\n")
}

func renderDirectives(b *strings.Builder, directives language.DirectiveList) {
	for _, d := range directives {
		b.WriteString(" @")
		b.WriteString(d.Name)
		if len(d.Arguments) == 0 {
			continue
		}
		b.WriteString("(")
		for i, arg := range d.Arguments {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(arg.Name)
			b.WriteString(": ")
			b.WriteString(arg.Value.String())
		}
		b.WriteString(")")
	}
}
