package artifact

import (
	"sort"
	"strings"

	"github.com/hanpama/typegraph/internal/typegraph"
)

// maxObjectDepth bounds inline object expansion. Deeper objects print as
// unknown so cyclic graphs terminate.
const maxObjectDepth = 4

const unknownType = "unknown"

// FormatParameterType renders t as a TypeScript type for a parameter.
// Nullable positions accept both null and undefined.
func FormatParameterType(s *typegraph.Schema, t *typegraph.TypeRef) string {
	return formatParameterType(s, t, 0)
}

func formatParameterType(s *typegraph.Schema, t *typegraph.TypeRef, level int) string {
	switch t.Kind {
	case typegraph.TypeRefKindNamed:
		return formatNamed(s, t.Named, level) + " | null | void"
	case typegraph.TypeRefKindList:
		return "ReadonlyArray<" + formatNamed(s, t.OfType.NamedType(), level) + "> | null"
	case typegraph.TypeRefKindNonNull:
		inner := t.OfType
		if inner.Kind == typegraph.TypeRefKindList {
			return "ReadonlyArray<" + formatNamed(s, inner.OfType.NamedType(), level) + ">"
		}
		return formatNamed(s, inner.Named, level)
	default:
		return unknownType
	}
}

// formatNamed prints a scalar as its target name and expands an object
// inline, one line per server field sorted by name.
func formatNamed(s *typegraph.Schema, name string, level int) string {
	id, ok := s.Lookup(name)
	if !ok {
		return unknownType
	}
	if scalarID, ok := id.AsScalar(); ok {
		return s.Scalar(scalarID).TargetName
	}
	if level >= maxObjectDepth {
		return unknownType
	}
	objectID, _ := id.AsObject()
	obj := s.Object(objectID)

	names := make([]string, 0, len(obj.EncounteredFields))
	for fieldName, ref := range obj.EncounteredFields {
		if ref.Kind == typegraph.FieldRefServer {
			names = append(names, fieldName)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("{\n")
	for _, fieldName := range names {
		field := s.ServerField(obj.EncounteredFields[fieldName].Server)
		b.WriteString(indent(level + 1))
		b.WriteString("readonly ")
		b.WriteString(fieldName)
		if field.Type.IsNullable() {
			b.WriteString("?")
		}
		b.WriteString(": ")
		b.WriteString(formatFieldType(s, field.Type, level+1))
		b.WriteString(",\n")
	}
	b.WriteString(indent(level))
	b.WriteString("}")
	return b.String()
}

// formatFieldType prints the type of an object member. Unlike parameters,
// members are never undefined once present.
func formatFieldType(s *typegraph.Schema, t *typegraph.TypeRef, level int) string {
	if t.Kind == typegraph.TypeRefKindNonNull {
		return formatInner(s, t.OfType, level)
	}
	return "(" + formatInner(s, t, level) + " | null)"
}

func formatInner(s *typegraph.Schema, t *typegraph.TypeRef, level int) string {
	if t.Kind == typegraph.TypeRefKindList {
		return "ReadonlyArray<" + formatFieldType(s, t.OfType, level) + ">"
	}
	return formatNamed(s, t.Named, level)
}

func indent(level int) string { return strings.Repeat("  ", level) }

// TypeDeclarations renders one exported type alias per object, sorted by
// name.
func TypeDeclarations(s *typegraph.Schema) string {
	objects := append([]*typegraph.SchemaObject(nil), s.Objects()...)
	sort.Slice(objects, func(i, j int) bool { return objects[i].Name < objects[j].Name })

	var b strings.Builder
	for i, obj := range objects {
		if i > 0 {
			b.WriteString("\n")
		}
		if obj.Description != "" {
			b.WriteString("/** " + strings.ReplaceAll(obj.Description, "*/", "*\\/") + " */\n")
		}
		b.WriteString("export type " + obj.Name + " = ")
		b.WriteString(formatNamed(s, obj.Name, 0))
		b.WriteString(";\n")
	}
	return b.String()
}
