package gogen

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"
	"github.com/hanpama/typegraph/internal/typegraph"
)

// Generate builds a Go file declaring one string type per user scalar and
// one struct per object, in registration order.
func Generate(s *typegraph.Schema, pkg string) (*jen.File, error) {
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by typegraph. DO NOT EDIT.")

	for _, sc := range s.Scalars() {
		if typegraph.IsBuiltinScalar(sc.Name) {
			continue
		}
		f.Add(genDescription(sc.Description)).Type().Id(sc.Name).String()
		f.Line()
	}
	for _, obj := range s.Objects() {
		decl, err := genObject(s, obj)
		if err != nil {
			return nil, err
		}
		f.Add(genDescription(obj.Description)).Add(decl)
		f.Line()
	}
	return f, nil
}

// Render writes the generated file to w.
func Render(w io.Writer, s *typegraph.Schema, pkg string) error {
	f, err := Generate(s, pkg)
	if err != nil {
		return err
	}
	if err := f.Render(w); err != nil {
		return fmt.Errorf("rendering go package %s: %w", pkg, err)
	}
	return nil
}

func genDescription(s string) jen.Code {
	if s == "" {
		return jen.Null()
	}
	return jen.Comment(s).Line()
}

func genObject(s *typegraph.Schema, obj *typegraph.SchemaObject) (*jen.Statement, error) {
	fields := make([]jen.Code, 0, len(obj.ServerFields))
	for _, id := range obj.ServerFields {
		field := s.ServerField(id)
		jsonTag := field.Name
		if field.Type.IsNullable() {
			jsonTag += ",omitempty"
		}
		typ, err := genType(s, field.Type)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", obj.Name, field.Name, err)
		}
		tag := jen.Tag(map[string]string{"json": jsonTag})
		fields = append(fields,
			jen.Add(genDescription(field.Description)).Id(fieldName(field.Name)).Add(typ).Add(tag),
		)
	}
	return jen.Type().Id(obj.Name).Struct(fields...), nil
}

func genType(s *typegraph.Schema, t *typegraph.TypeRef) (jen.Code, error) {
	var prefix []jen.Code

	toplevel := true
	for {
		nonNull := t.Kind == typegraph.TypeRefKindNonNull
		if nonNull {
			t = t.OfType
		}
		if t.Kind != typegraph.TypeRefKindList {
			return genNamed(s, t.Named, prefix, nonNull, toplevel)
		}
		prefix = append(prefix, jen.Index())
		toplevel = false
		t = t.OfType
	}
}

func genNamed(s *typegraph.Schema, name string, prefix []jen.Code, nonNull, toplevel bool) (jen.Code, error) {
	var gen jen.Code
	isObject := false
	switch name {
	case "Int":
		gen = jen.Int32()
	case "Float":
		gen = jen.Float64()
	case "String", "ID":
		gen = jen.String()
	case "Boolean":
		gen = jen.Bool()
	default:
		id, ok := s.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown type name %q", name)
		}
		_, isObject = id.AsObject()
		gen = jen.Id(name)
	}

	if !nonNull {
		prefix = append(prefix, jen.Op("*"))
	} else if toplevel && isObject {
		// Required to deal with recursive types
		prefix = append(prefix, jen.Op("*"))
	}
	return jen.Add(prefix...).Add(gen), nil
}

// fieldName exports a schema field name: __typename becomes Typename and
// snake_case parts are joined in title case.
func fieldName(name string) string {
	var b strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(part[size:])
	}
	if b.Len() == 0 {
		return "X"
	}
	return b.String()
}
