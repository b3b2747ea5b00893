package protoreg

import (
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"
)

func nameProtoMessage(graphQLName string) protoreflect.Name {
	return protoreflect.Name(graphQLName)
}

func nameProtoField(graphQLName string) protoreflect.Name {
	return protoreflect.Name(snakeCase(graphQLName))
}

// snakeCase converts a string from CamelCase or PascalCase to snake_case.
func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
