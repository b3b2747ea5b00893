package language

import (
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// ParseSchema parses a type-system document. Type extensions end up in
// SchemaDocument.Extensions; name becomes the source name of every position.
func ParseSchema(name, source string) (*SchemaDocument, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: name, Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// MustParseSchema is ParseSchema for fixtures known to be valid.
func MustParseSchema(name, source string) *SchemaDocument {
	doc, err := ParseSchema(name, source)
	if err != nil {
		panic(err)
	}
	return doc
}
