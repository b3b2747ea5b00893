package typegraph_test

import (
	"context"
	"testing"

	language "github.com/hanpama/typegraph/internal/language"
	"github.com/hanpama/typegraph/internal/typegraph"
	"github.com/stretchr/testify/require"
)

const testFile = "schema.graphql"

func process(s *typegraph.Schema, sdl string) (*typegraph.DocumentOutcome, error) {
	doc, err := language.ParseSchema(testFile, sdl)
	if err != nil {
		return nil, err
	}
	return s.ProcessDocument(context.Background(), testFile, doc)
}

func processExtension(s *typegraph.Schema, name, sdl string) (*typegraph.DocumentOutcome, error) {
	doc, err := language.ParseSchema(name, sdl)
	if err != nil {
		return nil, err
	}
	return s.ProcessExtensionDocument(context.Background(), name, doc)
}

func mustBuild(t *testing.T, sdl string, opts ...typegraph.Option) *typegraph.Schema {
	t.Helper()
	s := typegraph.New(opts...)
	_, err := process(s, sdl)
	require.NoError(t, err)
	return s
}

func mustObject(t *testing.T, s *typegraph.Schema, name string) *typegraph.SchemaObject {
	t.Helper()
	obj, ok := s.LookupObject(name)
	require.True(t, ok, "object %s not registered", name)
	return obj
}

func requireKind(t *testing.T, err error, kind typegraph.ErrorKind) *typegraph.Error {
	t.Helper()
	require.Error(t, err)
	var te *typegraph.Error
	require.ErrorAs(t, err, &te)
	require.Equal(t, kind, te.Kind, "unexpected error: %v", err)
	return te
}

func refinementNames(s *typegraph.Schema, obj *typegraph.SchemaObject) []string {
	var names []string
	for _, r := range obj.ValidRefinements {
		names = append(names, s.Object(r.Target).Name)
	}
	return names
}

func fieldNames(s *typegraph.Schema, obj *typegraph.SchemaObject) []string {
	var names []string
	for _, id := range obj.ServerFields {
		names = append(names, s.ServerField(id).Name)
	}
	return names
}
