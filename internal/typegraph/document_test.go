package typegraph_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	eventbus "github.com/hanpama/typegraph/internal/eventbus"
	events "github.com/hanpama/typegraph/internal/events"
	"github.com/hanpama/typegraph/internal/typegraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImplementsIsOrderIndependent(t *testing.T) {
	for _, tc := range []struct {
		name string
		sdl  string
	}{
		{
			name: "interface declared after implementer",
			sdl: `type Dog implements Pet { id: ID! name: String }
type Cat implements Pet { id: ID! }
interface Pet { id: ID! }`,
		},
		{
			name: "interface declared first",
			sdl: `interface Pet { id: ID! }
type Dog implements Pet { id: ID! name: String }
type Cat implements Pet { id: ID! }`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := mustBuild(t, tc.sdl)
			pet := mustObject(t, s, "Pet")
			if diff := cmp.Diff([]string{"Dog", "Cat"}, refinementNames(s, pet)); diff != "" {
				t.Errorf("refinements mismatch (-want +got):\n%s", diff)
			}
			assert.Empty(t, mustObject(t, s, "Dog").ValidRefinements)
		})
	}
}

func TestMultipleInterfaces(t *testing.T) {
	s := mustBuild(t, `type User implements Node & Actor { id: ID! }
interface Node { id: ID! }
interface Actor { login: String }`)

	assert.Equal(t, []string{"User"}, refinementNames(s, mustObject(t, s, "Node")))
	assert.Equal(t, []string{"User"}, refinementNames(s, mustObject(t, s, "Actor")))
}

func TestImplementsUndefinedType(t *testing.T) {
	s := typegraph.New()
	_, err := process(s, `type Dog implements Animal { id: ID! }`)

	te := requireKind(t, err, typegraph.KindIsographObjectTypeNameNotDefined)
	assert.Equal(t, testFile, te.Location.File)
	assert.Equal(t, 1, te.Location.Line)
	assert.Equal(t, `Type "Animal" is never defined.`, te.Message)

	// Pass-one work is not rolled back.
	_, ok := s.LookupObject("Dog")
	assert.True(t, ok)
}

func TestImplementsUndefinedTypeSuggestsName(t *testing.T) {
	_, err := process(typegraph.New(), `interface Pet { id: ID! }
type Dog implements Pett { id: ID! }`)

	te := requireKind(t, err, typegraph.KindIsographObjectTypeNameNotDefined)
	assert.Equal(t, `Type "Pett" is never defined. Did you mean "Pet"?`, te.Message)
	assert.Equal(t, 2, te.Location.Line)
}

func TestImplementsScalar(t *testing.T) {
	_, err := process(typegraph.New(), `type Dog implements Pet { id: ID! }

scalar Pet`)

	te := requireKind(t, err, typegraph.KindIsographObjectTypeNameIsScalar)
	assert.Equal(t, 3, te.Location.Line, "error points at the scalar")
	assert.Contains(t, te.Message, `"Dog" attempted to implement "Pet"`)
}

func TestImplementsBuiltinScalar(t *testing.T) {
	_, err := process(typegraph.New(), `type Dog implements String { id: ID! }`)

	te := requireKind(t, err, typegraph.KindIsographObjectTypeNameIsScalar)
	assert.True(t, te.Location.Generated)
}

func TestFailedSecondPassCommitsNothing(t *testing.T) {
	s := typegraph.New()
	_, err := process(s, `type A implements I { id: ID! }
type B implements Missing { id: ID! }
interface I { id: ID! }`)

	requireKind(t, err, typegraph.KindIsographObjectTypeNameNotDefined)
	assert.Empty(t, mustObject(t, s, "I").ValidRefinements)
}

func TestDuplicateTypeDefinition(t *testing.T) {
	for _, tc := range []struct {
		name    string
		sdl     string
		message string
	}{
		{
			name:    "object twice",
			sdl:     "type A { x: Int }\ntype A { y: Int }",
			message: `Duplicate type definition (object) named "A"`,
		},
		{
			name:    "interface over object",
			sdl:     "type A { x: Int }\ninterface A { y: Int }",
			message: `Duplicate type definition (interface) named "A"`,
		},
		{
			name:    "scalar over object",
			sdl:     "type A { x: Int }\nscalar A",
			message: `Duplicate type definition (scalar) named "A"`,
		},
		{
			name:    "built-in scalar",
			sdl:     "scalar String",
			message: `Duplicate type definition (scalar) named "String"`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := process(typegraph.New(), tc.sdl)
			te := requireKind(t, err, typegraph.KindDuplicateTypeDefinition)
			assert.Equal(t, tc.message, te.Message)
		})
	}
}

func TestDuplicateTypeLeavesFirstDefinition(t *testing.T) {
	s := typegraph.New()
	_, err := process(s, "type A { x: Int }\ntype A { y: Int }")
	require.Error(t, err)

	assert.Len(t, s.Objects(), 1)
	assert.Equal(t, []string{"x", "__typename"}, fieldNames(s, mustObject(t, s, "A")))
	assert.Len(t, s.ServerFields(), 2)
}

func TestRootTypes(t *testing.T) {
	s := typegraph.New()
	out, err := process(s, `type Query { me: User }
type Mutation { rename(name: String!): User }
type User { id: ID! }`)
	require.NoError(t, err)

	mutation := mustObject(t, s, "Mutation")
	require.NotNil(t, out.MutationID)
	assert.Equal(t, mutation.ID, *out.MutationID)

	id, ok := s.MutationType()
	require.True(t, ok)
	assert.Equal(t, mutation.ID, id)

	id, ok = s.QueryType()
	require.True(t, ok)
	assert.Equal(t, mustObject(t, s, "Query").ID, id)
}

func TestNoMutationRoot(t *testing.T) {
	out, err := process(typegraph.New(), `type Query { x: Int }`)
	require.NoError(t, err)
	assert.Nil(t, out.MutationID)
}

func TestDefinitionKinds(t *testing.T) {
	s := mustBuild(t, `enum Color { RED GREEN }
scalar DateTime
union Animal = Dog | Cat
type Dog { id: ID! }
type Cat { id: ID! }
input Filter { id: String, name: String }
directive @cached on OBJECT
`)

	for _, name := range []string{"Color", "DateTime"} {
		id, ok := s.Lookup(name)
		require.True(t, ok)
		sid, ok := id.AsScalar()
		require.True(t, ok, "%s should be a scalar", name)
		assert.Equal(t, "string", s.Scalar(sid).TargetName)
	}

	animal := mustObject(t, s, "Animal")
	assert.Equal(t, typegraph.ObjectKindUnion, animal.Kind)
	assert.Equal(t, []string{"__typename"}, fieldNames(s, animal))

	filter := mustObject(t, s, "Filter")
	assert.Equal(t, typegraph.ObjectKindInput, filter.Kind)
	assert.Nil(t, filter.IDField, "inputs never have an identifier field")
	assert.Empty(t, filter.Resolvers)

	_, ok := s.Lookup("cached")
	assert.False(t, ok, "directive definitions are ignored")
}

func TestExtensionInBaseDocumentIsRejected(t *testing.T) {
	_, err := process(typegraph.New(), "type A { x: Int }\nextend type A @deprecated")
	requireKind(t, err, typegraph.KindUnsupportedTypeExtension)
}

func TestDocumentEvents(t *testing.T) {
	eventbus.Use(eventbus.New())
	t.Cleanup(func() { eventbus.Use(nil) })

	var starts []events.DocumentStart
	var finishes []events.DocumentFinish
	eventbus.Subscribe(func(_ context.Context, e events.DocumentStart) { starts = append(starts, e) })
	eventbus.Subscribe(func(_ context.Context, e events.DocumentFinish) { finishes = append(finishes, e) })

	s := typegraph.New()
	_, err := process(s, "type A { x: Int }\ntype B { y: Int }")
	require.NoError(t, err)
	_, err = process(s, "type A { x: Int }")
	require.Error(t, err)

	require.Len(t, starts, 2)
	require.Len(t, finishes, 2)
	assert.Equal(t, events.DocumentStart{Name: testFile, Kind: events.DocumentKindBase, Definitions: 2}, starts[0])
	assert.NoError(t, finishes[0].Err)
	assert.True(t, typegraph.IsKind(finishes[1].Err, typegraph.KindDuplicateTypeDefinition))
}

func TestDocumentLogLinesCarryCallID(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	s := typegraph.New(typegraph.WithLogger(logger))

	_, err := process(s, "type A { x: Int }")
	require.NoError(t, err)

	out := buf.String()
	assert.Regexp(t, `processing document .*call=[0-9a-f]{16}`, out)
	assert.Regexp(t, `processed document .*call=[0-9a-f]{16}`, out)
}
