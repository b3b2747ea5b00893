package project_test

import (
	"context"
	"testing"

	"github.com/hanpama/typegraph/internal/project"
	"github.com/hanpama/typegraph/internal/typegraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMergesBaseSources(t *testing.T) {
	disc := project.NewInMemoryDiscovery([]project.InMemorySource{
		{Name: "a/pets.graphql", Content: `type Dog implements Node { id: ID! }`},
		{Name: "b/node.graphql", Content: `interface Node { id: ID! }`},
		{Name: "c/mutation.graphql", Content: `type Mutation { noop: Boolean }`},
	})

	proj, err := project.Build(context.Background(), disc)
	require.NoError(t, err)

	node, ok := proj.Schema.LookupObject("Node")
	require.True(t, ok)
	require.Len(t, node.ValidRefinements, 1)
	assert.Equal(t, "Dog", proj.Schema.Object(node.ValidRefinements[0].Target).Name)

	require.NotNil(t, proj.MutationID)
	assert.Equal(t, "Mutation", proj.Schema.Object(*proj.MutationID).Name)
	assert.Len(t, proj.Sources, 3)
}

func TestBuildAppliesExtensionsInOrder(t *testing.T) {
	disc := project.NewInMemoryDiscovery([]project.InMemorySource{
		{Name: "schema.graphql", Content: `type User { id: ID! }`},
		{Name: "ext/2.graphql", Role: project.RoleExtension, Content: `extend type User @second`},
		{Name: "ext/1.graphql", Role: project.RoleExtension, Content: `extend type User @first`},
	})

	proj, err := project.Build(context.Background(), disc)
	require.NoError(t, err)

	user, _ := proj.Schema.LookupObject("User")
	require.Len(t, user.Directives, 2)
	assert.Equal(t, "first", user.Directives[0].Name)
	assert.Equal(t, "second", user.Directives[1].Name)
}

func TestBuildErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		srcs []project.InMemorySource
		kind typegraph.ErrorKind
		file string
	}{
		{
			name: "duplicate across files",
			srcs: []project.InMemorySource{
				{Name: "a.graphql", Content: `type User { id: ID! }`},
				{Name: "b.graphql", Content: `type User { id: ID! }`},
			},
			kind: typegraph.KindDuplicateTypeDefinition,
			file: "b.graphql",
		},
		{
			name: "extension of unknown type",
			srcs: []project.InMemorySource{
				{Name: "a.graphql", Content: `type User { id: ID! }`},
				{Name: "ext.graphql", Role: project.RoleExtension, Content: `extend type Account @cached`},
			},
			kind: typegraph.KindExtendedTypeNotDefined,
			file: "ext.graphql",
		},
		{
			name: "undefined argument type",
			srcs: []project.InMemorySource{
				{Name: "a.graphql", Content: `type Query { users(filter: UserFilter): [User] }`},
				{Name: "b.graphql", Content: `type User { id: ID! }`},
			},
			kind: typegraph.KindIsographObjectTypeNameNotDefined,
			file: "a.graphql",
		},
		{
			name: "invalid expose field",
			srcs: []project.InMemorySource{
				{Name: "a.graphql", Content: `type User @exposeField(field: "f", path: "p") { id: ID! }`},
			},
			kind: typegraph.KindInvalidPrimaryDirectiveArgumentCount,
			file: "a.graphql",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := project.Build(context.Background(), project.NewInMemoryDiscovery(tc.srcs))
			var te *typegraph.Error
			require.ErrorAs(t, err, &te)
			assert.Equal(t, tc.kind, te.Kind)
			assert.Equal(t, tc.file, te.Location.File)
		})
	}
}

func TestBuildRejectsUndefinedFieldType(t *testing.T) {
	disc := project.NewInMemoryDiscovery([]project.InMemorySource{
		{Name: "user.graphql", Content: "type User {\n  id: ID!\n  pet: [Pett!]\n}"},
		{Name: "pet.graphql", Content: `type Pet { id: ID! }`},
	})

	_, err := project.Build(context.Background(), disc)
	var te *typegraph.Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, typegraph.KindIsographObjectTypeNameNotDefined, te.Kind)
	assert.Equal(t, `Type "Pett" is never defined. Did you mean "Pet"?`, te.Message)
	assert.Equal(t, "user.graphql", te.Location.File)
	assert.Equal(t, 3, te.Location.Line)
}

func TestBuildAcceptsFieldTypeFromExtensionDocument(t *testing.T) {
	disc := project.NewInMemoryDiscovery([]project.InMemorySource{
		{Name: "schema.graphql", Content: `type User { id: ID! settings: Settings }`},
		{Name: "ext.graphql", Role: project.RoleExtension, Content: `type Settings { theme: String }`},
	})

	_, err := project.Build(context.Background(), disc)
	require.NoError(t, err)
}

func TestBuildParseError(t *testing.T) {
	disc := project.NewInMemoryDiscovery([]project.InMemorySource{
		{Name: "broken.graphql", Content: `type User {`},
	})
	_, err := project.Build(context.Background(), disc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing broken.graphql")
}

func TestBuildPassesOptions(t *testing.T) {
	disc := project.NewInMemoryDiscovery([]project.InMemorySource{
		{Name: "schema.graphql", Content: `type User { id: String }`},
	})

	_, err := project.Build(context.Background(), disc)
	assert.True(t, typegraph.IsKind(err, typegraph.KindIDFieldMustBeNonNullIDType))

	proj, err := project.Build(context.Background(), disc, typegraph.WithInvalidIDType(typegraph.InvalidIDTypeIgnore))
	require.NoError(t, err)
	user, _ := proj.Schema.LookupObject("User")
	assert.NotNil(t, user.IDField)
}
