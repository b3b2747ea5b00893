package protoreg_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	language "github.com/hanpama/typegraph/internal/language"
	"github.com/hanpama/typegraph/internal/protoreg"
	"github.com/hanpama/typegraph/internal/typegraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protoreflect"
)

const testSchema = `
"A registered user."
type User {
  id: ID!
  "Shown in the profile."
  displayName: String
  age: Int!
  score: Float
  active: Boolean
  role: Role!
  joined: DateTime
  friends: [User!]!
  tags: [[String]]
}
enum Role { ADMIN MEMBER }
scalar DateTime
input UserFilter { name_prefix: String }
`

func buildTestRegistry(t *testing.T) *protoreg.Registry {
	t.Helper()
	s := typegraph.New()
	_, err := s.ProcessDocument(context.Background(), "schema.graphql", language.MustParseSchema("schema.graphql", testSchema))
	require.NoError(t, err)

	reg, err := protoreg.Build(s, "acme.types")
	require.NoError(t, err)
	return reg
}

func TestBuildFile(t *testing.T) {
	reg := buildTestRegistry(t)

	files := reg.GetAllFiles()
	require.Len(t, files, 1)
	fd := files[0]
	assert.Equal(t, "acme/types/types.proto", fd.Path())
	assert.Equal(t, protoreflect.FullName("acme.types"), fd.Package())
	assert.Equal(t, protoreflect.Proto3, fd.Syntax())

	var names []string
	for i := 0; i < fd.Messages().Len(); i++ {
		names = append(names, string(fd.Messages().Get(i).Name()))
	}
	assert.Equal(t, []string{"User", "UserFilter"}, names)
}

func TestGetFieldDescriptor(t *testing.T) {
	reg := buildTestRegistry(t)

	tests := []struct {
		name        string
		objectType  string
		field       string
		shouldExist bool
		fieldName   string // expected proto field name
		kind        protoreflect.Kind
		cardinality protoreflect.Cardinality
		optional    bool
	}{
		{
			name:        "User id field",
			objectType:  "User",
			field:       "id",
			shouldExist: true,
			fieldName:   "id",
			kind:        protoreflect.StringKind,
			cardinality: protoreflect.Optional,
		},
		{
			name:        "nullable camelCase field",
			objectType:  "User",
			field:       "displayName",
			shouldExist: true,
			fieldName:   "display_name",
			kind:        protoreflect.StringKind,
			cardinality: protoreflect.Optional,
			optional:    true,
		},
		{
			name:        "Int maps to int32",
			objectType:  "User",
			field:       "age",
			shouldExist: true,
			fieldName:   "age",
			kind:        protoreflect.Int32Kind,
			cardinality: protoreflect.Optional,
		},
		{
			name:        "Float maps to double",
			objectType:  "User",
			field:       "score",
			shouldExist: true,
			fieldName:   "score",
			kind:        protoreflect.DoubleKind,
			cardinality: protoreflect.Optional,
			optional:    true,
		},
		{
			name:        "Boolean maps to bool",
			objectType:  "User",
			field:       "active",
			shouldExist: true,
			fieldName:   "active",
			kind:        protoreflect.BoolKind,
			cardinality: protoreflect.Optional,
			optional:    true,
		},
		{
			name:        "enum maps to string",
			objectType:  "User",
			field:       "role",
			shouldExist: true,
			fieldName:   "role",
			kind:        protoreflect.StringKind,
			cardinality: protoreflect.Optional,
		},
		{
			name:        "custom scalar maps to string",
			objectType:  "User",
			field:       "joined",
			shouldExist: true,
			fieldName:   "joined",
			kind:        protoreflect.StringKind,
			cardinality: protoreflect.Optional,
			optional:    true,
		},
		{
			name:        "list of objects",
			objectType:  "User",
			field:       "friends",
			shouldExist: true,
			fieldName:   "friends",
			kind:        protoreflect.MessageKind,
			cardinality: protoreflect.Repeated,
		},
		{
			name:        "nested list flattens",
			objectType:  "User",
			field:       "tags",
			shouldExist: true,
			fieldName:   "tags",
			kind:        protoreflect.StringKind,
			cardinality: protoreflect.Repeated,
		},
		{
			name:        "input object field",
			objectType:  "UserFilter",
			field:       "name_prefix",
			shouldExist: true,
			fieldName:   "name_prefix",
			kind:        protoreflect.StringKind,
			cardinality: protoreflect.Optional,
			optional:    true,
		},
		{
			name:       "typename is not a proto field",
			objectType: "User",
			field:      "__typename",
		},
		{
			name:       "unknown field",
			objectType: "User",
			field:      "nope",
		},
		{
			name:       "unknown type",
			objectType: "Nope",
			field:      "id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := reg.GetFieldDescriptor(tt.objectType, tt.field)
			if !tt.shouldExist {
				assert.Nil(t, desc)
				return
			}
			require.NotNil(t, desc)
			assert.Equal(t, tt.fieldName, string(desc.Name()))
			assert.Equal(t, tt.kind, desc.Kind())
			assert.Equal(t, tt.cardinality, desc.Cardinality())
			assert.Equal(t, tt.optional, desc.HasOptionalKeyword())
			assert.False(t, desc.Number() >= 19000 && desc.Number() <= 19999, "reserved number %d", desc.Number())
		})
	}
}

func TestFieldNumbersAreStable(t *testing.T) {
	a := buildTestRegistry(t).GetFieldDescriptor("User", "displayName")
	b := buildTestRegistry(t).GetFieldDescriptor("User", "displayName")
	assert.Equal(t, a.Number(), b.Number())
}

func TestMessageDescriptor(t *testing.T) {
	reg := buildTestRegistry(t)

	user := reg.GetMessageDescriptor("User")
	require.NotNil(t, user)
	friends := user.Fields().ByName("friends")
	require.NotNil(t, friends)
	assert.Equal(t, user.FullName(), friends.Message().FullName())

	assert.Nil(t, reg.GetMessageDescriptor("Role"))
}

func TestPrintAndRender(t *testing.T) {
	reg := buildTestRegistry(t)

	var buf bytes.Buffer
	require.NoError(t, protoreg.Print(reg, "acme/types/types.proto", &buf))
	out := buf.String()
	assert.Contains(t, out, `syntax = "proto3";`)
	assert.Contains(t, out, "package acme.types;")
	assert.Contains(t, out, "// A registered user.")
	assert.Contains(t, out, "message User {")
	assert.Contains(t, out, "// Shown in the profile.")
	assert.Regexp(t, `optional string display_name = \d+;`, out)
	assert.Regexp(t, `\n  string id = \d+;`, out)

	dir := t.TempDir()
	require.NoError(t, protoreg.Render(reg, dir))
	written, err := os.ReadFile(filepath.Join(dir, "acme", "types", "types.proto"))
	require.NoError(t, err)
	assert.Equal(t, out, string(written))
}

func TestBuildUnknownTypeName(t *testing.T) {
	s := typegraph.New()
	_, err := s.ProcessDocument(context.Background(), "schema.graphql", language.MustParseSchema("schema.graphql", `type User { pet: Ghost }`))
	require.NoError(t, err)

	_, err = protoreg.Build(s, "acme.types")
	assert.EqualError(t, err, `User.pet: unknown type name "Ghost"`)
}
