package typegraph

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

const (
	queryTypeName    = "Query"
	mutationTypeName = "Mutation"
	idTypeName       = "ID"
	stringTypeName   = "String"
)

// Schema is the type registry: append-only arenas of scalars, objects,
// server fields and resolvers, plus a name index over scalars and objects.
//
// A Schema is owned by a single goroutine. Document processing calls must
// not overlap.
type Schema struct {
	scalars      []*SchemaScalar
	objects      []*SchemaObject
	fields       []*ServerField
	resolvers    []*Resolver
	definedTypes map[string]DefinedTypeID

	queryType    *ObjectID
	mutationType *ObjectID
	stringType   ScalarID
	idType       ScalarID

	opts *Options
}

// New returns a Schema holding only the built-in scalars.
func New(opts ...Option) *Schema {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	s := &Schema{
		definedTypes: make(map[string]DefinedTypeID),
		opts:         o,
	}
	for _, b := range builtinScalars {
		id, err := s.RegisterScalar(b.name, ScalarMetadata{
			Description: b.description,
			Location:    generatedLocation,
			TargetName:  b.targetName,
		})
		if err != nil {
			panic("registering built-in scalar " + b.name + ": " + err.Error())
		}
		switch b.name {
		case idTypeName:
			s.idType = id
		case stringTypeName:
			s.stringType = id
		}
	}
	return s
}

// ScalarMetadata describes a scalar at registration time.
type ScalarMetadata struct {
	Description string
	Location    Location
	TargetName  string
}

// RegisterScalar adds a scalar under name. A name already taken by any type
// yields DuplicateTypeDefinition and leaves the registry unchanged.
func (s *Schema) RegisterScalar(name string, md ScalarMetadata) (ScalarID, error) {
	if _, ok := s.definedTypes[name]; ok {
		return 0, errDuplicateTypeDefinition("scalar", name, md.Location)
	}
	id := ScalarID(len(s.scalars))
	s.scalars = append(s.scalars, &SchemaScalar{
		ID:          id,
		Name:        name,
		Description: md.Description,
		Location:    md.Location,
		TargetName:  md.TargetName,
	})
	s.definedTypes[name] = ScalarType(id)
	s.opts.Logger.Debug("registered scalar", "name", name, "id", id)
	return id, nil
}

// commitObject appends a fully built object with its fields and resolvers.
// The ids inside obj, fields and resolvers must have been allocated from the
// current arena lengths.
func (s *Schema) commitObject(obj *SchemaObject, fields []*ServerField, resolvers []*Resolver) {
	if obj.ID != ObjectID(len(s.objects)) {
		panic("object id does not match the next object slot")
	}
	if _, ok := s.definedTypes[obj.Name]; ok {
		panic("committing object under a name that is already registered: " + obj.Name)
	}
	s.objects = append(s.objects, obj)
	s.fields = append(s.fields, fields...)
	s.resolvers = append(s.resolvers, resolvers...)
	s.definedTypes[obj.Name] = ObjectType(obj.ID)
	s.opts.Logger.Debug("registered object", "name", obj.Name, "kind", obj.Kind, "id", obj.ID,
		"fields", len(fields), "resolvers", len(resolvers))
}

// Lookup resolves a type name.
func (s *Schema) Lookup(name string) (DefinedTypeID, bool) {
	id, ok := s.definedTypes[name]
	return id, ok
}

// LookupObject resolves a name that must refer to an object.
func (s *Schema) LookupObject(name string) (*SchemaObject, bool) {
	id, ok := s.definedTypes[name]
	if !ok {
		return nil, false
	}
	oid, ok := id.AsObject()
	if !ok {
		return nil, false
	}
	return s.objects[oid], true
}

// ResolveTypeRef resolves the named leaf of t.
func (s *Schema) ResolveTypeRef(t *TypeRef) (DefinedTypeID, bool) {
	return s.Lookup(t.NamedType())
}

// Object, Scalar, ServerField and Resolver index by ids previously returned
// by this Schema. Foreign ids panic.
func (s *Schema) Object(id ObjectID) *SchemaObject          { return s.objects[id] }
func (s *Schema) Scalar(id ScalarID) *SchemaScalar          { return s.scalars[id] }
func (s *Schema) ServerField(id ServerFieldID) *ServerField { return s.fields[id] }
func (s *Schema) Resolver(id ResolverID) *Resolver          { return s.resolvers[id] }

func (s *Schema) Objects() []*SchemaObject     { return s.objects }
func (s *Schema) Scalars() []*SchemaScalar     { return s.scalars }
func (s *Schema) ServerFields() []*ServerField { return s.fields }
func (s *Schema) Resolvers() []*Resolver       { return s.resolvers }

// QueryType returns the object registered under the name "Query".
func (s *Schema) QueryType() (ObjectID, bool) {
	if s.queryType == nil {
		return 0, false
	}
	return *s.queryType, true
}

// MutationType returns the object registered under the name "Mutation".
func (s *Schema) MutationType() (ObjectID, bool) {
	if s.mutationType == nil {
		return 0, false
	}
	return *s.mutationType, true
}

func (s *Schema) StringType() ScalarID { return s.stringType }
func (s *Schema) IDType() ScalarID     { return s.idType }

// suggestTypeName returns the registered type name closest to name, if one
// is within a small edit distance.
func (s *Schema) suggestTypeName(name string) string {
	const maxDistance = 2
	names := make([]string, 0, len(s.definedTypes))
	for n := range s.definedTypes {
		names = append(names, n)
	}
	sort.Strings(names)

	best, bestDistance := "", maxDistance+1
	for _, n := range names {
		if d := levenshtein.ComputeDistance(name, n); d < bestDistance {
			best, bestDistance = n, d
		}
	}
	return best
}

type builtinScalar struct {
	name        string
	description string
	targetName  string
}

var builtinScalars = []builtinScalar{
	{
		name:        idTypeName,
		description: "The ID scalar type represents a unique identifier, often used to refetch an object or as a key for caching.",
		targetName:  "string",
	},
	{
		name:        stringTypeName,
		description: "The String scalar type represents textual data, represented as UTF-8 character sequences.",
		targetName:  "string",
	},
	{
		name:        "Boolean",
		description: "The Boolean scalar type represents true or false.",
		targetName:  "boolean",
	},
	{
		name:        "Float",
		description: "The Float scalar type represents signed double-precision fractional values.",
		targetName:  "number",
	},
	{
		name:        "Int",
		description: "The Int scalar type represents non-fractional signed whole numeric values.",
		targetName:  "number",
	},
}

// IsBuiltinScalar reports whether name is one of the scalars every Schema
// starts with.
func IsBuiltinScalar(name string) bool {
	for _, b := range builtinScalars {
		if b.name == name {
			return true
		}
	}
	return false
}
