package typegraph

import (
	"fmt"
	"strings"

	language "github.com/hanpama/typegraph/internal/language"
)

// ScalarID indexes Schema scalars. Ids are handed out in registration order
// and never reused.
type ScalarID int

// ObjectID indexes Schema objects. Objects, interfaces, inputs and unions all
// share this namespace.
type ObjectID int

type ServerFieldID int

type ResolverID int

// DefinedTypeKind tags a DefinedTypeID.
type DefinedTypeKind uint8

const (
	DefinedScalar DefinedTypeKind = iota + 1
	DefinedObject
)

// DefinedTypeID is the result of looking up any type name: either a scalar
// or an object.
type DefinedTypeID struct {
	Kind DefinedTypeKind
	id   int
}

func ScalarType(id ScalarID) DefinedTypeID { return DefinedTypeID{Kind: DefinedScalar, id: int(id)} }
func ObjectType(id ObjectID) DefinedTypeID { return DefinedTypeID{Kind: DefinedObject, id: int(id)} }

// AsScalar returns the scalar id when d refers to a scalar.
func (d DefinedTypeID) AsScalar() (ScalarID, bool) {
	return ScalarID(d.id), d.Kind == DefinedScalar
}

// AsObject returns the object id when d refers to an object.
func (d DefinedTypeID) AsObject() (ObjectID, bool) {
	return ObjectID(d.id), d.Kind == DefinedObject
}

func (d DefinedTypeID) String() string {
	switch d.Kind {
	case DefinedScalar:
		return fmt.Sprintf("scalar#%d", d.id)
	case DefinedObject:
		return fmt.Sprintf("object#%d", d.id)
	default:
		return "unknown"
	}
}

// FieldRefKind tags a FieldRef.
type FieldRefKind uint8

const (
	FieldRefServer FieldRefKind = iota + 1
	FieldRefResolver
)

// FieldRef is an entry of an object's name index. A name resolves either to
// a server field or to a computed (resolver) field.
type FieldRef struct {
	Kind     FieldRefKind
	Server   ServerFieldID
	Resolver ResolverID
}

func serverFieldRef(id ServerFieldID) FieldRef { return FieldRef{Kind: FieldRefServer, Server: id} }
func resolverFieldRef(id ResolverID) FieldRef  { return FieldRef{Kind: FieldRefResolver, Resolver: id} }

// Location points into a schema source. Generated locations belong to
// entities synthesized by the engine.
type Location struct {
	File      string
	Line      int
	Column    int
	Generated bool
}

var generatedLocation = Location{Generated: true}

func locationOf(pos *language.Position) Location {
	if pos == nil {
		return Location{}
	}
	loc := Location{Line: pos.Line, Column: pos.Column}
	if pos.Src != nil {
		loc.File = pos.Src.Name
	}
	return loc
}

func (l Location) String() string {
	if l.Generated {
		return "<generated>"
	}
	if l.File == "" && l.Line == 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// TypeRef is a written type reference (e.g. String, [User!], ID!). The named
// leaf is resolved against the registry lazily, since it may name a type that
// is declared later in the batch.
type TypeRef struct {
	Kind   TypeRefKind
	OfType *TypeRef
	Named  string
}

type TypeRefKind string

const (
	TypeRefKindNamed   TypeRefKind = "NAMED"
	TypeRefKindList    TypeRefKind = "LIST"
	TypeRefKindNonNull TypeRefKind = "NON_NULL"
)

func NamedType(name string) *TypeRef  { return &TypeRef{Kind: TypeRefKindNamed, Named: name} }
func ListType(t *TypeRef) *TypeRef    { return &TypeRef{Kind: TypeRefKindList, OfType: t} }
func NonNullType(t *TypeRef) *TypeRef { return &TypeRef{Kind: TypeRefKindNonNull, OfType: t} }

func typeRefOf(node *language.Type) *TypeRef {
	if node == nil {
		return nil
	}
	var t *TypeRef
	if node.Elem != nil {
		t = ListType(typeRefOf(node.Elem))
	} else {
		t = NamedType(node.NamedType)
	}
	if node.NonNull {
		return NonNullType(t)
	}
	return t
}

// NamedType returns the innermost type name.
func (t *TypeRef) NamedType() string {
	for cur := t; cur != nil; cur = cur.OfType {
		if cur.Kind == TypeRefKindNamed {
			return cur.Named
		}
	}
	return ""
}

func (t *TypeRef) IsNullable() bool {
	return t == nil || t.Kind != TypeRefKindNonNull
}

// NonNullNamed returns the name of a type written as `Name!`.
func (t *TypeRef) NonNullNamed() (string, bool) {
	if t == nil || t.Kind != TypeRefKindNonNull || t.OfType == nil || t.OfType.Kind != TypeRefKindNamed {
		return "", false
	}
	return t.OfType.Named, true
}

func (t *TypeRef) String() string {
	if t == nil {
		return "Unknown"
	}
	switch t.Kind {
	case TypeRefKindNamed:
		return t.Named
	case TypeRefKindList:
		return "[" + t.OfType.String() + "]"
	case TypeRefKindNonNull:
		inner := t.OfType.String()
		if strings.HasSuffix(inner, "!") {
			return inner
		}
		return inner + "!"
	default:
		return "Unknown"
	}
}

// ObjectKind records which kind of definition produced an object.
type ObjectKind string

const (
	ObjectKindObject    ObjectKind = "object"
	ObjectKindInterface ObjectKind = "interface"
	ObjectKindInput     ObjectKind = "input object"
	ObjectKindUnion     ObjectKind = "union"
)

type SchemaScalar struct {
	ID          ScalarID
	Name        string
	Description string
	Location    Location
	// TargetName is the host-language type the scalar is represented as.
	TargetName string
}

type SchemaObject struct {
	ID          ObjectID
	Name        string
	Kind        ObjectKind
	Description string
	Location    Location

	ServerFields []ServerFieldID
	Resolvers    []ResolverID
	// EncounteredFields indexes every server and computed field by name.
	EncounteredFields map[string]FieldRef
	Directives        language.DirectiveList
	ValidRefinements  []ValidRefinement
	IDField           *ServerFieldID
}

// ValidRefinement records that an object may be narrowed to Target.
type ValidRefinement struct {
	Target ObjectID
}

type ServerField struct {
	ID          ServerFieldID
	Name        string
	Description string
	Location    Location
	Parent      ObjectID
	Arguments   []*Argument
	Type        *TypeRef
}

type Argument struct {
	Name         string
	Description  string
	Location     Location
	Type         *TypeRef
	DefaultValue *language.Value
}

// ResolverVariant distinguishes compiler-injected computed fields from
// user-authored ones.
type ResolverVariant string

const (
	ResolverVariantUserDefined   ResolverVariant = "UserDefined"
	ResolverVariantRefetchField  ResolverVariant = "RefetchField"
	ResolverVariantMutationField ResolverVariant = "MutationField"
)

// ResolverActionKind describes how a computed field is reached at runtime.
type ResolverActionKind string

const (
	ResolverActionNamedImport   ResolverActionKind = "NamedImport"
	ResolverActionRefetchField  ResolverActionKind = "RefetchField"
	ResolverActionMutationField ResolverActionKind = "MutationField"
)

type Resolver struct {
	ID          ResolverID
	Name        string
	Description string
	Location    Location
	Parent      ObjectID
	TypeName    string
	Variant     ResolverVariant
	ActionKind  ResolverActionKind
	// SelectionSet is nil until a later phase fills it in. Compiler-injected
	// resolvers carry theirs from the start.
	SelectionSet []Selection
}

// Fetchable reports whether the resolver produces its own outward-facing
// fetch artifact. Refetch and mutation fields trigger a fetch internally but
// are not fetchable themselves.
func (r *Resolver) Fetchable() bool {
	return r.ActionKind == ResolverActionNamedImport
}

// Selection selects one scalar field by name.
type Selection struct {
	Name     string
	Location Location
}
