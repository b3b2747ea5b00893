package typegraph

import (
	language "github.com/hanpama/typegraph/internal/language"
)

const (
	typenameFieldName = "__typename"
	idFieldName       = "id"
)

// FieldDefinition is one user-declared field of a type definition.
type FieldDefinition struct {
	Name        string
	Description string
	Location    Location
	Type        *TypeRef
	Arguments   []*Argument
}

func fieldDefinitionOf(node *language.FieldDefinition) *FieldDefinition {
	def := &FieldDefinition{
		Name:        node.Name,
		Description: node.Description,
		Location:    locationOf(node.Position),
		Type:        typeRefOf(node.Type),
		Arguments:   make([]*Argument, 0, len(node.Arguments)),
	}
	for _, arg := range node.Arguments {
		def.Arguments = append(def.Arguments, &Argument{
			Name:         arg.Name,
			Description:  arg.Description,
			Location:     locationOf(arg.Position),
			Type:         typeRefOf(arg.Type),
			DefaultValue: arg.DefaultValue,
		})
	}
	return def
}

// fieldSet is the output of field synthesis for one object. Nothing in it is
// visible in the registry until the owning object is committed.
type fieldSet struct {
	fields      []*ServerField
	ids         []ServerFieldID
	encountered map[string]FieldRef
	idField     *ServerFieldID
}

// synthesizeFields validates the user fields of one object, allocates their
// ids starting at the next free field slot, and appends the structural
// __typename field last.
func (s *Schema) synthesizeFields(parent ObjectID, parentName string, defs []*FieldDefinition, mayHaveIDField bool) (*fieldSet, error) {
	next := ServerFieldID(len(s.fields))
	fs := &fieldSet{
		fields:      make([]*ServerField, 0, len(defs)+1),
		ids:         make([]ServerFieldID, 0, len(defs)+1),
		encountered: make(map[string]FieldRef, len(defs)+1),
	}

	for _, def := range defs {
		if _, ok := fs.encountered[def.Name]; ok {
			return nil, errDuplicateField(def.Name, parentName, def.Location)
		}
		id := next + ServerFieldID(len(fs.fields))
		fs.encountered[def.Name] = serverFieldRef(id)

		if mayHaveIDField && def.Name == idFieldName {
			// The name check above guarantees this runs at most once.
			if err := s.validateIDField(def, parentName); err != nil {
				return nil, err
			}
			idField := id
			fs.idField = &idField
		}

		fs.fields = append(fs.fields, &ServerField{
			ID:          id,
			Name:        def.Name,
			Description: def.Description,
			Location:    def.Location,
			Parent:      parent,
			Arguments:   def.Arguments,
			Type:        def.Type,
		})
		fs.ids = append(fs.ids, id)
	}

	typenameID := next + ServerFieldID(len(fs.fields))
	if prev, ok := fs.encountered[typenameFieldName]; ok {
		return nil, errTypenameCannotBeDefined(parentName, fs.fields[prev.Server-next].Location)
	}
	fs.encountered[typenameFieldName] = serverFieldRef(typenameID)
	fs.fields = append(fs.fields, &ServerField{
		ID:       typenameID,
		Name:     typenameFieldName,
		Location: generatedLocation,
		Parent:   parent,
		Type:     NonNullType(NamedType(s.scalars[s.stringType].Name)),
	})
	fs.ids = append(fs.ids, typenameID)

	return fs, nil
}

// validateIDField checks that an "id" field is written as ID!. Under
// InvalidIDTypeIgnore a mismatch is logged and accepted.
func (s *Schema) validateIDField(def *FieldDefinition, parentName string) error {
	if name, ok := def.Type.NonNullNamed(); ok && name == s.scalars[s.idType].Name {
		return nil
	}
	switch s.opts.OnInvalidIDType {
	case InvalidIDTypeIgnore:
		s.opts.Logger.Warn("accepting id field that is not ID!",
			"type", parentName, "fieldType", def.Type.String(), "location", def.Location.String())
		return nil
	default:
		return errIDFieldMustBeNonNullIDType(parentName, def.Location)
	}
}
