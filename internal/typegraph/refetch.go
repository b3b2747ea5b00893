package typegraph

const refetchFieldName = "__refetch"

// injectRefetchField returns the computed fields known before any user
// resolver is processed: a __refetch field selecting "id" when the object
// has an identifier field, nothing otherwise.
func (s *Schema) injectRefetchField(parent ObjectID, parentName string, fs *fieldSet) ([]*Resolver, error) {
	if fs.idField == nil {
		return nil, nil
	}
	if prev, ok := fs.encountered[refetchFieldName]; ok {
		// Only reachable when the user declared a field with this name.
		loc := generatedLocation
		if prev.Kind == FieldRefServer {
			loc = fs.fields[int(prev.Server)-len(s.fields)].Location
		}
		return nil, errDuplicateField(refetchFieldName, parentName, loc)
	}

	id := ResolverID(len(s.resolvers))
	fs.encountered[refetchFieldName] = resolverFieldRef(id)
	return []*Resolver{{
		ID:          id,
		Name:        refetchFieldName,
		Description: "A refetch field for this object.",
		Location:    generatedLocation,
		Parent:      parent,
		TypeName:    parentName,
		Variant:     ResolverVariantRefetchField,
		ActionKind:  ResolverActionRefetchField,
		SelectionSet: []Selection{
			{Name: idFieldName, Location: generatedLocation},
		},
	}}, nil
}
