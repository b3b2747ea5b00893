package typegraph

// CheckTypeReferences reports the first server field or argument whose type
// names nothing in the registry. Field types may point at types declared in
// later documents, so this runs once every document of a unit is processed.
func (s *Schema) CheckTypeReferences() error {
	for _, field := range s.fields {
		if err := s.checkTypeRef(field.Type, field.Location); err != nil {
			return err
		}
		for _, arg := range field.Arguments {
			if err := s.checkTypeRef(arg.Type, arg.Location); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Schema) checkTypeRef(t *TypeRef, loc Location) error {
	if _, ok := s.ResolveTypeRef(t); ok {
		return nil
	}
	name := t.NamedType()
	return errObjectTypeNameNotDefined(name, s.suggestTypeName(name), loc)
}
