package typegraph

// ResolverMetadata describes a user-defined computed field.
type ResolverMetadata struct {
	Description string
	Location    Location
}

// AddResolver registers a user-defined computed field on an already
// committed object. Its selection set stays nil until a later phase fills it
// in.
func (s *Schema) AddResolver(parent ObjectID, name string, md ResolverMetadata) (ResolverID, error) {
	obj := s.objects[parent]
	if _, ok := obj.EncounteredFields[name]; ok {
		return 0, errDuplicateField(name, obj.Name, md.Location)
	}
	return s.appendResolver(obj, &Resolver{
		Name:        name,
		Description: md.Description,
		Location:    md.Location,
		TypeName:    obj.Name,
		Variant:     ResolverVariantUserDefined,
		ActionKind:  ResolverActionNamedImport,
	}), nil
}

func (s *Schema) appendResolver(obj *SchemaObject, r *Resolver) ResolverID {
	id := ResolverID(len(s.resolvers))
	r.ID = id
	r.Parent = obj.ID
	s.resolvers = append(s.resolvers, r)
	obj.Resolvers = append(obj.Resolvers, id)
	obj.EncounteredFields[r.Name] = resolverFieldRef(id)
	s.opts.Logger.Debug("registered resolver", "type", obj.Name, "name", r.Name, "variant", r.Variant)
	return id
}

// ApplyExposeFields turns every @exposeField directive in the graph into a
// mutation computed field on the annotated object. Objects are visited in id
// order and processing stops at the first error.
func (s *Schema) ApplyExposeFields() error {
	for _, obj := range s.objects {
		for _, d := range ExposeFieldDirectives(obj) {
			ef, err := ParseExposeField(d)
			if err != nil {
				return err
			}
			if err := s.applyExposeField(obj, ef); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Schema) applyExposeField(primary *SchemaObject, ef *ExposeField) error {
	mutationID, ok := s.MutationType()
	if !ok {
		return errInvalidMutationField(ef.Location)
	}
	mutation := s.objects[mutationID]
	ref, ok := mutation.EncounteredFields[ef.Field]
	if !ok || ref.Kind != FieldRefServer {
		return errInvalidMutationField(ef.Location)
	}
	mutationField := s.fields[ref.Server]

	name := ef.Field
	if _, ok := primary.EncounteredFields[name]; ok {
		return errMutationFieldIsDuplicate(name, primary.Name, ef.Location)
	}

	// Arguments consumed by the field map are hidden from the exposed field.
	remaining := make(map[string]*Argument, len(mutationField.Arguments))
	for _, arg := range mutationField.Arguments {
		remaining[arg.Name] = arg
	}

	selections := make([]Selection, 0, len(ef.FieldMap))
	var unused []FieldMapItem
	for _, item := range ef.FieldMap {
		fromRef, ok := primary.EncounteredFields[item.From]
		if !ok || fromRef.Kind != FieldRefServer {
			return errPrimaryDirectiveFieldNotFound(primary.Name, item.From, ef.Location)
		}
		if id, ok := s.ResolveTypeRef(s.fields[fromRef.Server].Type); ok {
			if _, isObject := id.AsObject(); isObject {
				return errPrimaryDirectiveCannotRemapObject(primary.Name, item.From, ef.Location)
			}
		}

		arg, ok := remaining[item.ToArgumentName]
		if !ok {
			return errPrimaryDirectiveArgumentDoesNotExistOnField(
				primary.Name, mutation.Name, mutationField.Name, item.ToArgumentName, ef.Location)
		}
		if len(item.ToFieldNames) == 0 {
			delete(remaining, item.ToArgumentName)
		} else if !s.hasInputPath(arg.Type, item.ToFieldNames) {
			unused = append(unused, item)
			continue
		}
		selections = append(selections, Selection{Name: item.From, Location: ef.Location})
	}
	if len(unused) > 0 {
		return errNotAllToFieldsUsed(unused, ef.Location)
	}

	s.appendResolver(primary, &Resolver{
		Name:         name,
		Description:  mutationField.Description,
		Location:     ef.Location,
		TypeName:     primary.Name,
		Variant:      ResolverVariantMutationField,
		ActionKind:   ResolverActionMutationField,
		SelectionSet: selections,
	})
	return nil
}

// hasInputPath reports whether the field path exists below the input type t.
func (s *Schema) hasInputPath(t *TypeRef, path []string) bool {
	for _, name := range path {
		obj, ok := s.LookupObject(t.NamedType())
		if !ok || obj.Kind != ObjectKindInput {
			return false
		}
		ref, ok := obj.EncounteredFields[name]
		if !ok || ref.Kind != FieldRefServer {
			return false
		}
		t = s.fields[ref.Server].Type
	}
	return true
}
