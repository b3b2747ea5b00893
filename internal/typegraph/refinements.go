package typegraph

// resolveRefinements is the second pass. Every pending supertype name must
// name an object by now. All buckets are validated before any refinement is
// appended, so a failing pass leaves every supertype untouched.
func (s *Schema) resolveRefinements(pending *PendingRefinements) error {
	supertypes := make([]*SchemaObject, len(pending.order))
	for i, name := range pending.order {
		edges := pending.edges[name]
		if len(edges) == 0 {
			panic("pending refinement bucket for " + name + " is empty")
		}
		first := edges[0]

		id, ok := s.definedTypes[name]
		if !ok {
			return errObjectTypeNameNotDefined(name, s.suggestTypeName(name), first.Location)
		}
		if scalarID, ok := id.AsScalar(); ok {
			scalar := s.scalars[scalarID]
			return errObjectTypeNameIsScalar(name, s.objects[first.Subtype].Name, scalar.Location)
		}
		objectID, _ := id.AsObject()
		supertypes[i] = s.objects[objectID]
	}

	for i, name := range pending.order {
		supertype := supertypes[i]
		for _, edge := range pending.edges[name] {
			supertype.ValidRefinements = append(supertype.ValidRefinements, ValidRefinement{Target: edge.Subtype})
		}
		s.opts.Logger.Debug("resolved refinements", "supertype", name, "count", len(pending.edges[name]))
	}

	pending.order = nil
	pending.edges = make(map[string][]PendingRefinement)
	return nil
}
