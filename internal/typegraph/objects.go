package typegraph

import (
	language "github.com/hanpama/typegraph/internal/language"
)

// ObjectTypeDefinition is the kind-independent shape of an object,
// interface, input object or union definition.
type ObjectTypeDefinition struct {
	Kind        ObjectKind
	Name        string
	Description string
	Location    Location
	Interfaces  []LocatedName
	Directives  language.DirectiveList
	Fields      []*FieldDefinition
}

type LocatedName struct {
	Name     string
	Location Location
}

func objectTypeDefinitionOf(kind ObjectKind, node *language.Definition) *ObjectTypeDefinition {
	def := &ObjectTypeDefinition{
		Kind:        kind,
		Name:        node.Name,
		Description: node.Description,
		Location:    locationOf(node.Position),
		Directives:  node.Directives,
	}
	// Union members are not modeled; a union is an object without fields.
	if kind == ObjectKindUnion {
		return def
	}
	for _, iface := range node.Interfaces {
		def.Interfaces = append(def.Interfaces, LocatedName{Name: iface, Location: def.Location})
	}
	def.Fields = make([]*FieldDefinition, 0, len(node.Fields))
	for _, field := range node.Fields {
		def.Fields = append(def.Fields, fieldDefinitionOf(field))
	}
	return def
}

// ObjectOutcome is the result of registering one object definition.
type ObjectOutcome struct {
	ObjectID ObjectID
	// MutationID is set when the object is the mutation root.
	MutationID *ObjectID
}

// ProcessObjectTypeDefinition registers def as an object, recording one
// pending refinement per implemented interface. On error the registry is
// left unchanged.
func (s *Schema) ProcessObjectTypeDefinition(def *ObjectTypeDefinition, pending *PendingRefinements, mayHaveIDField bool) (*ObjectOutcome, error) {
	if _, ok := s.definedTypes[def.Name]; ok {
		return nil, errDuplicateTypeDefinition(string(def.Kind), def.Name, def.Location)
	}

	id := ObjectID(len(s.objects))
	fs, err := s.synthesizeFields(id, def.Name, def.Fields, mayHaveIDField)
	if err != nil {
		return nil, err
	}
	resolvers, err := s.injectRefetchField(id, def.Name, fs)
	if err != nil {
		return nil, err
	}
	resolverIDs := make([]ResolverID, len(resolvers))
	for i, r := range resolvers {
		resolverIDs[i] = r.ID
	}

	s.commitObject(&SchemaObject{
		ID:                id,
		Name:              def.Name,
		Kind:              def.Kind,
		Description:       def.Description,
		Location:          def.Location,
		ServerFields:      fs.ids,
		Resolvers:         resolverIDs,
		EncounteredFields: fs.encountered,
		Directives:        def.Directives,
		IDField:           fs.idField,
	}, fs.fields, resolvers)

	out := &ObjectOutcome{ObjectID: id}
	switch def.Name {
	case queryTypeName:
		s.queryType = &id
	case mutationTypeName:
		s.mutationType = &id
		out.MutationID = &id
	}

	for _, iface := range def.Interfaces {
		pending.add(iface.Name, PendingRefinement{Location: iface.Location, Subtype: id})
	}
	return out, nil
}

// PendingRefinement is an "implements" edge whose supertype has not been
// checked yet.
type PendingRefinement struct {
	Location Location
	Subtype  ObjectID
}

// PendingRefinements collects implements edges during the first pass,
// keyed by supertype name in first-occurrence order.
type PendingRefinements struct {
	order []string
	edges map[string][]PendingRefinement
}

func NewPendingRefinements() *PendingRefinements {
	return &PendingRefinements{edges: make(map[string][]PendingRefinement)}
}

func (p *PendingRefinements) add(supertype string, edge PendingRefinement) {
	if _, ok := p.edges[supertype]; !ok {
		p.order = append(p.order, supertype)
	}
	p.edges[supertype] = append(p.edges[supertype], edge)
}

// Len returns the number of distinct supertype names.
func (p *PendingRefinements) Len() int { return len(p.order) }
