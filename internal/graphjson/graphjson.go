// Package graphjson serializes a finished type graph as JSON, keeping the
// arena ids so that tools can follow references between entries.
package graphjson

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/hanpama/typegraph/internal/typegraph"
)

var json = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

type Graph struct {
	Query     *typegraph.ObjectID `json:"query,omitempty"`
	Mutation  *typegraph.ObjectID `json:"mutation,omitempty"`
	Scalars   []Scalar            `json:"scalars"`
	Objects   []Object            `json:"objects"`
	Fields    []Field             `json:"fields"`
	Resolvers []Resolver          `json:"resolvers"`
}

type Scalar struct {
	ID          typegraph.ScalarID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Target      string             `json:"target"`
	Location    string             `json:"location,omitempty"`
}

type Object struct {
	ID          typegraph.ObjectID        `json:"id"`
	Name        string                    `json:"name"`
	Kind        typegraph.ObjectKind      `json:"kind"`
	Description string                    `json:"description,omitempty"`
	Location    string                    `json:"location,omitempty"`
	Fields      []typegraph.ServerFieldID `json:"fields"`
	Resolvers   []typegraph.ResolverID    `json:"resolvers"`
	IDField     *typegraph.ServerFieldID  `json:"idField,omitempty"`
	Refinements []typegraph.ObjectID      `json:"refinements,omitempty"`
	Directives  []string                  `json:"directives,omitempty"`
}

type Field struct {
	ID          typegraph.ServerFieldID `json:"id"`
	Parent      typegraph.ObjectID      `json:"parent"`
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Type        string                  `json:"type"`
	Arguments   []Argument              `json:"arguments,omitempty"`
	Location    string                  `json:"location,omitempty"`
}

type Argument struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	DefaultValue string `json:"defaultValue,omitempty"`
}

type Resolver struct {
	ID          typegraph.ResolverID         `json:"id"`
	Parent      typegraph.ObjectID           `json:"parent"`
	Name        string                       `json:"name"`
	Description string                       `json:"description,omitempty"`
	Variant     typegraph.ResolverVariant    `json:"variant"`
	Action      typegraph.ResolverActionKind `json:"action"`
	Fetchable   bool                         `json:"fetchable"`
	Selections  []string                     `json:"selections,omitempty"`
}

// Snapshot copies s into its JSON shape.
func Snapshot(s *typegraph.Schema) *Graph {
	g := &Graph{
		Scalars:   make([]Scalar, 0, len(s.Scalars())),
		Objects:   make([]Object, 0, len(s.Objects())),
		Fields:    make([]Field, 0, len(s.ServerFields())),
		Resolvers: make([]Resolver, 0, len(s.Resolvers())),
	}
	if id, ok := s.QueryType(); ok {
		g.Query = &id
	}
	if id, ok := s.MutationType(); ok {
		g.Mutation = &id
	}

	for _, sc := range s.Scalars() {
		g.Scalars = append(g.Scalars, Scalar{
			ID:          sc.ID,
			Name:        sc.Name,
			Description: sc.Description,
			Target:      sc.TargetName,
			Location:    sc.Location.String(),
		})
	}
	for _, obj := range s.Objects() {
		o := Object{
			ID:          obj.ID,
			Name:        obj.Name,
			Kind:        obj.Kind,
			Description: obj.Description,
			Location:    obj.Location.String(),
			Fields:      obj.ServerFields,
			Resolvers:   obj.Resolvers,
			IDField:     obj.IDField,
		}
		if o.Resolvers == nil {
			o.Resolvers = []typegraph.ResolverID{}
		}
		for _, r := range obj.ValidRefinements {
			o.Refinements = append(o.Refinements, r.Target)
		}
		for _, d := range obj.Directives {
			o.Directives = append(o.Directives, d.Name)
		}
		g.Objects = append(g.Objects, o)
	}
	for _, f := range s.ServerFields() {
		field := Field{
			ID:          f.ID,
			Parent:      f.Parent,
			Name:        f.Name,
			Description: f.Description,
			Type:        f.Type.String(),
			Location:    f.Location.String(),
		}
		for _, a := range f.Arguments {
			arg := Argument{Name: a.Name, Type: a.Type.String()}
			if a.DefaultValue != nil {
				arg.DefaultValue = a.DefaultValue.String()
			}
			field.Arguments = append(field.Arguments, arg)
		}
		g.Fields = append(g.Fields, field)
	}
	for _, r := range s.Resolvers() {
		res := Resolver{
			ID:          r.ID,
			Parent:      r.Parent,
			Name:        r.Name,
			Description: r.Description,
			Variant:     r.Variant,
			Action:      r.ActionKind,
			Fetchable:   r.Fetchable(),
		}
		for _, sel := range r.SelectionSet {
			res.Selections = append(res.Selections, sel.Name)
		}
		g.Resolvers = append(g.Resolvers, res)
	}
	return g
}

// Marshal returns the indented JSON form of s.
func Marshal(s *typegraph.Schema) ([]byte, error) {
	return json.MarshalIndent(Snapshot(s), "", "  ")
}
