package typegraph

import (
	"context"

	callid "github.com/hanpama/typegraph/internal/callid"
	eventbus "github.com/hanpama/typegraph/internal/eventbus"
	events "github.com/hanpama/typegraph/internal/events"
	language "github.com/hanpama/typegraph/internal/language"
)

// processExtension merges a directive-only extension into an already
// registered type. Extensions may not add fields, interfaces, union members
// or enum values.
func (s *Schema) processExtension(ctx context.Context, node *language.Definition) error {
	loc := locationOf(node.Position)

	id, ok := s.definedTypes[node.Name]
	if !ok {
		return errExtendedTypeNotDefined(node.Name, s.suggestTypeName(node.Name), loc)
	}

	switch node.Kind {
	case language.Scalar, language.Enum:
		if _, ok := id.AsObject(); ok {
			return errTypeExtensionMismatch(node.Name, "an object", "a scalar", loc)
		}
		return errUnsupportedTypeExtension(node.Name, "directives to scalars", loc)
	}

	objectID, ok := id.AsObject()
	if !ok {
		return errTypeExtensionMismatch(node.Name, "a scalar", "an object", loc)
	}
	if len(node.Fields) > 0 {
		return errUnsupportedTypeExtension(node.Name, "fields", locationOf(node.Fields[0].Position))
	}
	if len(node.Interfaces) > 0 {
		return errUnsupportedTypeExtension(node.Name, "interfaces", loc)
	}
	if len(node.Types) > 0 {
		return errUnsupportedTypeExtension(node.Name, "union members", loc)
	}

	obj := s.objects[objectID]
	obj.Directives = append(obj.Directives, node.Directives...)
	eventbus.Publish(ctx, events.ExtensionApplied{TypeName: obj.Name, Directives: len(node.Directives)})
	callid.Logger(ctx, s.opts.Logger).Debug("applied extension", "type", obj.Name, "directives", len(node.Directives))
	return nil
}
