package typegraph

import (
	"context"
	"time"

	callid "github.com/hanpama/typegraph/internal/callid"
	eventbus "github.com/hanpama/typegraph/internal/eventbus"
	events "github.com/hanpama/typegraph/internal/events"
	language "github.com/hanpama/typegraph/internal/language"
)

// DocumentOutcome is the result of one document processing call.
type DocumentOutcome struct {
	// MutationID is the mutation root discovered by this call, if any.
	MutationID *ObjectID
}

// ProcessDocument registers every definition of a type-system document and
// then resolves the interface implementations they declare.
//
// In this model interfaces, unions and input objects are objects, enums are
// scalars, and directive definitions are ignored. Declaration order inside
// the document does not matter for implements edges. Processing stops at the
// first error; definitions registered before it stay registered.
func (s *Schema) ProcessDocument(ctx context.Context, name string, doc *language.SchemaDocument) (outcome *DocumentOutcome, err error) {
	ctx = s.startDocument(ctx, name, events.DocumentKindBase, len(doc.Definitions))
	start := time.Now()
	defer func() {
		s.finishDocument(ctx, name, events.DocumentKindBase, len(doc.Definitions), start, err)
	}()

	if len(doc.Extensions) > 0 {
		ext := doc.Extensions[0]
		return nil, errUnsupportedTypeExtension(ext.Name, "type extensions outside an extension document", locationOf(ext.Position))
	}
	return s.processDefinitions(doc.Definitions)
}

// ProcessExtensionDocument processes the definitions embedded in an
// extension document as one batch, then applies its extensions to the
// finished graph.
func (s *Schema) ProcessExtensionDocument(ctx context.Context, name string, doc *language.SchemaDocument) (outcome *DocumentOutcome, err error) {
	ctx = s.startDocument(ctx, name, events.DocumentKindExtension, len(doc.Definitions)+len(doc.Extensions))
	start := time.Now()
	defer func() {
		s.finishDocument(ctx, name, events.DocumentKindExtension, len(doc.Definitions)+len(doc.Extensions), start, err)
	}()

	outcome, err = s.processDefinitions(doc.Definitions)
	if err != nil {
		return nil, err
	}
	for _, ext := range doc.Extensions {
		if err := s.processExtension(ctx, ext); err != nil {
			return nil, err
		}
	}
	return outcome, nil
}

func (s *Schema) processDefinitions(defs language.DefinitionList) (*DocumentOutcome, error) {
	pending := NewPendingRefinements()
	outcome := &DocumentOutcome{}

	for _, node := range defs {
		switch node.Kind {
		case language.Object:
			out, err := s.ProcessObjectTypeDefinition(objectTypeDefinitionOf(ObjectKindObject, node), pending, true)
			if err != nil {
				return nil, err
			}
			if out.MutationID != nil {
				outcome.MutationID = out.MutationID
			}
		case language.Interface:
			if _, err := s.ProcessObjectTypeDefinition(objectTypeDefinitionOf(ObjectKindInterface, node), pending, true); err != nil {
				return nil, err
			}
		case language.InputObject:
			if _, err := s.ProcessObjectTypeDefinition(objectTypeDefinitionOf(ObjectKindInput, node), pending, false); err != nil {
				return nil, err
			}
		case language.Union:
			if _, err := s.ProcessObjectTypeDefinition(objectTypeDefinitionOf(ObjectKindUnion, node), pending, true); err != nil {
				return nil, err
			}
		case language.Scalar:
			if _, err := s.RegisterScalar(node.Name, scalarMetadataOf(node)); err != nil {
				return nil, err
			}
		case language.Enum:
			// Enum values are not modeled.
			if _, err := s.RegisterScalar(node.Name, scalarMetadataOf(node)); err != nil {
				return nil, err
			}
		default:
			panic("unreachable: definition kind " + string(node.Kind))
		}
	}

	if err := s.resolveRefinements(pending); err != nil {
		return nil, err
	}
	return outcome, nil
}

func scalarMetadataOf(node *language.Definition) ScalarMetadata {
	return ScalarMetadata{
		Description: node.Description,
		Location:    locationOf(node.Position),
		TargetName:  "string",
	}
}

func (s *Schema) startDocument(ctx context.Context, name string, kind events.DocumentKind, definitions int) context.Context {
	ctx, _ = callid.NewContext(ctx)
	eventbus.Publish(ctx, events.DocumentStart{Name: name, Kind: kind, Definitions: definitions})
	callid.Logger(ctx, s.opts.Logger).Debug("processing document", "name", name, "kind", kind, "definitions", definitions)
	return ctx
}

func (s *Schema) finishDocument(ctx context.Context, name string, kind events.DocumentKind, definitions int, start time.Time, err error) {
	elapsed := time.Since(start)
	eventbus.Publish(ctx, events.DocumentFinish{
		Name:        name,
		Kind:        kind,
		Definitions: definitions,
		Err:         err,
		Duration:    elapsed,
	})
	logger := callid.Logger(ctx, s.opts.Logger)
	if err != nil {
		logger.Debug("document failed", "name", name, "err", err)
		return
	}
	logger.Debug("processed document", "name", name, "elapsed", elapsed)
}
