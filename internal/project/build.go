package project

import (
	"context"
	"fmt"
	"strings"

	language "github.com/hanpama/typegraph/internal/language"
	"github.com/hanpama/typegraph/internal/typegraph"
)

// Project is a fully processed schema together with the sources it came
// from.
type Project struct {
	Schema  *typegraph.Schema
	Sources []*SourceMetadata
	// MutationID is the mutation root reported by the last document that
	// declared one.
	MutationID *typegraph.ObjectID
}

// Build reads every source of disc and feeds it to a new Schema. All base
// sources form a single document so that implements edges may point across
// files. Extension sources follow one by one, in path order. @exposeField
// directives are applied next, and finally every field and argument type
// must name a defined type.
func Build(ctx context.Context, disc Discovery, opts ...typegraph.Option) (*Project, error) {
	srcs, err := disc.ListSources(ctx)
	if err != nil {
		return nil, err
	}

	var bases, extensions []*SourceMetadata
	for _, src := range srcs {
		switch src.Role {
		case RoleBase:
			bases = append(bases, src)
		case RoleExtension:
			extensions = append(extensions, src)
		default:
			return nil, fmt.Errorf("source %q has unknown role %q", src.ID, src.Role)
		}
	}

	p := &Project{Schema: typegraph.New(opts...), Sources: srcs}

	if len(bases) > 0 {
		merged := &language.SchemaDocument{}
		names := make([]string, 0, len(bases))
		for _, src := range bases {
			doc, err := parse(ctx, disc, src)
			if err != nil {
				return nil, err
			}
			merged.Definitions = append(merged.Definitions, doc.Definitions...)
			merged.Extensions = append(merged.Extensions, doc.Extensions...)
			merged.Directives = append(merged.Directives, doc.Directives...)
			names = append(names, src.FilePath)
		}
		out, err := p.Schema.ProcessDocument(ctx, strings.Join(names, ","), merged)
		if err != nil {
			return nil, err
		}
		p.recordMutation(out)
	}

	for _, src := range extensions {
		doc, err := parse(ctx, disc, src)
		if err != nil {
			return nil, err
		}
		out, err := p.Schema.ProcessExtensionDocument(ctx, src.FilePath, doc)
		if err != nil {
			return nil, err
		}
		p.recordMutation(out)
	}

	if err := p.Schema.ApplyExposeFields(); err != nil {
		return nil, err
	}
	if err := p.Schema.CheckTypeReferences(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Project) recordMutation(out *typegraph.DocumentOutcome) {
	if out != nil && out.MutationID != nil {
		p.MutationID = out.MutationID
	}
}

func parse(ctx context.Context, disc Discovery, src *SourceMetadata) (*language.SchemaDocument, error) {
	sdl, err := disc.ReadSource(ctx, src.ID)
	if err != nil {
		return nil, err
	}
	doc, err := language.ParseSchema(src.FilePath, sdl)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", src.FilePath, err)
	}
	return doc, nil
}
