package cli

import (
	"context"
	"fmt"

	"github.com/hanpama/typegraph/internal/project"
	"github.com/hanpama/typegraph/internal/typegraph"
)

// config reads the config file and applies flag overrides.
func (o *rootOptions) config() (project.Config, error) {
	c, err := project.LoadConfig(o.configPath)
	if err != nil {
		return project.Config{}, err
	}
	// Flag paths are relative to the working directory.
	if len(o.schema) > 0 {
		c.Schema = absolutize(o.schema)
	}
	if len(o.extensions) > 0 {
		c.SchemaExtensions = absolutize(o.extensions)
	}
	if o.onInvalidIDType != "" {
		c.Options.OnInvalidIDType = o.onInvalidIDType
	}
	return c, c.Validate()
}

func (o *rootOptions) load(ctx context.Context) (*project.Project, error) {
	logger := loggerFromContext(ctx)
	c, err := o.config()
	if err != nil {
		return nil, err
	}

	p := newProgress(logger)
	proj, err := project.Load(ctx, c, typegraph.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("building type graph: %w", err)
	}
	p.done(fmt.Sprintf("Processed %d schema files", len(proj.Sources)))
	return proj, nil
}
