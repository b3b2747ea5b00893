// Package cli implements the typegraph command-line interface.
//
// Every command loads the project described by typegraph.toml (or the
// --schema and --extension flags), builds the type graph and then checks,
// prints or generates code from it.
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed through context.Context and also handed to the type graph.
package cli

import (
	"context"
	"fmt"
	"io"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	eventbus "github.com/hanpama/typegraph/internal/eventbus"
	otel "github.com/hanpama/typegraph/internal/otel"
	"github.com/hanpama/typegraph/internal/project"
)

type rootOptions struct {
	configPath      string
	schema          []string
	extensions      []string
	onInvalidIDType string
	verbose         bool
	otelEndpoint    string
	otelService     string

	// shutdown flushes the tracer provider. Set once tracing is configured.
	shutdown func(context.Context) error
}

// setupTracing is replaced in tests.
var setupTracing = otel.Setup

// NewRootCommand builds the command tree. Command output goes to the
// command's out writer, logs to stderr. Tracing configured by
// --otel-endpoint is only flushed when run through Execute.
func NewRootCommand(stderr io.Writer) *cobra.Command {
	root, _ := newRootCommand(stderr)
	return root
}

func newRootCommand(stderr io.Writer) (*cobra.Command, *rootOptions) {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "typegraph",
		Short:         "Build and validate a type graph from schema documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(stderr, level)))

			if opts.otelEndpoint == "" {
				return nil
			}
			eventbus.Use(eventbus.New())
			shutdown, err := setupTracing(opts.otelEndpoint, opts.otelService)
			if err != nil {
				return fmt.Errorf("otel setup: %w", err)
			}
			opts.shutdown = shutdown
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", project.DefaultConfigFile, "project config file")
	flags.StringSliceVar(&opts.schema, "schema", nil, "schema file or directory (overrides config, repeatable)")
	flags.StringSliceVar(&opts.extensions, "extension", nil, "extension file or directory (overrides config, repeatable)")
	flags.StringVar(&opts.onInvalidIDType, "on-invalid-id-type", "", `"error" or "ignore" (overrides config)`)
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&opts.otelEndpoint, "otel-endpoint", "", "OTLP collector endpoint")
	flags.StringVar(&opts.otelService, "otel-service", "typegraph", "OpenTelemetry service name")

	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newPrintCmd(opts))
	root.AddCommand(newGenCmd(opts))
	return root, opts
}

// Execute runs the CLI with the process arguments.
func Execute(ctx context.Context, stderr io.Writer) error {
	root, opts := newRootCommand(stderr)
	return execute(ctx, root, opts)
}

// execute runs root and then flushes tracing, also when the command failed,
// so the span recording the failure is exported.
func execute(ctx context.Context, root *cobra.Command, opts *rootOptions) (err error) {
	defer func() {
		if opts.shutdown == nil {
			return
		}
		if serr := opts.shutdown(context.WithoutCancel(ctx)); err == nil && serr != nil {
			err = fmt.Errorf("otel shutdown: %w", serr)
		}
	}()
	return root.ExecuteContext(ctx)
}
