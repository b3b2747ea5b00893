package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hanpama/typegraph/internal/artifact"
	"github.com/hanpama/typegraph/internal/gogen"
	"github.com/hanpama/typegraph/internal/protoreg"
)

func newGenCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate code from the type graph",
	}
	cmd.AddCommand(newGenTSCmd(opts))
	cmd.AddCommand(newGenGoCmd(opts))
	cmd.AddCommand(newGenProtoCmd(opts))
	return cmd
}

func newGenTSCmd(opts *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "ts",
		Short: "Generate TypeScript type declarations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), out, artifact.TypeDeclarations(proj.Schema))
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	return cmd
}

func newGenGoCmd(opts *rootOptions) *cobra.Command {
	var out, pkg string
	cmd := &cobra.Command{
		Use:   "go",
		Short: "Generate Go type declarations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := gogen.Render(&buf, proj.Schema, pkg); err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), out, buf.String())
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVarP(&pkg, "package", "p", "models", "Go package name")
	return cmd
}

func newGenProtoCmd(opts *rootOptions) *cobra.Command {
	var out, pkg string
	cmd := &cobra.Command{
		Use:   "proto",
		Short: "Generate a .proto file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pkg == "" {
				return fmt.Errorf("--package is required")
			}
			proj, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			reg, err := protoreg.Build(proj.Schema, pkg)
			if err != nil {
				return fmt.Errorf("building proto descriptors: %w", err)
			}
			if out == "" {
				return protoreg.Print(reg, reg.GetAllFiles()[0].Path(), cmd.OutOrStdout())
			}
			if err := protoreg.Render(reg, out); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("wrote proto files", "dir", out, "files", len(reg.GetAllFiles()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (default: stdout)")
	cmd.Flags().StringVarP(&pkg, "package", "p", "", "proto package name (required)")
	return cmd
}
