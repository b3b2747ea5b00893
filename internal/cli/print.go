package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hanpama/typegraph/internal/graphjson"
	"github.com/hanpama/typegraph/internal/sdl"
)

func newPrintCmd(opts *rootOptions) *cobra.Command {
	var out, format string
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the type graph as SDL or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "sdl" && format != "json" {
				return fmt.Errorf("unknown format %q (want sdl or json)", format)
			}
			proj, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			if format == "sdl" {
				return writeOutput(cmd.OutOrStdout(), out, sdl.Render(proj.Schema))
			}
			b, err := graphjson.Marshal(proj.Schema)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), out, string(b)+"\n")
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "sdl", "output format: sdl or json")
	return cmd
}

func writeOutput(stdout io.Writer, path, content string) error {
	if path == "" {
		_, err := io.WriteString(stdout, content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}
