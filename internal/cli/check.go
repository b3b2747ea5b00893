package cli

import (
	"github.com/spf13/cobra"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Build the type graph and report errors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			s := proj.Schema
			logger := loggerFromContext(cmd.Context())

			kv := []any{
				"objects", len(s.Objects()),
				"scalars", len(s.Scalars()),
				"fields", len(s.ServerFields()),
				"resolvers", len(s.Resolvers()),
			}
			if id, ok := s.QueryType(); ok {
				kv = append(kv, "query", s.Object(id).Name)
			}
			if id, ok := s.MutationType(); ok {
				kv = append(kv, "mutation", s.Object(id).Name)
			}
			logger.Info("type graph is valid", kv...)
			return nil
		},
	}
}
