package cli

import (
	"github.com/spf13/cobra"

	"github.com/francois95140/unisql/internal/server"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve GET /sql/{backend}?sql_command=... over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return server.New(a.client, a.logger).Serve(cmd.Context(), a.cfg.Server.Addr)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default :8000)")
	return cmd
}
