package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newExecCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <backend> <command>",
		Short: "Run one command against a backend",
		Long: `Run one command against a backend. The backend is one of postgres, mysql,
mongo or neo4j (aliases: pg, sql, postgresql, mongodb, neo, graph).`,
		Example: `  unisql exec postgres "SELECT name FROM users WHERE age > 18"`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.client.Execute(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			return renderResult(cmd.OutOrStdout(), result, a.output)
		},
	}
}

func newBatchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file>",
		Short: "Run every \"<backend> <command>\" line of a file",
		Long: `Run every "<backend> <command>" line of a file, in order. Blank lines and
lines starting with # are skipped. A failing line does not stop the batch.
Use - to read from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open batch file: %w", err)
				}
				defer func() { _ = f.Close() }()
				in = f
			}

			results := a.client.ExecuteBatch(cmd.Context(), in)
			return renderBatch(cmd.OutOrStdout(), results, a.output)
		},
	}
}

func newTranslateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "translate <backend> <command>",
		Short:   "Print the native query without connecting",
		Example: `  unisql translate neo4j "UPDATE users SET active = TRUE WHERE id = 3"`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := a.client.Translate(args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), q.String())
			return nil
		},
	}
}
