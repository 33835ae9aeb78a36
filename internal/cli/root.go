// Package cli provides the command-line interface for unisql.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/francois95140/unisql"
	"github.com/francois95140/unisql/internal/config"
)

// Version information (set at build time).
var Version = "0.1.0"

// app is the state shared by every command of one invocation
type app struct {
	cfgFile string
	output  string
	cfg     *config.Config
	logger  *slog.Logger
	client  *unisql.Client
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "unisql",
		Short: "unisql - one command language for SQL, MongoDB and Neo4j",
		Long: `unisql translates a small SQL-like command language into native queries
for PostgreSQL, MySQL, MongoDB and Neo4j, and runs them.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			return a.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./unisql.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log generated queries and lexer diagnostics")
	rootCmd.PersistentFlags().Bool("validate", false, "Check generated queries against the backend grammar")
	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", "table", "Output format (table|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newExecCommand(a))
	rootCmd.AddCommand(newBatchCommand(a))
	rootCmd.AddCommand(newTranslateCommand(a))
	rootCmd.AddCommand(newServeCommand(a))

	return rootCmd
}

// setup loads configuration and builds the client unless one was injected
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger == nil {
		level := slog.LevelInfo
		if cfg.Debug {
			level = slog.LevelDebug
		}
		a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	}

	if a.client != nil {
		return nil
	}

	providers, err := cfg.Providers(a.logger)
	if err != nil {
		return err
	}
	opts := []unisql.Option{unisql.WithLogger(a.logger), unisql.WithValidation(cfg.Validate)}
	for _, p := range providers {
		opts = append(opts, unisql.WithProvider(p))
	}
	a.client = unisql.New(opts...)
	return nil
}

// ExecuteContext runs the root command. Commands stop when ctx is cancelled.
func ExecuteContext(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
