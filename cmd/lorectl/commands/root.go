package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"lorekeeper/internal/config"
	"lorekeeper/internal/printer"
	"lorekeeper/internal/repository/postgres"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "lorectl",
	Short: "Administer a lorekeeper deployment",
	Long: `lorectl runs maintenance tasks against the lorekeeper database:
schema migrations, block tag garbage collection, demo data and
inspection of the editor schema.

Configuration is read from the environment and from a .env file in the
working directory, the same way the server reads it.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		cfg = config.Load()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

func SetVersion(v string) {
	rootCmd.Version = v
}

func newPrinter(cmd *cobra.Command) *printer.Printer {
	return printer.New(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func requireDatabaseURL(p *printer.Printer) error {
	if cfg.SupabaseDBURL == "" {
		return p.Error("No database configured",
			"SUPABASE_DB_URL is empty.",
			"Export SUPABASE_DB_URL or add it to .env")
	}
	return nil
}

// openRepositories connects to the database and returns the shared
// repository config. The caller closes the pool.
func openRepositories(ctx context.Context, p *printer.Printer) (*pgxpool.Pool, *postgres.RepositoryConfig, error) {
	if err := requireDatabaseURL(p); err != nil {
		return nil, nil, err
	}
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		return nil, nil, p.Error("Cannot connect to database", err.Error())
	}
	return pool, &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: newLogger(),
	}, nil
}

// guardProduction refuses destructive commands in prod without --force.
func guardProduction(p *printer.Printer, force bool, what string) error {
	if cfg.Environment == "prod" && !force {
		return p.Error("Refusing to "+what+" in production",
			"ENVIRONMENT is prod.",
			"Re-run with --force if you really mean it")
	}
	return nil
}
