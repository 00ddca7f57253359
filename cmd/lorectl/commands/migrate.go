package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lorekeeper/internal/migrations"
	"lorekeeper/internal/printer"
)

var (
	migrateDownSteps int
	migrateForce     bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		m, err := openMigrator(p)
		if err != nil {
			return err
		}
		defer m.Close()

		p.Step("applying migrations (prefix %q)", cfg.TablePrefix)
		if err := m.Up(); err != nil {
			return p.Error("Migration failed", err.Error(),
				"Check the version with 'lorectl migrate version'")
		}
		return printVersion(p, m)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		if err := guardProduction(p, migrateForce, "roll back migrations"); err != nil {
			return err
		}
		m, err := openMigrator(p)
		if err != nil {
			return err
		}
		defer m.Close()

		p.Step("rolling back %d migration(s)", migrateDownSteps)
		if err := m.Down(migrateDownSteps); err != nil {
			return p.Error("Rollback failed", err.Error())
		}
		return printVersion(p, m)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		m, err := openMigrator(p)
		if err != nil {
			return err
		}
		defer m.Close()
		return printVersion(p, m)
	},
}

func openMigrator(p *printer.Printer) (*migrations.Migrator, error) {
	if err := requireDatabaseURL(p); err != nil {
		return nil, err
	}
	m, err := migrations.New(cfg.SupabaseDBURL, cfg.TablePrefix, newLogger())
	if err != nil {
		return nil, p.Error("Cannot open migrations", err.Error())
	}
	return m, nil
}

func printVersion(p *printer.Printer, m *migrations.Migrator) error {
	version, dirty, err := m.Version()
	if err != nil {
		return p.Error("Cannot read schema version", err.Error())
	}
	if dirty {
		p.Warning("schema version %d is dirty; fix the failed migration and force the version", version)
		return fmt.Errorf("dirty schema")
	}
	p.Success("schema at version %s", strconv.FormatUint(uint64(version), 10))
	return nil
}

func init() {
	migrateDownCmd.Flags().IntVar(&migrateDownSteps, "steps", 1, "number of migrations to roll back")
	migrateDownCmd.Flags().BoolVar(&migrateForce, "force", false, "allow rollback when ENVIRONMENT=prod")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}
