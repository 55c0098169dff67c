package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"mealplan/internal/infrastructure/migration"
	"mealplan/internal/interfaces/cli/cliutil"
)

const defaultScriptsDir = "./internal/infrastructure/migration/scripts"

func NewCommand(flags *cliutil.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	cmd.AddCommand(
		newUpCommand(flags),
		newDownCommand(flags),
		newStatusCommand(flags),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand(flags *cliutil.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := cliutil.Bootstrap(*flags, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			rt.Log.Infow("running up migrations", "environment", rt.Env)
			if err := migration.NewManager(&rt.Config.Database, rt.Log).Migrate(rt.DB); err != nil {
				return err
			}
			rt.Log.Infow("migrations completed successfully")
			return nil
		},
	}
}

func newDownCommand(flags *cliutil.Flags) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, versioned, err := openVersioned(flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			rt.Log.Infow("running down migrations", "environment", rt.Env, "steps", steps)
			if err := versioned.MigrateDown(rt.DB, steps); err != nil {
				rt.Log.Errorw("down migration failed", "error", err)
				return fmt.Errorf("down migration failed: %w", err)
			}
			rt.Log.Infow("down migration completed successfully")
			return nil
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand(flags *cliutil.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, versioned, err := openVersioned(flags)
			if err != nil {
				return err
			}
			defer rt.Close()

			version, err := versioned.GetVersion(rt.DB)
			if err != nil {
				return fmt.Errorf("failed to get migration version: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nMigration Status:\n")
			fmt.Fprintf(out, "  Environment:     %s\n", rt.Env)
			fmt.Fprintf(out, "  Current Version: %d\n", version)

			if err := versioned.Status(rt.DB); err != nil {
				return fmt.Errorf("failed to get detailed status: %w", err)
			}
			return nil
		},
	}
}

func newCreateCommand() *cobra.Command {
	var (
		name string
		dir  string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a new SQL migration file with the specified name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := migration.Create(dir, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migration '%s' created in %s\n", name, dir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	cmd.Flags().StringVar(&dir, "dir", defaultScriptsDir, "Directory holding the SQL scripts")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// openVersioned bootstraps with a database and returns the goose strategy.
// SQLite schemas come from AutoMigrate and carry no version table.
func openVersioned(flags *cliutil.Flags) (*cliutil.Runtime, migration.VersionedStrategy, error) {
	rt, err := cliutil.Bootstrap(*flags, true)
	if err != nil {
		return nil, nil, err
	}
	manager := migration.NewManager(&rt.Config.Database, rt.Log)
	versioned, ok := manager.Versioned()
	if !ok {
		rt.Close()
		return nil, nil, fmt.Errorf("strategy %s does not track versions", manager.GetStrategy().GetName())
	}
	return rt, versioned, nil
}
