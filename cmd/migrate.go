package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Rana718/ghseed/internal/migrator"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the seeded tables",
	Long: `
Create the users, repositories, releases, remote accounts and remote tokens
tables for the configured database. Running it again is a no-op; a schema
that changed since it was applied is reported as an error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		adapter, err := connect(ctx)
		if err != nil {
			return err
		}
		defer adapter.Close()

		migration, err := migrator.NewMigrator(adapter).Apply(ctx)
		if err != nil {
			return err
		}

		if migration.AppliedAt == nil {
			color.Yellow("✓ Schema already up to date (%s)", migration.ID)
			return nil
		}
		color.Green("✅ Applied %s", migration.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
