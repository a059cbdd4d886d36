package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	seederrors "github.com/Rana718/ghseed/internal/errors"
	"github.com/Rana718/ghseed/internal/migrator"
	"github.com/Rana718/ghseed/internal/seeder"
	"github.com/Rana718/ghseed/internal/utils"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete all seeded rows",
	Long: `
Delete every row from the five seeded tables in dependency order:
tokens, accounts, releases, repositories, users.

⚠️  WARNING: This permanently deletes all data in those tables!

Use --force to skip the confirmation prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !utils.AskConfirmation(os.Stdin, os.Stdout, "Delete all rows from the seeded tables?", force) {
			color.Yellow("Purge cancelled")
			return nil
		}

		ctx := cmd.Context()
		adapter, err := connect(ctx)
		if err != nil {
			return err
		}
		defer adapter.Close()

		status, err := migrator.NewMigrator(adapter).Status(ctx)
		if err != nil {
			return err
		}
		if !status.Applied {
			color.Yellow("Run 'ghseed migrate' to create the tables.")
			return seederrors.NewConfigurationError("schema not applied",
				"the seeded tables do not exist yet")
		}

		if err := seeder.NewSeeder(adapter).Purge(ctx); err != nil {
			return err
		}
		color.Green("✅ All seeded tables are empty")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(purgeCmd)
}
