package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Rana718/ghseed/internal/config"
	"github.com/Rana718/ghseed/internal/migrator"
	"github.com/Rana718/ghseed/internal/seeder"
)

var (
	seedUsers       int
	seedRepos       int
	seedEnabled     int
	seedPurge       bool
	seedIDStrategy  string
	seedSampling    string
	seedReleases    int
	seedRandomSeed  int64
	seedSkipMigrate bool
	seedIDStart     int64
	seedFirstUserID int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate and insert a synthetic dataset",
	Long: `
Generate users, repositories, remote accounts and releases and insert them
in a single transaction. Either the whole dataset is committed or nothing is.

Flags override the "seed" section of the config file.`,
	Example: `  ghseed seed --users 5 --repos-per-user 3 --enabled-repos 2 --purge
  ghseed seed --id-strategy random --sampling distinct --releases-per-repo 2
  ghseed seed --external-id-start 500000 --first-user-id 1000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		seedCfg := applySeedFlags(cmd, cfg.Seed)
		if err := seedCfg.Validate(); err != nil {
			return err
		}
		if err := seeder.CheckCapacity(seedCfg); err != nil {
			return err
		}

		ctx := cmd.Context()
		adapter, err := connect(ctx)
		if err != nil {
			return err
		}
		defer adapter.Close()

		if !seedSkipMigrate {
			if _, err := migrator.NewMigrator(adapter).Apply(ctx); err != nil {
				return err
			}
		}

		color.Cyan("🌱 Seeding %d users with %d repositories each...", seedCfg.UserCount, seedCfg.ReposPerUser)
		result, err := seeder.NewSeeder(adapter).Generate(ctx, seedCfg)
		if err != nil {
			color.Red("❌ Seed run rolled back")
			return err
		}

		if result.Purged {
			color.Yellow("🧹 Existing rows purged")
		}
		color.Green("✅ Seeded %s in %s", result, result.Duration.Round(time.Millisecond))
		fmt.Printf("   Snapshot entries: %d\n", result.SnapshotEntries)
		fmt.Printf("   Next external id: %d\n", result.NextExternalID)
		return nil
	},
}

// applySeedFlags overlays the flags the user actually set on base.
func applySeedFlags(cmd *cobra.Command, base config.SeedConfig) config.SeedConfig {
	flags := cmd.Flags()
	if flags.Changed("users") {
		base.UserCount = seedUsers
	}
	if flags.Changed("repos-per-user") {
		base.ReposPerUser = seedRepos
	}
	if flags.Changed("enabled-repos") {
		base.EnabledReposPerUser = seedEnabled
	}
	if flags.Changed("purge") {
		base.PurgeExisting = seedPurge
	}
	if flags.Changed("id-strategy") {
		base.ExternalIDStrategy = config.ExternalIDStrategy(seedIDStrategy)
	}
	if flags.Changed("sampling") {
		base.EnabledSampling = config.Sampling(seedSampling)
	}
	if flags.Changed("releases-per-repo") {
		base.ReleasesPerRepo = seedReleases
	}
	if flags.Changed("seed") {
		base.RandomSeed = seedRandomSeed
	}
	if flags.Changed("external-id-start") {
		base.ExternalIDStart = seedIDStart
	}
	if flags.Changed("first-user-id") {
		base.FirstUserID = seedFirstUserID
	}
	return base
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().IntVar(&seedUsers, "users", 10, "Number of users to generate")
	seedCmd.Flags().IntVar(&seedRepos, "repos-per-user", 10, "Repositories generated per user")
	seedCmd.Flags().IntVar(&seedEnabled, "enabled-repos", 5, "Repositories persisted per user")
	seedCmd.Flags().BoolVar(&seedPurge, "purge", false, "Delete all existing rows first")
	seedCmd.Flags().StringVar(&seedIDStrategy, "id-strategy", "sequential", "External id strategy: sequential or random")
	seedCmd.Flags().StringVar(&seedSampling, "sampling", "replacement", "Enabled repository sampling: replacement or distinct")
	seedCmd.Flags().IntVar(&seedReleases, "releases-per-repo", 0, "Releases generated per persisted repository")
	seedCmd.Flags().Int64Var(&seedRandomSeed, "seed", 0, "Random seed (0 seeds from the clock)")
	seedCmd.Flags().Int64Var(&seedIDStart, "external-id-start", 1, "First id of the sequential strategy")
	seedCmd.Flags().Int64Var(&seedFirstUserID, "first-user-id", 1, "First user id (0 continues after the largest stored id)")
	seedCmd.Flags().BoolVar(&seedSkipMigrate, "skip-migrate", false, "Do not create the schema before seeding")
}
