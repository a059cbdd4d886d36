package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Rana718/ghseed/internal/config"
	"github.com/Rana718/ghseed/internal/logger"
	"github.com/Rana718/ghseed/internal/models"
)

var (
	cfgFile  string
	logLevel string
	Version  = "0.3.0"

	// cfg is loaded once per invocation before any subcommand runs.
	cfg *config.Config
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════╗",
		"║   🌱 ghseed                                   ║",
		"║   Synthetic GitHub integration datasets      ║",
		"╚══════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("   ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "ghseed",
	Short: "Seed a database with synthetic users, repositories and OAuth accounts",
	Long: `
ghseed fills a relational store with synthetic test data for a GitHub
integration: users, their external repositories, releases and the OAuth
remote accounts that snapshot each user's repositories.

Database Support:
- PostgreSQL (pgx or lib/pq)
- MySQL
- SQLite`,

	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("ghseed version %s\n", Version)
			return
		}

		showBanner()
		fmt.Println()
		cmd.Help()
	},
}

// Execute runs the CLI. SIGINT and SIGTERM cancel the context, which rolls
// back any open transaction.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ghseed.config.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolP("force", "f", false, "Skip confirmations")

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("ghseed.config")
	}

	viper.SetEnvPrefix("GHSEED")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.ReadInConfig()
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.Logger.Level = logLevel
	}

	if err := loaded.ValidateConnection(); err != nil {
		return err
	}
	if err := logger.Init(loaded.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	models.SetTokenSecret(loaded.TokenSecret)

	cfg = loaded
	return nil
}
