package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Rana718/ghseed/internal/migrator"
	"github.com/Rana718/ghseed/internal/models"
	"github.com/Rana718/ghseed/internal/seeder"
)

var statusOutput string

// statusReport is what the status command prints.
type statusReport struct {
	Provider  string              `json:"provider" yaml:"provider"`
	Migration *migrator.Migration `json:"migration" yaml:"migration"`
	Tables    []tableCount        `json:"tables,omitempty" yaml:"tables,omitempty"`
}

type tableCount struct {
	Table string `json:"table" yaml:"table"`
	Rows  int64  `json:"rows" yaml:"rows"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show schema status and row counts",
	Long: `Show whether the schema has been applied and how many rows each of
the seeded tables holds.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if statusOutput != "table" && statusOutput != "yaml" && statusOutput != "json" {
			return fmt.Errorf("unknown output format %q: use table, yaml or json", statusOutput)
		}

		ctx := cmd.Context()
		adapter, err := connect(ctx)
		if err != nil {
			return err
		}
		defer adapter.Close()

		migration, err := migrator.NewMigrator(adapter).Status(ctx)
		if err != nil {
			return err
		}

		report := statusReport{Provider: adapter.Provider(), Migration: migration}
		if migration.Applied {
			counts, err := seeder.NewSeeder(adapter).Counts(ctx)
			if err != nil {
				return err
			}
			for _, table := range models.Tables {
				report.Tables = append(report.Tables, tableCount{Table: table, Rows: counts[table]})
			}
		}

		return renderStatus(os.Stdout, statusOutput, report)
	},
}

func renderStatus(w io.Writer, format string, report statusReport) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(report)
	}

	fmt.Fprintf(w, "Provider:  %s\n", report.Provider)
	if report.Migration.Applied {
		fmt.Fprintf(w, "Schema:    %s %s\n", report.Migration.ID, color.GreenString("applied"))
	} else {
		fmt.Fprintf(w, "Schema:    %s %s\n", report.Migration.ID, color.YellowString("pending"))
		fmt.Fprintln(w, "Run 'ghseed migrate' to create the tables.")
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-28s %10s\n", "TABLE", "ROWS")
	for _, t := range report.Tables {
		fmt.Fprintf(w, "%-28s %10d\n", t.Table, t.Rows)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "table", "Output format: table, yaml or json")
}
