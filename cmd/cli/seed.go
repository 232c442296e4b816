package main

import (
	"fmt"

	"github.com/classhub/backend/internal/database"
	"github.com/classhub/backend/internal/seed"
	"github.com/spf13/cobra"
)

var seedMode string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long: `Seed the database. Mode "dev" creates a full set of staff, schemes,
lesson plans, reports, exams, substitutions and calendar events; mode "test"
creates only the three fixed test accounts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		seeder := seed.NewSeeder(database.DB)

		switch seedMode {
		case "dev":
			if err := seeder.SeedDev(); err != nil {
				return err
			}
		case "test":
			if err := seeder.SeedTest(); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown seed mode %q (want dev or test)", seedMode)
		}

		fmt.Printf("Database seeded (%s)\n", seedMode)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedMode, "mode", "dev", "Seed mode: dev or test")
}
