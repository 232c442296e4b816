package main

import (
	"fmt"
	"log"
	"os"

	"github.com/classhub/backend/internal/database"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "classhub",
	Short: "Classhub CLI - administer the school backend",
	Long: `Classhub CLI provides command-line administration for the school
backend: seeding data, managing staff accounts and roles.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		godotenv.Load()
		if err := database.Initialize(); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		if err := database.Migrate(); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		database.Close()
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(usersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
