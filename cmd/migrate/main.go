package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"campus-lms/app/config"
	"campus-lms/app/database"

	"github.com/spf13/cobra"
)

var cfg *config.Config

func main() {
	cfg = config.Load()

	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema tool for Campus LMS",
	}
	rootCmd.PersistentFlags().StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "database driver (postgres or sqlite)")
	rootCmd.PersistentFlags().StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "database connection string")

	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(statusCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

// upCmd creates every missing table and index
var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply the schema",
	Run: func(cmd *cobra.Command, args []string) {
		config.InitDB(cfg)
		db := config.GetDB()
		defer db.Close()

		if err := database.RunMigrations(db); err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Schema is up to date")
	},
}

// statusCmd reports which tables exist
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which tables exist",
	Run: func(cmd *cobra.Command, args []string) {
		config.InitDB(cfg)
		db := config.GetDB()
		defer db.Close()

		status, err := database.MigrationStatus(db)
		if err != nil {
			fmt.Printf("Failed to read status: %v\n", err)
			os.Exit(1)
		}

		names := make([]string, 0, len(status))
		for name := range status {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			state := "pending"
			if status[name] {
				state = "applied"
			}
			fmt.Printf("%-14s %s\n", name, state)
		}
	},
}
