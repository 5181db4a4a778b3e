package main

import (
	"fmt"
	"log"
	"os"

	"campus-lms/app/config"
	"campus-lms/app/database"
	"campus-lms/app/models"
	"campus-lms/app/routes/auth"

	"github.com/spf13/cobra"
)

func main() {
	var email, name, password, role string

	cmd := &cobra.Command{
		Use:   "add_user",
		Short: "Create a password account",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, ok := models.ParseRole(role)
			if !ok {
				return fmt.Errorf("unknown role %q", role)
			}
			if len(password) < 8 {
				return fmt.Errorf("password must be at least 8 characters")
			}

			cfg := config.Load()
			if !database.SetDefaultLocale(cfg.DefaultLocale) {
				log.Printf("Invalid default locale %q, using %s", cfg.DefaultLocale, database.DefaultLocale)
			}
			config.InitDB(cfg)
			db := config.GetDB()
			defer db.Close()

			if err := database.RunMigrations(db); err != nil {
				return err
			}

			tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
			user, err := auth.NewService(db, tokens, cfg.BcryptCost).Register(email, name, password, r)
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}

			fmt.Printf("User created successfully: %s (%s) as %s\n", user.Name, user.Email, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringVar(&role, "role", string(models.RoleStudent), "STUDENT, LECTURER or ADMIN")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("password")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
