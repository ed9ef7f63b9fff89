package main

import (
	"database/sql"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/vetclinic/internal/app"
	"github.com/MrJamesThe3rd/vetclinic/internal/config"
	"github.com/MrJamesThe3rd/vetclinic/internal/database"
)

func newRootCommand() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:           "clinicctl",
		Short:         "Administer the clinic backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if envFile == "" {
				_ = godotenv.Load()
				return nil
			}

			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("loading %s: %w", envFile, err)
			}

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default .env when present)")

	cmd.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newImportCommand(),
		newCountersCommand(),
		newExportCommand(),
	)

	return cmd
}

// withServices connects to the database without running migrations and
// hands the wired services to fn.
func withServices(fn func(*app.Services) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(app.NewServices(db, cfg))
}

func openDB() (*sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	return database.New(cfg.ConnectionString())
}
