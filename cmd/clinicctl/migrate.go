package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/vetclinic/internal/database"
)

func newMigrateCommand() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if list {
				migrations, err := database.LoadMigrations()
				if err != nil {
					return err
				}

				for _, m := range migrations {
					fmt.Fprintf(out, "%03d  %s\n", m.Version, m.Name)
				}

				return nil
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := database.Migrate(cmd.Context(), db)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "applied %d migration(s)\n", applied)

			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "list embedded migrations without applying them")

	return cmd
}
