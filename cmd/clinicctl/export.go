package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/vetclinic/internal/app"
)

func newExportCommand() *cobra.Command {
	var from, to, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a zip of invoices for a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fromDate, err := parseDateFlag("from", from)
			if err != nil {
				return err
			}

			toDate, err := parseDateFlag("to", to)
			if err != nil {
				return err
			}

			return withServices(func(svc *app.Services) error {
				report, err := svc.Export.Export(cmd.Context(), fromDate, toDate)
				if err != nil {
					return err
				}

				path := out
				if path == "" {
					path = report.FileName()
				}

				f, err := os.Create(path)
				if err != nil {
					return err
				}
				defer f.Close()

				if err := svc.Export.WriteZip(f, report); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d invoice(s) to %s\n", len(report.Invoices), path)

				return f.Close()
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first invoice date, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last invoice date, YYYY-MM-DD")
	cmd.Flags().StringVarP(&out, "output", "o", "", "archive path (default derived from the range)")

	return cmd
}

func parseDateFlag(name, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, fmt.Errorf("--%s must be YYYY-MM-DD", name)
	}

	return &t, nil
}
