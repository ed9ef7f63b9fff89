package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/vetclinic/internal/app"
	"github.com/MrJamesThe3rd/vetclinic/internal/importer"
)

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "import {patients|invoices} FILE",
		Short:     "Load patients or invoices from a clinic CSV export",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(importer.KindPatients), string(importer.KindInvoices)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := importer.ParseKind(args[0])
			if !ok {
				return fmt.Errorf("unknown import kind %q: want patients or invoices", args[0])
			}

			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			return withServices(func(svc *app.Services) error {
				res, err := svc.Import.Import(cmd.Context(), kind, f)
				if err != nil {
					return err
				}

				printImportResult(cmd.OutOrStdout(), res)

				return nil
			})
		},
	}
}

func printImportResult(w io.Writer, res *importer.Result) {
	fmt.Fprintf(w, "%s (%s): %d rows, %d inserted, %d skipped, %d rejected\n",
		res.Kind, res.Charset, res.Rows, res.Inserted, res.Skipped, len(res.Rejected))

	for _, re := range res.Rejected {
		fmt.Fprintf(w, "  %s\n", re.Error())
	}
}
