package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/vetclinic/internal/app"
	"github.com/MrJamesThe3rd/vetclinic/internal/counter"
)

func newCountersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "counters",
		Short: "Show the next patient and invoice numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(func(svc *app.Services) error {
				counters, err := svc.Counters.List(cmd.Context())
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), countersTable(counters))

				return nil
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "ensure {invoice|patient} VALUE",
		Short:     "Raise a counter so the next issued number is at least VALUE",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{counter.KeyInvoice, counter.KeyPatient},
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil || value < 1 {
				return fmt.Errorf("invalid counter value %q", args[1])
			}

			return withServices(func(svc *app.Services) error {
				return svc.Counters.Ensure(cmd.Context(), args[0], value)
			})
		},
	})

	return cmd
}

func countersTable(counters []counter.Counter) string {
	t := table.New().Headers("KEY", "NEXT")

	for _, c := range counters {
		t.Row(c.Key, strconv.FormatInt(c.Value, 10))
	}

	return t.Render()
}
