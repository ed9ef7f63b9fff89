package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/vetclinic/internal/app"
	"github.com/MrJamesThe3rd/vetclinic/internal/config"
)

func newServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("port") {
				cfg.App.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := app.Open(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			return app.Serve(ctx, cfg, app.NewServices(db, cfg).Handler(cfg))
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides PORT)")

	return cmd
}
