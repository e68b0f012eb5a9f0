package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dshills/atscritic/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scorer over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), a)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":8080", "Listen address")
	flags.Int("rate-limit", 60, "Requests per client per window (0 disables)")
	bind(a.v, "server.addr", flags.Lookup("addr"))
	bind(a.v, "server.rate-limit", flags.Lookup("rate-limit"))
	return cmd
}

func runServe(ctx context.Context, a *app) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := a.scorer()
	if err != nil {
		return err
	}
	srv := server.New(s, server.Options{
		Config:   a.cfg.Server,
		Version:  version,
		Parallel: a.cfg.Parallel,
		Logger:   a.log,
	})
	if err := srv.Listen(ctx); err != nil {
		return exitError(exitGeneric, "%v", err)
	}
	return nil
}
