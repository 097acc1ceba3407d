package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/adfharrison1/go-bloodbank/pkg/config"
	"github.com/adfharrison1/go-bloodbank/pkg/server"
	"github.com/adfharrison1/go-bloodbank/pkg/storage"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API",
		Example: `  bloodbank serve                                        # godb file in the working directory, port 5000
  bloodbank serve --port 9090 --database-url memory://
  bloodbank serve --database-url 'godb:///var/lib/bloodbank/bank.godb?background_save=5m'
  bloodbank serve --database-url sqlite:///var/lib/bloodbank/bank.db
  DATABASE_URL=postgres://bank:secret@db/bloodbank PORT=8080 bloodbank serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, a)
		},
	}

	flags := cmd.Flags()
	flags.String("database-url", "godb://./bloodbank.godb", "document store connection string (memory://, godb://, sqlite://, postgres://)")
	flags.String("host", "0.0.0.0", "interface to listen on")
	flags.Int("port", 5000, "port to listen on")
	_ = a.v.BindPFlag(config.KeyDatabaseURL, flags.Lookup("database-url"))
	_ = a.v.BindPFlag(config.KeyHost, flags.Lookup("host"))
	_ = a.v.BindPFlag(config.KeyPort, flags.Lookup("port"))

	return cmd
}

func runServe(ctx context.Context, a *app) error {
	a.log.WithField("database", redact(a.cfg.DatabaseURL)).Info("Opening document store")
	store, err := storage.Open(ctx, a.cfg.DatabaseURL, a.log)
	if err != nil {
		return err
	}

	return server.NewServer(store, a.log).Run(ctx, a.cfg.Addr())
}
