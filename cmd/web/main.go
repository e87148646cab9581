package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/cardstack/internal/config"
	"github.com/peterkuimelis/cardstack/internal/logging"
	"github.com/peterkuimelis/cardstack/internal/session"
	"github.com/peterkuimelis/cardstack/internal/web"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	opts := config.NewOptions()
	cmd := &cobra.Command{
		Use:           "cardstack-web",
		Short:         "Serve the stack over HTTP and websockets",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			logger, err := logging.New(opts.LogLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			sess := session.New(session.Config{
				PlayerHealth:   opts.PlayerHealth,
				OpponentHealth: opts.OpponentHealth,
				Logger:         logger,
			})
			srv := web.NewServer(sess, logger, opts.OriginPatterns)
			fmt.Fprintf(cmd.OutOrStdout(), "cardstack listening on http://%s\n", opts.HTTPAddr)
			return srv.ListenAndServe(cmd.Context(), opts.HTTPAddr)
		},
	}
	opts.BindFlags(cmd.Flags())
	config.BindViper(cmd)
	return cmd
}
