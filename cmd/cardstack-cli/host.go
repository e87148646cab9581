package main

import (
	"context"
	"errors"
	"net"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	stacknet "github.com/peterkuimelis/cardstack/internal/net"
	"github.com/peterkuimelis/cardstack/internal/session"
)

func newHostCommand(a *app) *cobra.Command {
	var headless bool
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Start a stack server and play from this terminal",
		Long: "host serves the stack protocol on --listen. Other players join with " +
			"`cardstack join --addr HOST:PORT`; unless --headless is set the host plays from this terminal too.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := session.New(session.Config{
				PlayerHealth:   a.opts.PlayerHealth,
				OpponentHealth: a.opts.OpponentHealth,
				Logger:         a.logger,
			})
			srv := &stacknet.Server{Addr: a.opts.ListenAddr, Session: sess, Logger: a.logger}
			if headless {
				return srv.Run(cmd.Context())
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			hostConn, serverConn := net.Pipe()

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error { return srv.Run(ctx) })
			g.Go(func() error {
				srv.ServeConn(ctx, serverConn)
				return nil
			})
			g.Go(func() error {
				// Leaving the REPL stops the server.
				defer cancel()
				return stacknet.NewClient(hostConn, cmd.InOrStdin(), cmd.OutOrStdout()).RunREPL(ctx)
			})
			err := g.Wait()
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&headless, "headless", false, "Serve without a local REPL")
	return cmd
}

func newJoinCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "join",
		Short: "Connect to a stack server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.logger.V(1).Info("joining", "addr", a.opts.ServerAddr)
			err := stacknet.Connect(cmd.Context(), a.opts.ServerAddr)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
