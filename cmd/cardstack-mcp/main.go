package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/peterkuimelis/cardstack/internal/config"
	"github.com/peterkuimelis/cardstack/internal/logging"
	stackmcp "github.com/peterkuimelis/cardstack/internal/mcp"
	stacknet "github.com/peterkuimelis/cardstack/internal/net"
	"github.com/peterkuimelis/cardstack/internal/session"
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
	var serveTCP bool
	cmd := &cobra.Command{
		Use:           "cardstack-mcp",
		Short:         "Expose the stack as MCP tools over stdio",
		Long:          "Stdout carries the MCP protocol, so logs go to stderr.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			logger, err := logging.New(opts.LogLevel, os.Stderr)
			if err != nil {
				return err
			}
			sess := session.New(session.Config{
				PlayerHealth:   opts.PlayerHealth,
				OpponentHealth: opts.OpponentHealth,
				Logger:         logger,
			})

			s := server.NewMCPServer("cardstack", "1.0.0", server.WithToolCapabilities(false))
			stackmcp.NewToolSession(sess).RegisterTools(s)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			g, ctx := errgroup.WithContext(ctx)
			if serveTCP {
				// Human players join the same stack with `cardstack join`.
				srv := &stacknet.Server{Addr: opts.ListenAddr, Session: sess, Logger: logger}
				g.Go(func() error { return srv.Run(ctx) })
			}
			g.Go(func() error {
				defer cancel()
				return server.ServeStdio(s)
			})
			err = g.Wait()
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	opts.BindFlags(cmd.Flags())
	cmd.Flags().BoolVar(&serveTCP, "serve-tcp", false, "Also serve the stack protocol on --listen for human players")
	config.BindViper(cmd)
	return cmd
}
