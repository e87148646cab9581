// main.go bootstraps cardstack: it builds the root Cobra command and executes it
// with a signal-aware context.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/peterkuimelis/cardstack/internal/config"
	"github.com/peterkuimelis/cardstack/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the validated options and logger to every subcommand.
type app struct {
	opts   *config.Options
	logger logr.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{opts: config.NewOptions(), logger: logr.Discard()}
	cmd := &cobra.Command{
		Use:           "cardstack",
		Short:         "Play a LIFO card stack locally or over the network",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.opts.Validate(); err != nil {
				return err
			}
			logger, err := logging.New(a.opts.LogLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}
	a.opts.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newHostCommand(a),
		newJoinCommand(a),
		newPlayCommand(a),
		newCardsCommand(),
	)
	config.BindViper(cmd)
	return cmd
}
