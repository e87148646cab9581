package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/cardstack/internal/game"
	"github.com/peterkuimelis/cardstack/internal/log"
	stacknet "github.com/peterkuimelis/cardstack/internal/net"
)

func newPlayCommand(a *app) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "play SCRIPT",
		Short: "Run a YAML stack script and print each round's results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rounds, err := game.LoadScript(args[0])
			if err != nil {
				return err
			}
			a.logger.V(1).Info("loaded script", "path", args[0], "rounds", len(rounds))
			cfg := game.StackConfig{
				PlayerHealth:   a.opts.PlayerHealth,
				OpponentHealth: a.opts.OpponentHealth,
			}
			stack := playScript(cmd.OutOrStdout(), rounds, cfg, verbose)
			a.logger.Info("script finished",
				"rounds", stack.Round,
				"playerHealth", stack.PlayerHealth,
				"opponentHealth", stack.OpponentHealth,
			)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every stack event")
	return cmd
}

// playScript pushes and resolves each round on one stack, so health carries
// across rounds.
func playScript(w io.Writer, rounds []game.Round, cfg game.StackConfig, verbose bool) *game.Stack {
	if verbose {
		cfg.Logger = log.NewTextLogger(w)
	}
	stack := game.NewStackWithConfig(cfg)
	for _, round := range rounds {
		fmt.Fprintf(w, "== %s ==\n", round.Name)
		for _, card := range round.Cards {
			stack.Add(card)
		}
		fmt.Fprint(w, stacknet.FormatResults(stack.Resolve()))
	}
	fmt.Fprintf(w, "Final: player %d, opponent %d\n", stack.PlayerHealth, stack.OpponentHealth)
	return stack
}

func newCardsCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "List the known cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCards(cmd.OutOrStdout(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print cards in their JSON form")
	return cmd
}

func listCards(w io.Writer, asJSON bool) error {
	cards := game.RegistryCards()
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cards)
	}
	for _, card := range cards {
		fmt.Fprintln(w, card.DisplayString())
	}
	return nil
}
