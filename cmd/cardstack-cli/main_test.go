package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/peterkuimelis/cardstack/internal/game"
)

const script = `
rounds:
  - name: burn
    cards:
      - name: Shock
        count: 2
      - name: Lightning Bolt
  - name: answer
    cards:
      - name: Lava Axe
      - name: Counterspell
`

func TestPlayScriptCarriesHealthAcrossRounds(t *testing.T) {
	rounds, err := game.ParseScript([]byte(script))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var out bytes.Buffer
	stack := playScript(&out, rounds, game.StackConfig{}, false)

	if stack.Round != 2 || stack.OpponentHealth != 13 {
		t.Errorf("unexpected final stack: round %d, opponent %d", stack.Round, stack.OpponentHealth)
	}
	text := out.String()
	for _, want := range []string{"== burn ==", "== answer ==", "Countered Lava Axe", "Final: player 20, opponent 13"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, text)
		}
	}
}

func TestPlayScriptVerbose(t *testing.T) {
	rounds, err := game.ParseScript([]byte(script))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var out bytes.Buffer
	playScript(&out, rounds, game.StackConfig{OpponentHealth: 5}, true)

	text := out.String()
	if !strings.Contains(text, "CardAdded") || !strings.Contains(text, "Countered") {
		t.Errorf("expected event lines in verbose output, got:\n%s", text)
	}
	if !strings.Contains(text, "opponent 0") {
		t.Errorf("expected opponent health to floor at 0, got:\n%s", text)
	}
}

func TestRootCommandPlayAndCards(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"play", path, "--opponent-health", "30", "--log-level", "error"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("play: %v", err)
	}
	if !strings.Contains(out.String(), "Final: player 20, opponent 23") {
		t.Errorf("unexpected play output:\n%s", out.String())
	}

	out.Reset()
	cmd = newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"cards", "--json"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("cards: %v", err)
	}
	var cards []game.Card
	if err := json.Unmarshal(out.Bytes(), &cards); err != nil {
		t.Fatalf("decode cards: %v", err)
	}
	if len(cards) != len(game.RegistryNames()) {
		t.Errorf("expected %d cards, got %d", len(game.RegistryNames()), len(cards))
	}
}

func TestRootCommandRejectsBadOptions(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"cards", "--log-level", "loud"})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "log-level") {
		t.Errorf("expected log level error, got %v", err)
	}
}
