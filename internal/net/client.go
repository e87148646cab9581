package net

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-shellwords"

	"github.com/peterkuimelis/cardstack/internal/game"
)

var (
	colorError   = color.New(color.FgRed).SprintFunc()
	colorResult  = color.New(color.FgGreen).SprintFunc()
	colorFizzled = color.New(color.FgYellow).SprintFunc()
	colorNotify  = color.New(color.Faint).SprintFunc()
)

const replHelp = `Commands:
  add NAME          add a registry card by name
  add-json {...}    add a card given as JSON
  resolve           resolve the stack
  state             show health totals and pending cards
  cards             list registry cards
  quit              disconnect`

// Client connects to a stack server and provides a terminal REPL.
type Client struct {
	conn net.Conn
	in   io.Reader
	out  io.Writer

	outMu sync.Mutex
}

// NewClient wraps an established connection.
func NewClient(conn net.Conn, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: in, out: out}
}

// Connect dials a server and runs the REPL on stdin/stdout.
func Connect(ctx context.Context, addr string) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	fmt.Printf("Connected to %s. Type help for commands.\n", addr)
	return NewClient(conn, os.Stdin, os.Stdout).RunREPL(ctx)
}

// RunREPL sends commands read from c.in and renders server messages to c.out
// until quit, end of input, or the server goes away.
func (c *Client) RunREPL(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, func() { c.conn.Close() })
	defer stop()

	serverDone := make(chan error, 1)
	go func() { serverDone <- c.readLoop() }()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	enc := json.NewEncoder(c.conn)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-serverDone:
			return err
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			msg, quit, err := c.parseLine(line)
			if quit {
				return nil
			}
			if err != nil {
				c.printf("%s\n", colorError(err.Error()))
				continue
			}
			if msg == nil {
				continue
			}
			if err := enc.Encode(msg); err != nil {
				return fmt.Errorf("send %s: %w", msg.Type, err)
			}
		}
	}
}

// parseLine turns one REPL line into a message. A nil message with no error
// means the line was handled locally.
func (c *Client) parseLine(line string) (*ClientMessage, bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false, nil
	}
	// JSON payloads keep their quotes, so they bypass word splitting.
	if rest, ok := strings.CutPrefix(line, "add-json"); ok {
		var card game.Card
		if err := json.Unmarshal([]byte(strings.TrimSpace(rest)), &card); err != nil {
			return nil, false, err
		}
		return &ClientMessage{Type: TypeAddCard, Card: &card}, false, nil
	}

	words, err := shellwords.Parse(line)
	if err != nil {
		return nil, false, fmt.Errorf("parse command: %w", err)
	}
	if len(words) == 0 {
		return nil, false, nil
	}
	switch strings.ToLower(words[0]) {
	case "add":
		if len(words) < 2 {
			return nil, false, errors.New("usage: add NAME")
		}
		return &ClientMessage{Type: TypeAddCard, Name: strings.Join(words[1:], " ")}, false, nil
	case "resolve":
		return &ClientMessage{Type: TypeResolve}, false, nil
	case "state":
		return &ClientMessage{Type: TypeState}, false, nil
	case "cards":
		return &ClientMessage{Type: TypeCards}, false, nil
	case "quit", "exit":
		return nil, true, nil
	case "help":
		c.printf("%s\n", replHelp)
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("unknown command %q (try help)", words[0])
	}
}

func (c *Client) readLoop() error {
	dec := json.NewDecoder(c.conn)
	for {
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}
		c.render(msg)
	}
}

func (c *Client) render(msg ServerMessage) {
	switch msg.Type {
	case TypeAck:
		c.printf("%s\n", msg.Status)
	case TypeError:
		c.printf("%s\n", colorError("error: "+msg.Error))
	case TypeNotify:
		if msg.Event != nil {
			c.printf("%s\n", colorNotify(formatEventView(msg.Event)))
		}
	case TypeResults:
		c.printf("%s", FormatResults(msg.Results))
	case TypeState:
		if msg.State != nil {
			st := msg.State
			c.printf("Round %d | Player %d | Opponent %d | %d pending\n",
				st.Round, st.PlayerHealth, st.OpponentHealth, len(st.Pending))
			for i, card := range st.Pending {
				c.printf("  %d) %s\n", i+1, card.DisplayString())
			}
		}
	case TypeCards:
		for _, card := range msg.Cards {
			c.printf("  %s\n", card.DisplayString())
		}
	}
}

func (c *Client) printf(format string, args ...any) {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

// formatEventView mirrors log.FormatEvent for events received over the wire.
func formatEventView(ev *EventView) string {
	kind := ev.Type
	for len(kind) < 16 {
		kind += " "
	}
	return fmt.Sprintf("R%-2d %s| %s", ev.Round, kind, ev.Details)
}

// FormatResults renders a result log, one line per entry.
func FormatResults(results []game.ResolutionResult) string {
	if len(results) == 0 {
		return "Stack was empty.\n"
	}
	var b strings.Builder
	for i, r := range results {
		result := colorResult(r.Result)
		if r.Result == game.ResultFizzled {
			result = colorFizzled(r.Result)
		}
		fmt.Fprintf(&b, "%2d. %-16s %s (player %d, opponent %d)\n",
			i+1, r.Card.Name, result, r.PlayerHealth, r.OpponentHealth)
	}
	return b.String()
}
