// Package console drives an fsm.Machine from line-oriented text commands.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dmitrymomot/fsmkit/pkg/fsm"
	"github.com/dmitrymomot/fsmkit/pkg/fsmviz"
	"github.com/dmitrymomot/fsmkit/pkg/logger"
)

const helpText = `commands:
  state              print the current state
  trigger <event>    follow the current state's transition for event
  change <state>     jump directly to state
  undo               return to the previous state
  redo               reapply the last undone state
  reset              return to the initial state (history kept)
  states [event]     list all states, or those handling event
  events             list events the current state handles
  history            show undo and redo stacks
  clear              clear undo and redo history
  dot                print the graph as Graphviz DOT
  mermaid            print the graph as a Mermaid diagram
  help               print this help
  quit               end the session`

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used to record executed commands.
// Records are tagged with component=console.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPrompt prints prompt before reading each line. Empty disables it.
func WithPrompt(prompt string) Option {
	return func(s *Session) {
		s.prompt = prompt
	}
}

// Session executes commands against a single machine. Like the machine it
// drives, a Session is meant for one goroutine.
type Session struct {
	machine *fsm.Machine
	logger  *slog.Logger
	prompt  string
}

// NewSession creates a session over m.
func NewSession(m *fsm.Machine, opts ...Option) *Session {
	s := &Session{
		machine: m,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("console"))
	return s
}

// Run reads commands from in until EOF, quit, or ctx is done, writing replies to out.
// Command failures are reported to out and the session continues; only I/O
// failures and context cancellation end it with an error.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.prompt != "" {
			if _, err := io.WriteString(out, s.prompt); err != nil {
				return err
			}
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		reply, quit, err := s.Exec(ctx, scanner.Text())
		if err != nil {
			reply = "error: " + err.Error()
		}
		if reply != "" {
			if _, werr := fmt.Fprintln(out, reply); werr != nil {
				return werr
			}
		}
		if quit {
			return nil
		}
	}
}

// Exec runs a single command line and returns the text to show the user.
// Blank lines and lines starting with '#' do nothing.
func (s *Session) Exec(ctx context.Context, line string) (reply string, quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return "", false, nil
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	from := s.machine.State()

	reply, quit, err = s.dispatch(cmd, args)

	attrs := []slog.Attr{
		logger.Command(cmd),
		logger.FromState(from),
		logger.ToState(s.machine.State()),
	}
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "command failed", append(attrs, logger.Error(err))...)
	} else {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "command executed", attrs...)
	}
	return reply, quit, err
}

func (s *Session) dispatch(cmd string, args []string) (string, bool, error) {
	m := s.machine

	switch cmd {
	case "state":
		if err := argCount(cmd, args, 0, 0); err != nil {
			return "", false, err
		}
		return m.State(), false, nil

	case "trigger":
		if err := argCount(cmd, args, 1, 1); err != nil {
			return "", false, err
		}
		if err := m.Trigger(args[0]); err != nil {
			return "", false, err
		}
		return m.State(), false, nil

	case "change":
		if err := argCount(cmd, args, 1, 1); err != nil {
			return "", false, err
		}
		if _, err := m.ChangeState(args[0]); err != nil {
			return "", false, err
		}
		return m.State(), false, nil

	case "undo":
		if err := argCount(cmd, args, 0, 0); err != nil {
			return "", false, err
		}
		if !m.Undo() {
			return "nothing to undo", false, nil
		}
		return m.State(), false, nil

	case "redo":
		if err := argCount(cmd, args, 0, 0); err != nil {
			return "", false, err
		}
		if !m.Redo() {
			if len(m.History().Redo) > 0 {
				return "redo locked by a forward move", false, nil
			}
			return "nothing to redo", false, nil
		}
		return m.State(), false, nil

	case "reset":
		if err := argCount(cmd, args, 0, 0); err != nil {
			return "", false, err
		}
		m.Reset()
		return m.State(), false, nil

	case "states":
		if err := argCount(cmd, args, 0, 1); err != nil {
			return "", false, err
		}
		if len(args) == 0 {
			return strings.Join(m.States(), " "), false, nil
		}
		return strings.Join(m.StatesOn(args[0]), " "), false, nil

	case "events":
		if err := argCount(cmd, args, 0, 0); err != nil {
			return "", false, err
		}
		return strings.Join(m.AvailableEvents(), " "), false, nil

	case "history":
		if err := argCount(cmd, args, 0, 0); err != nil {
			return "", false, err
		}
		h := m.History()
		return fmt.Sprintf("undo: %s\nredo: %s\nredo locked: %s",
			strings.Join(h.Undo, " "),
			strings.Join(h.Redo, " "),
			strconv.FormatBool(h.RedoSuppressed),
		), false, nil

	case "clear":
		if err := argCount(cmd, args, 0, 0); err != nil {
			return "", false, err
		}
		m.ClearHistory()
		return "history cleared", false, nil

	case "dot":
		if err := argCount(cmd, args, 0, 0); err != nil {
			return "", false, err
		}
		return strings.TrimSuffix(fsmviz.DOT(m.Config(), m.State()), "\n"), false, nil

	case "mermaid":
		if err := argCount(cmd, args, 0, 0); err != nil {
			return "", false, err
		}
		return strings.TrimSuffix(fsmviz.Mermaid(m.Config()), "\n"), false, nil

	case "help", "?":
		return helpText, false, nil

	case "quit", "exit":
		return "bye", true, nil
	}

	return "", false, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
}

func argCount(cmd string, args []string, lo, hi int) error {
	switch {
	case len(args) < lo:
		return fmt.Errorf("%w: %s", ErrMissingArgument, cmd)
	case len(args) > hi:
		return fmt.Errorf("%w: %s", ErrTooManyArgs, cmd)
	}
	return nil
}
