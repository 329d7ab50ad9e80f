// Package console implements the interactive command loop around a lifecycle machine.
package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/enetx/g"
	"gopkg.in/yaml.v3"

	"github.com/enetx/lifecycle"
)

// ErrInvalidCommand is returned by Execute for input that is not a known command.
var ErrInvalidCommand = errors.New("console: invalid command")

const helpText = `Commands:
  start, succeed, fail, reset   fire a transition
  state                         print the current state
  status                        print the machine status as JSON
  describe                      print the transition table as YAML
  dot                           print the lifecycle as a Graphviz graph
  help                          show this help
  exit, quit                    leave
`

// Session maps typed commands onto a lifecycle machine and echoes the results.
type Session struct {
	machine lifecycle.StateMachine
	out     io.Writer
	logger  *slog.Logger
}

func NewSession(m lifecycle.StateMachine, out io.Writer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{machine: m, out: out, logger: logger}
}

// Run prints the initial state and executes commands from in until exit, end of
// input or context cancellation. Transition errors are reported and do not stop the loop.
func (s *Session) Run(ctx context.Context, in LineReader) error {
	s.printf("Initial state: %s\n", s.machine.Current())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := readLine(ctx, in)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			if errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("failed to read command: %w", err)
		}

		done, err := s.Execute(ctx, line)
		if err != nil {
			s.logger.DebugContext(ctx, "command rejected", "command", line, "error", err)
		}

		if done {
			return nil
		}
	}
}

type lineResult struct {
	line string
	err  error
}

// readLine waits for the next line from in or for ctx to be done, whichever
// comes first. A read abandoned on cancellation finishes in the background.
func readLine(ctx context.Context, in LineReader) (string, error) {
	ch := make(chan lineResult, 1)

	go func() {
		line, err := in.ReadLine()
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}

// Execute runs a single command line. done is true when the user asked to leave.
func (s *Session) Execute(ctx context.Context, line string) (done bool, err error) {
	cmd := g.String(line).Trim().Lower()

	switch cmd {
	case "":
		return false, nil
	case "exit", "quit":
		return true, nil
	case "help":
		s.printf("%s", helpText)
		return false, nil
	case "state":
		s.printState()
		return false, nil
	case "status":
		return false, s.printStatus()
	case "describe":
		return false, s.describe()
	case "dot":
		s.printf("%s", string(s.machine.ToDOT()))
		return false, nil
	}

	t, err := lifecycle.ParseTransition(cmd)
	if err != nil {
		s.printf("Invalid command.\n")
		return false, fmt.Errorf("%w: %q", ErrInvalidCommand, line)
	}

	if err := s.machine.FireContext(ctx, t); err != nil {
		var actionErr *lifecycle.ErrAction

		switch {
		case lifecycle.IsIllegalTransition(err):
			s.printf("Cannot %s while %s.\n", t, s.machine.Current())
		case errors.As(err, &actionErr):
			s.printf("Action %s failed: %v\n", actionErr.Action, actionErr.Err)
		default:
			s.printf("Error: %v\n", err)
		}

		s.printState()

		return false, err
	}

	s.printState()

	return false, nil
}

func (s *Session) printState() {
	s.printf("Current state: %s\n", s.machine.Current())
}

func (s *Session) printStatus() error {
	data, err := json.Marshal(s.machine)
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}

	s.printf("%s\n", data)

	return nil
}

// Description is the YAML document printed by the describe command.
type Description struct {
	Machine     string         `yaml:"machine"`
	Initial     string         `yaml:"initial"`
	Current     string         `yaml:"current"`
	Transitions []DescribedRow `yaml:"transitions"`
}

// DescribedRow is one transition table row in a Description.
type DescribedRow struct {
	From       string `yaml:"from"`
	Transition string `yaml:"transition"`
	To         string `yaml:"to"`
	Action     string `yaml:"action"`
}

func (s *Session) describe() error {
	d := Description{
		Machine: s.machine.Name(),
		Initial: lifecycle.Idle.String(),
		Current: s.machine.Current().String(),
	}

	for _, r := range lifecycle.Table() {
		d.Transitions = append(d.Transitions, DescribedRow{
			From:       r.From.String(),
			Transition: r.Transition.String(),
			To:         r.To.String(),
			Action:     r.Action.String(),
		})
	}

	enc := yaml.NewEncoder(s.out)
	enc.SetIndent(2)

	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode description: %w", err)
	}

	return enc.Close()
}

func (s *Session) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(s.out, format, args...); err != nil {
		s.logger.Error("failed to write output", "error", err)
	}
}
