package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/enetx/lifecycle"
)

func newSession(t *testing.T, actions lifecycle.Actions) (*Session, *lifecycle.Machine, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer

	if actions == nil {
		actions = NewPrinter(&out)
	}

	m, err := lifecycle.New(actions, lifecycle.WithName("test"))
	require.NoError(t, err)

	return NewSession(m, &out, slogt.New(t)), m, &out
}

func TestSession_Run(t *testing.T) {
	t.Parallel()

	s, m, out := newSession(t, nil)

	in := NewScanReader(strings.NewReader("start\nsucceed\nreset\nstart\nfail\nreset\nexit\nstart\n"))
	require.NoError(t, s.Run(t.Context(), in))

	want := strings.Join([]string{
		"Initial state: Idle",
		"ACTION: Starting processing...",
		"Current state: Processing",
		"ACTION: Processing succeeded.",
		"Current state: Succeeded",
		"ACTION: Resetting to Idle.",
		"Current state: Idle",
		"ACTION: Starting processing...",
		"Current state: Processing",
		"ACTION: Processing failed.",
		"Current state: Failed",
		"ACTION: Resetting to Idle.",
		"Current state: Idle",
	}, "\n") + "\n"

	assert.Equal(t, want, out.String())
	assert.Equal(t, lifecycle.Idle, m.Current(), "commands after exit must not run")
}

func TestSession_RunStopsAtEOF(t *testing.T) {
	t.Parallel()

	s, m, _ := newSession(t, nil)

	require.NoError(t, s.Run(t.Context(), NewScanReader(strings.NewReader("start\n"))))
	assert.Equal(t, lifecycle.Processing, m.Current())
}

func TestSession_RunCancelled(t *testing.T) {
	t.Parallel()

	s, _, _ := newSession(t, nil)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := s.Run(ctx, NewScanReader(strings.NewReader("start\n")))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSession_RunCancelledWhileReading(t *testing.T) {
	t.Parallel()

	s, m, _ := newSession(t, nil)

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	err := s.Run(ctx, NewScanReader(pr))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, lifecycle.Idle, m.Current())
}

type failingReader struct{}

func (failingReader) ReadLine() (string, error) { return "", io.ErrUnexpectedEOF }

func TestSession_RunReadError(t *testing.T) {
	t.Parallel()

	s, _, _ := newSession(t, nil)
	assert.ErrorIs(t, s.Run(t.Context(), failingReader{}), io.ErrUnexpectedEOF)
}

func TestSession_IllegalTransition(t *testing.T) {
	t.Parallel()

	s, m, out := newSession(t, nil)

	done, err := s.Execute(t.Context(), "reset")
	assert.False(t, done)
	assert.True(t, lifecycle.IsIllegalTransition(err))
	assert.Equal(t, "Cannot reset while Idle.\nCurrent state: Idle\n", out.String())
	assert.Equal(t, lifecycle.Idle, m.Current())
}

func TestSession_ActionFailure(t *testing.T) {
	t.Parallel()

	errDisk := errors.New("disk full")
	s, m, out := newSession(t, lifecycle.ActionFuncs{OnStart: func() error { return errDisk }})

	_, err := s.Execute(t.Context(), "START")
	require.ErrorIs(t, err, errDisk)
	assert.Equal(t, "Action start_processing failed: disk full\nCurrent state: Idle\n", out.String())
	assert.Equal(t, lifecycle.Idle, m.Current())
}

func TestSession_HookPanic(t *testing.T) {
	t.Parallel()

	s, m, out := newSession(t, lifecycle.ActionFuncs{})
	m.OnTransition(func(lifecycle.State, lifecycle.State, lifecycle.Transition) { panic("hook boom") })

	done, err := s.Execute(t.Context(), "start")
	assert.False(t, done)

	var hookErr *lifecycle.ErrHook
	require.ErrorAs(t, err, &hookErr)
	assert.Contains(t, out.String(), "Current state: Processing\n")
	assert.Equal(t, lifecycle.Processing, m.Current())
}

func TestSession_InvalidCommand(t *testing.T) {
	t.Parallel()

	s, _, out := newSession(t, nil)

	done, err := s.Execute(t.Context(), "launch")
	assert.False(t, done)
	assert.ErrorIs(t, err, ErrInvalidCommand)
	assert.Equal(t, "Invalid command.\n", out.String())
}

func TestSession_Queries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cmd      string
		contains string
	}{
		{cmd: "state", contains: "Current state: Idle"},
		{cmd: "status", contains: `{"machine":"test","current":"Idle","available":["start"]}`},
		{cmd: "dot", contains: `"Idle" -> "Processing"`},
		{cmd: "help", contains: "exit, quit"},
		{cmd: "", contains: ""},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			t.Parallel()

			s, m, out := newSession(t, nil)

			done, err := s.Execute(t.Context(), tt.cmd)
			require.NoError(t, err)
			assert.False(t, done)
			assert.Contains(t, out.String(), tt.contains)
			assert.Equal(t, lifecycle.Idle, m.Current())
		})
	}
}

func TestSession_Describe(t *testing.T) {
	t.Parallel()

	s, _, out := newSession(t, nil)

	_, err := s.Execute(t.Context(), "describe")
	require.NoError(t, err)

	var d Description
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &d))

	assert.Equal(t, "test", d.Machine)
	assert.Equal(t, "Idle", d.Initial)
	assert.Equal(t, "Idle", d.Current)
	require.Len(t, d.Transitions, 5)
	assert.Equal(t, DescribedRow{From: "Processing", Transition: "fail", To: "Failed", Action: "process_failed"}, d.Transitions[2])
}

func TestSession_WithSyncMachine(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	m, err := lifecycle.New(NewPrinter(&out))
	require.NoError(t, err)

	s := NewSession(m.Sync(), &out, nil)

	done, err := s.Execute(t.Context(), "exit")
	require.NoError(t, err)
	assert.True(t, done)

	_, err = s.Execute(t.Context(), "start")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Current state: Processing")
}
