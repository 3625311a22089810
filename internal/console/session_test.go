package console_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fsmkit/internal/console"
	"github.com/dmitrymomot/fsmkit/pkg/fsm"
	"github.com/dmitrymomot/fsmkit/pkg/logger"
)

func newMachine(t *testing.T) *fsm.Machine {
	t.Helper()
	cfg := fsm.NewConfigBuilder("normal").
		State("normal").On("study", "busy").
		State("busy").On("get_tired", "sleeping").On("get_hungry", "hungry").
		State("hungry").On("eat", "normal").
		State("sleeping").On("get_hungry", "hungry").On("get_up", "normal").
		MustBuild()
	m, err := fsm.New(cfg)
	require.NoError(t, err)
	return m
}

func TestSession_Run(t *testing.T) {
	t.Parallel()

	script := strings.Join([]string{
		"# daily routine",
		"state",
		"trigger study",
		"trigger get_hungry",
		"",
		"undo",
		"redo",
		"change normal",
		"redo",
		"states get_hungry",
		"states",
		"events",
		"trigger eat",
		"quit",
		"state",
	}, "\n")

	var out bytes.Buffer
	s := console.NewSession(newMachine(t))
	require.NoError(t, s.Run(context.Background(), strings.NewReader(script), &out))

	assert.Equal(t, strings.Join([]string{
		"normal",
		"busy",
		"hungry",
		"busy",
		"hungry",
		"normal",
		"nothing to redo",
		"busy sleeping",
		"normal busy hungry sleeping",
		"study",
		"error: no transition from state 'normal' for event 'eat'",
		"bye",
	}, "\n")+"\n", out.String())
}

func TestSession_RunUntilEOF(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	m := newMachine(t)
	s := console.NewSession(m, console.WithPrompt("> "))

	require.NoError(t, s.Run(context.Background(), strings.NewReader("trigger study\n"), &out))
	assert.Equal(t, "> busy\n> ", out.String())
	assert.Equal(t, "busy", m.State())
}

func TestSession_RunCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := console.NewSession(newMachine(t)).Run(ctx, strings.NewReader("trigger study\n"), &out)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestSession_RunWriteError(t *testing.T) {
	t.Parallel()
	err := console.NewSession(newMachine(t)).Run(context.Background(), strings.NewReader("state\n"), failingWriter{})
	require.EqualError(t, err, "closed pipe")
}

func TestSession_Exec(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("redo locked", func(t *testing.T) {
		t.Parallel()
		s := console.NewSession(newMachine(t))
		for _, line := range []string{"trigger study", "trigger get_hungry", "undo", "trigger get_tired"} {
			_, _, err := s.Exec(ctx, line)
			require.NoError(t, err)
		}
		reply, _, err := s.Exec(ctx, "redo")
		require.NoError(t, err)
		assert.Equal(t, "redo locked by a forward move", reply)

		reply, _, err = s.Exec(ctx, "history")
		require.NoError(t, err)
		assert.Equal(t, "undo: normal busy\nredo: hungry\nredo locked: true", reply)
	})

	t.Run("reset and clear", func(t *testing.T) {
		t.Parallel()
		m := newMachine(t)
		s := console.NewSession(m)
		_, _, err := s.Exec(ctx, "TRIGGER study")
		require.NoError(t, err)

		reply, _, err := s.Exec(ctx, "reset")
		require.NoError(t, err)
		assert.Equal(t, "normal", reply)
		assert.True(t, m.CanUndo())

		reply, _, err = s.Exec(ctx, "clear")
		require.NoError(t, err)
		assert.Equal(t, "history cleared", reply)
		assert.False(t, m.CanUndo())

		reply, _, err = s.Exec(ctx, "undo")
		require.NoError(t, err)
		assert.Equal(t, "nothing to undo", reply)
	})

	t.Run("renderers", func(t *testing.T) {
		t.Parallel()
		s := console.NewSession(newMachine(t))

		reply, _, err := s.Exec(ctx, "dot")
		require.NoError(t, err)
		assert.Contains(t, reply, `"normal" [style="rounded,filled", fillcolor=lightgreen];`)

		reply, _, err = s.Exec(ctx, "mermaid")
		require.NoError(t, err)
		assert.Contains(t, reply, `state "normal" as s0`)
		assert.Contains(t, reply, "s0 --> s1 : study")

		reply, _, err = s.Exec(ctx, "help")
		require.NoError(t, err)
		assert.Contains(t, reply, "trigger <event>")
	})

	errCases := []struct {
		line string
		want error
	}{
		{"fly", console.ErrUnknownCommand},
		{"trigger", console.ErrMissingArgument},
		{"change", console.ErrMissingArgument},
		{"trigger study now", console.ErrTooManyArgs},
		{"states a b", console.ErrTooManyArgs},
		{"undo 2", console.ErrTooManyArgs},
		{"dot busy", console.ErrTooManyArgs},
		{"mermaid lr", console.ErrTooManyArgs},
	}
	for _, tt := range errCases {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			m := newMachine(t)
			_, quit, err := console.NewSession(m).Exec(ctx, tt.line)
			require.ErrorIs(t, err, tt.want)
			assert.False(t, quit)
			assert.Equal(t, "normal", m.State())
		})
	}

	t.Run("engine errors pass through", func(t *testing.T) {
		t.Parallel()
		s := console.NewSession(newMachine(t))
		_, _, err := s.Exec(ctx, "change flying")
		assert.True(t, fsm.IsUnknownStateError(err))
		_, _, err = s.Exec(ctx, "trigger eat")
		assert.True(t, fsm.IsInvalidTransitionError(err))
	})
}

func TestSession_Logging(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithLevel(slog.LevelDebug),
		logger.WithContextExtractors(console.LoggerExtractor()),
	)

	ctx := console.WithSessionID(context.Background(), "s-42")
	assert.Equal(t, "s-42", console.SessionIDFromContext(ctx))

	s := console.NewSession(newMachine(t), console.WithLogger(log))
	_, _, err := s.Exec(ctx, "trigger study")
	require.NoError(t, err)
	_, _, err = s.Exec(ctx, "trigger study")
	require.Error(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var ok, failed map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &ok))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &failed))

	assert.Equal(t, "command executed", ok["msg"])
	assert.Equal(t, "trigger", ok["command"])
	assert.Equal(t, "normal", ok["from"])
	assert.Equal(t, "busy", ok["to"])
	assert.Equal(t, "s-42", ok["session_id"])
	assert.Equal(t, "console", ok["component"])

	assert.Equal(t, "command failed", failed["msg"])
	assert.Equal(t, "WARN", failed["level"])
	assert.Contains(t, failed["error"], "no transition")
	assert.Equal(t, "s-42", failed["session_id"])
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()
	extract := console.LoggerExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(console.WithSessionID(context.Background(), "s-7"))
	require.True(t, ok)
	assert.Equal(t, "session_id", attr.Key)
	assert.Equal(t, "s-7", attr.Value.String())
}
