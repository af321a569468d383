package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerPrintsModuleAndLevel(t *testing.T) {
	var out bytes.Buffer
	lv := new(slog.LevelVar)
	lv.Set(LevelTrace)
	l := NewWith(slog.New(NewHandler(&out, &slog.HandlerOptions{Level: lv})), "graphics")

	l.Tracef("----------------Plugin update----------------")
	l.Debugf("%s is running.", "OpenGL")
	l.Errorf("%s failed during %s.", "WINDOW_CREATE_FAILED", "INITIALIZATION")

	s := out.String()
	assert.Contains(t, s, "TRACE")
	assert.Contains(t, s, "[graphics] ")
	assert.Contains(t, s, "OpenGL is running.")
	assert.Contains(t, s, "WINDOW_CREATE_FAILED failed during INITIALIZATION.")
}

func TestLevelFilters(t *testing.T) {
	var out bytes.Buffer
	lv := new(slog.LevelVar)
	lv.Set(slog.LevelInfo)
	l := NewWith(slog.New(NewHandler(&out, &slog.HandlerOptions{Level: lv})), "graphics")

	l.Debugf("hidden")
	assert.Empty(t, out.String())

	lv.Set(slog.LevelDebug)
	l.Debugf("shown")
	assert.Contains(t, out.String(), "shown")
}

func TestMessageWithoutArgsIsNotFormatted(t *testing.T) {
	var out bytes.Buffer
	l := NewWith(slog.New(NewHandler(&out, nil)), "graphics")
	l.Infof("100% red")
	assert.Contains(t, out.String(), "100% red")
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"trace": LevelTrace,
		"DEBUG": slog.LevelDebug,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
