package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gelfSpy struct {
	msgs []*gelf.Message
}

func (s *gelfSpy) WriteMessage(m *gelf.Message) error {
	s.msgs = append(s.msgs, m)
	return nil
}

func TestGELFHandler_Message(t *testing.T) {
	spy := &gelfSpy{}
	logger := slog.New(NewGELFHandler(spy, "dynfpv", slog.LevelInfo))

	logger.Warn("camera index out of range", "config", "Adder", "camIndex", 2)

	require.Len(t, spy.msgs, 1)
	m := spy.msgs[0]
	assert.Equal(t, "camera index out of range", m.Short)
	assert.Equal(t, "dynfpv", m.Facility)
	assert.Equal(t, int32(4), m.Level)
	assert.NotZero(t, m.TimeUnix)
	assert.Equal(t, "Adder", m.Extra["_config"])
	assert.Equal(t, int64(2), m.Extra["_camIndex"])
}

func TestGELFHandler_Threshold(t *testing.T) {
	spy := &gelfSpy{}
	h := NewGELFHandler(spy, "dynfpv", slog.LevelWarn)

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))

	slog.New(h).Info("dropped")
	assert.Empty(t, spy.msgs)
}

func TestGELFHandler_AttrsAndGroups(t *testing.T) {
	spy := &gelfSpy{}
	logger := slog.New(NewGELFHandler(spy, "dynfpv", nil)).
		With("session", "s1").
		WithGroup("dof")

	logger.Info("planes", "near", 0.5, slog.Group("far", "in", 100, "out", 200))

	require.Len(t, spy.msgs, 1)
	extra := spy.msgs[0].Extra
	assert.Equal(t, "s1", extra["_session"])
	assert.Equal(t, 0.5, extra["_dof.near"])
	assert.Equal(t, int64(100), extra["_dof.far.in"])
	assert.Equal(t, int64(200), extra["_dof.far.out"])
}

func TestSyslogLevel(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  int32
	}{
		{slog.LevelDebug, 7},
		{slog.LevelInfo, 6},
		{slog.LevelWarn, 4},
		{slog.LevelError, 3},
		{slog.LevelError + 4, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, syslogLevel(tt.level), tt.level.String())
	}
}
