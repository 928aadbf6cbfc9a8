package logging

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/dynfpv/extension/internal/session"
	"github.com/stretchr/testify/assert"
)

func TestLogFilePath(t *testing.T) {
	sessionStart := time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)

	tests := []struct {
		name          string
		logsDir       string
		extensionName string
		want          string
	}{
		{
			name:          "basic path",
			logsDir:       "logs",
			extensionName: "dynfpv",
			want:          filepath.Join("logs", "dynfpv.20260212_213836.log"),
		},
		{
			name:          "relative path with dot",
			logsDir:       "./logs",
			extensionName: "dynfpv",
			want:          filepath.Join(".", "logs", "dynfpv.20260212_213836.log"),
		},
		{
			name:          "absolute path",
			logsDir:       filepath.Join("/var", "log", "dynfpv"),
			extensionName: "dynfpv",
			want:          filepath.Join("/var", "log", "dynfpv", "dynfpv.20260212_213836.log"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogFilePath(tt.logsDir, tt.extensionName, sessionStart)
			assert.Equal(t, tt.want, got)
		})
	}
}

func attrMap(attrs []slog.Attr) map[string]any {
	out := make(map[string]any, len(attrs))
	for _, a := range attrs {
		out[a.Key] = a.Value.Any()
	}
	return out
}

func TestSessionAttrs(t *testing.T) {
	s := session.NewContext()
	got := attrMap(SessionAttrs(s)())
	assert.Equal(t, map[string]any{"config": "No config loaded", "cameraActive": false}, got)

	s.SetVehicle(session.Vehicle{ModelHash: 0xB779A091})
	s.SetActiveConfig("Adder", "Hood")
	s.SetCameraActive(true)
	got = attrMap(SessionAttrs(s)())
	assert.Equal(t, "0xB779A091", got["vehicle"])
	assert.Equal(t, "Hood", got["mount"])
	assert.Equal(t, true, got["cameraActive"])

	s.SetVehicle(session.Vehicle{ModelHash: 0xB779A091, ModelName: "adder"})
	assert.Equal(t, "adder", attrMap(SessionAttrs(s)())["vehicle"])

	assert.Nil(t, SessionAttrs(nil)())
}

func TestSetup_WithSessionContext(t *testing.T) {
	s := session.NewContext()
	s.SetActiveConfig("Adder", "Default")

	var buf bytes.Buffer
	m := NewSlogManager()
	m.SetAttrProvider(SessionAttrs(s))
	m.Setup(&buf, "info", nil)
	m.Logger().Info("camera started")

	assert.Contains(t, buf.String(), "config=Adder")
	assert.Contains(t, buf.String(), "mount=Default")
}
