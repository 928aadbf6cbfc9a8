package logging

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dynfpv/extension/internal/session"
)

// LogFilePath builds a log file path using OS-appropriate path separators.
func LogFilePath(logsDir, extensionName string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", extensionName, sessionStart.Format("20060102_150405")),
	)
}

// SessionAttrs reports the occupied vehicle and the camera state on every record.
func SessionAttrs(s *session.Context) AttrProvider {
	return func() []slog.Attr {
		if s == nil {
			return nil
		}
		veh := s.GetVehicle()
		config, mount := s.GetActiveConfig()
		attrs := []slog.Attr{
			slog.String("config", config),
			slog.Bool("cameraActive", s.IsCameraActive()),
		}
		if mount != "" {
			attrs = append(attrs, slog.String("mount", mount))
		}
		if veh.ModelHash != 0 {
			name := veh.ModelName
			if name == "" {
				name = fmt.Sprintf("0x%08X", veh.ModelHash)
			}
			attrs = append(attrs, slog.String("vehicle", name))
		}
		return attrs
	}
}
