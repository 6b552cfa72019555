package logger

import (
	"os"
	"path/filepath"
	"testing"

	"mangadesk/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesModuleFieldToFile(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	logPath := filepath.Join(t.TempDir(), "mangadesk.log")

	log := New(&domain.Config{LogPath: logPath, LogLevel: "INFO", LogMaxSize: 1, LogMaxBackups: 1})

	sessionLog := log.Module("session")
	sessionLog.Info().Msg("session refreshed")
	log.Debug().Msg("hidden at info level")

	raw, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"module":"session"`)
	assert.Contains(t, string(raw), `"message":"session refreshed"`)
	assert.NotContains(t, string(raw), "hidden at info level")
}

func TestSetLogLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	log := New(&domain.Config{})

	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"ERROR", zerolog.ErrorLevel},
		{"warn", zerolog.WarnLevel},
		{"TRACE", zerolog.TraceLevel},
		{"", zerolog.DebugLevel},
		{"nonsense", zerolog.DebugLevel},
	}

	for _, tt := range tests {
		log.SetLogLevel(tt.level)
		assert.Equal(t, tt.want, zerolog.GlobalLevel(), tt.level)
	}
}
