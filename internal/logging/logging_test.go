package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error"} {
		t.Run(lvl, func(t *testing.T) {
			log, err := New(lvl, false, filepath.Join(t.TempDir(), "out.log"))
			require.NoError(t, err)
			want, _ := zapcore.ParseLevel(lvl)
			require.True(t, log.Core().Enabled(want))
			require.False(t, log.Core().Enabled(want-1))
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("chatty", false, "")
	require.Error(t, err)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pitchcall.log")
	log, err := New("info", true, path)
	require.NoError(t, err)

	log.Named("session").Info("signal shown")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "signal shown")
	require.Contains(t, string(data), "session")
}
