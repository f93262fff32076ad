package surface

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/ystepanoff/pitchcall/session"
	"github.com/ystepanoff/pitchcall/signal"
)

// LogSurface is a headless display and motor that writes what it would
// draw to a logger. Countdown updates are logged once per whole second of
// the shown session's timeout.
type LogSurface struct {
	log      *zap.Logger
	timeout  time.Duration
	lastSecs int
}

func NewLogSurface(log *zap.Logger) *LogSurface {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogSurface{log: log.Named("face"), timeout: session.DefaultTimeout, lastSecs: -1}
}

func (s *LogSurface) ShowWaiting() {
	s.lastSecs = -1
	s.log.Info(waitText)
}

func (s *LogSurface) ShowSignal(v session.View) {
	s.lastSecs = -1
	if d := v.ExpiresAt.Sub(v.StartedAt); d > 0 {
		s.timeout = d
	}

	fields := []zap.Field{
		zap.String("text", v.Text),
		zap.Stringer("color", v.Color),
		zap.String("session", v.SessionID),
	}
	if v.ShowGrid {
		x, y := v.Cell.Origin()
		fields = append(fields,
			zap.Int("row", v.Cell.Row),
			zap.Int("col", v.Cell.Col),
			zap.Int("x", x),
			zap.Int("y", y),
			zap.Int("size", signal.HighlightPixels),
		)
	} else if v.SubText != "" {
		fields = append(fields, zap.String("sub", v.SubText))
	}
	s.log.Info("signal", fields...)
}

func (s *LogSurface) ShowCountdown(remaining float64) {
	secs := int(math.Ceil(remaining * s.timeout.Seconds()))
	if secs == s.lastSecs {
		return
	}
	s.lastSecs = secs
	s.log.Debug("countdown", zap.Float64("remaining", remaining))
}

func (s *LogSurface) Pulse(d time.Duration) {
	s.log.Debug("buzz", zap.Duration("pulse", d))
}
