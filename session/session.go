// Package session drives what the wearable shows: it consumes messages from
// the mailbox, opens a session for each pitch or play call, counts it down and
// returns to the waiting screen on timeout or manual dismiss.
//
// All state changes happen on the goroutine calling Tick, Deliver and Dismiss
// (normally Run). Other goroutines only call RequestDismiss.
package session

import (
	"time"

	"github.com/ystepanoff/pitchcall/signal"
)

const (
	DefaultTimeout      = 15 * time.Second
	DefaultTickInterval = 100 * time.Millisecond
	DefaultPulse        = 50 * time.Millisecond
)

// State of the controller.
type State uint8

const (
	StateIdle State = iota
	StateActive
)

func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "idle"
}

// Inbox is the reading side of the single-slot handoff.
type Inbox interface {
	// Take returns the pending message and marks it read.
	Take() ([]byte, bool)
}

// Display is the presentation surface.
type Display interface {
	ShowWaiting()
	ShowSignal(View)
	ShowCountdown(remaining float64)
}

// Haptics fires a vibration and returns without waiting for it to finish.
type Haptics interface {
	Pulse(d time.Duration)
}

// View is everything the surface needs to draw a signal.
type View struct {
	Signal    signal.ParsedSignal
	Text      string
	SubText   string
	Color     signal.Color
	Cell      signal.Cell
	ShowGrid  bool // pitch with a strike zone: grid shown, sub text hidden
	Remaining float64
	SessionID string
	StartedAt time.Time
	ExpiresAt time.Time
}

// NewView derives the display command for p.
func NewView(p signal.ParsedSignal) View {
	v := View{
		Signal:    p,
		Text:      p.DisplayText(),
		SubText:   p.SubText(),
		Color:     p.Color(),
		Remaining: 1,
	}
	if p.Kind == signal.KindPitch {
		v.Cell, v.ShowGrid = p.Zone.Cell()
	}
	return v
}

// Remaining is the countdown fraction 1 - elapsed/timeout clamped to [0,1].
func Remaining(elapsed, timeout time.Duration) float64 {
	if timeout <= 0 || elapsed >= timeout {
		return 0
	}
	if elapsed <= 0 {
		return 1
	}
	return 1 - float64(elapsed)/float64(timeout)
}
