package session

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ystepanoff/pitchcall/signal"
)

// Controller is the presentation state machine.
type Controller struct {
	inbox   Inbox
	display Display
	haptics Haptics
	log     *zap.Logger
	now     func() time.Time

	timeout time.Duration
	tick    time.Duration
	pulse   time.Duration

	state     State
	current   signal.ParsedSignal
	startedAt time.Time
	sessionID uuid.UUID

	dismissReq chan struct{}
	wakeReq    chan struct{}

	shown      atomic.Uint64
	handshakes atomic.Uint64
	dropped    atomic.Uint64
	timeouts   atomic.Uint64
	dismissals atomic.Uint64
}

// Option configures a Controller.
type Option func(*Controller)

func WithTimeout(d time.Duration) Option      { return func(c *Controller) { c.timeout = d } }
func WithTickInterval(d time.Duration) Option { return func(c *Controller) { c.tick = d } }
func WithPulse(d time.Duration) Option        { return func(c *Controller) { c.pulse = d } }

// WithClock replaces time.Now; readings must carry a monotonic component
// or come from a fake clock that only moves forward.
func WithClock(now func() time.Time) Option { return func(c *Controller) { c.now = now } }

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// NewController returns an idle controller. It does not draw anything until
// Start or Run is called.
func NewController(inbox Inbox, display Display, haptics Haptics, opts ...Option) *Controller {
	c := &Controller{
		inbox:      inbox,
		display:    display,
		haptics:    haptics,
		log:        zap.NewNop(),
		now:        time.Now,
		timeout:    DefaultTimeout,
		tick:       DefaultTickInterval,
		pulse:      DefaultPulse,
		dismissReq: make(chan struct{}, 1),
		wakeReq:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.Named("session")
	return c
}

// Start puts the display in the waiting state.
func (c *Controller) Start() {
	c.state = StateIdle
	c.display.ShowWaiting()
}

// Run ticks at the configured interval until ctx is done. Dismiss and wake
// requests are applied as soon as they are received.
func (c *Controller) Run(ctx context.Context) error {
	c.Start()

	ticker := time.NewTicker(c.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.dismissReq:
			c.Dismiss()
		case <-c.wakeReq:
			c.Tick()
		case <-ticker.C:
			c.Tick()
		}
	}
}

// Tick advances the countdown, auto-dismisses an expired session and then
// polls the inbox once.
func (c *Controller) Tick() {
	if c.state == StateActive {
		elapsed := c.now().Sub(c.startedAt)
		if elapsed >= c.timeout {
			c.timeouts.Add(1)
			c.toIdle("timeout")
		} else {
			c.display.ShowCountdown(Remaining(elapsed, c.timeout))
		}
	}

	if raw, ok := c.inbox.Take(); ok {
		c.Deliver(signal.Decode(raw))
	}
}

// Deliver applies a decoded signal. Pitches and plays open a new session,
// replacing any shown one. Handshakes and unknown messages change nothing.
func (c *Controller) Deliver(p signal.ParsedSignal) {
	switch p.Kind {
	case signal.KindConnect:
		c.handshakes.Add(1)
		c.log.Debug("handshake")
		return
	case signal.KindUnknown:
		c.dropped.Add(1)
		c.log.Debug("dropped unknown signal")
		return
	}

	c.state = StateActive
	c.current = p
	c.startedAt = c.now()
	c.sessionID = uuid.New()
	c.shown.Add(1)

	c.haptics.Pulse(c.pulse)

	v := NewView(p)
	v.SessionID = c.sessionID.String()
	v.StartedAt = c.startedAt
	v.ExpiresAt = c.startedAt.Add(c.timeout)
	c.display.ShowSignal(v)

	c.log.Info("signal shown",
		zap.String("session", v.SessionID),
		zap.Stringer("kind", p.Kind),
		zap.String("text", v.Text),
		zap.String("sub", v.SubText),
	)
}

// Dismiss returns to the waiting screen regardless of elapsed time. It is a
// no-op while idle.
func (c *Controller) Dismiss() {
	if c.state != StateActive {
		return
	}
	c.dismissals.Add(1)
	c.toIdle("dismissed")
}

// RequestDismiss asks the Run loop to dismiss. Safe from any goroutine;
// requests made while one is already pending collapse into it.
func (c *Controller) RequestDismiss() {
	select {
	case c.dismissReq <- struct{}{}:
	default:
	}
}

// Wake asks the Run loop to tick now instead of at the next interval.
func (c *Controller) Wake() {
	select {
	case c.wakeReq <- struct{}{}:
	default:
	}
}

func (c *Controller) toIdle(reason string) {
	c.log.Info("signal cleared",
		zap.String("session", c.sessionID.String()),
		zap.String("reason", reason),
		zap.Duration("shown_for", c.now().Sub(c.startedAt)),
	)
	c.state = StateIdle
	c.current = signal.ParsedSignal{}
	c.sessionID = uuid.Nil
	c.display.ShowWaiting()
}

// State reports the current state.
func (c *Controller) State() State { return c.state }

// Current returns the shown signal and when it was shown.
func (c *Controller) Current() (signal.ParsedSignal, time.Time, bool) {
	if c.state != StateActive {
		return signal.ParsedSignal{}, time.Time{}, false
	}
	return c.current, c.startedAt, true
}

// Stats counts what the controller did with the messages it consumed.
type Stats struct {
	Shown      uint64 `json:"shown"`
	Handshakes uint64 `json:"handshakes"`
	Dropped    uint64 `json:"dropped"`
	Timeouts   uint64 `json:"timeouts"`
	Dismissals uint64 `json:"dismissals"`
}

// Stats is safe to call from any goroutine.
func (c *Controller) Stats() Stats {
	return Stats{
		Shown:      c.shown.Load(),
		Handshakes: c.handshakes.Load(),
		Dropped:    c.dropped.Load(),
		Timeouts:   c.timeouts.Load(),
		Dismissals: c.dismissals.Load(),
	}
}
