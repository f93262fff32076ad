// Package haptics drives a vibration motor wired to a single output pin.
package haptics

import (
	"sync"
	"time"
)

// Pin is the output the motor hangs off. machine.Pin satisfies it.
type Pin interface {
	High()
	Low()
}

// Motor runs timed pulses without blocking the caller.
type Motor struct {
	pin Pin

	mu  sync.Mutex
	gen uint64
}

func NewMotor(pin Pin) *Motor { return &Motor{pin: pin} }

// Pulse switches the motor on and returns at once; a timer switches it off
// after d. A pulse started while another runs extends it to end d from now.
func (m *Motor) Pulse(d time.Duration) {
	if d <= 0 {
		return
	}

	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.pin.High()
	m.mu.Unlock()

	time.AfterFunc(d, func() { m.stop(gen) })
}

func (m *Motor) stop(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen == m.gen {
		m.pin.Low()
	}
}
