package haptics

import (
	"sync"
	"testing"
	"time"
)

type recordingPin struct {
	mu    sync.Mutex
	on    bool
	highs int
	lows  int
}

func (p *recordingPin) High() {
	p.mu.Lock()
	p.on = true
	p.highs++
	p.mu.Unlock()
}

func (p *recordingPin) Low() {
	p.mu.Lock()
	p.on = false
	p.lows++
	p.mu.Unlock()
}

func (p *recordingPin) state() (bool, int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.on, p.highs, p.lows
}

func waitOff(t *testing.T, p *recordingPin, within time.Duration) {
	t.Helper()
	deadline := time.Now().Add(within)
	for {
		if on, _, _ := p.state(); !on {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("motor never switched off")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestPulseReturnsImmediately(t *testing.T) {
	pin := &recordingPin{}
	m := NewMotor(pin)

	start := time.Now()
	m.Pulse(time.Second)
	if took := time.Since(start); took > 100*time.Millisecond {
		t.Fatalf("Pulse() blocked for %v", took)
	}

	if on, highs, _ := pin.state(); !on || highs != 1 {
		t.Errorf("pin on = %v, highs = %d; want on after one High", on, highs)
	}
}

func TestPulseSwitchesOff(t *testing.T) {
	pin := &recordingPin{}
	m := NewMotor(pin)

	m.Pulse(20 * time.Millisecond)
	waitOff(t, pin, time.Second)

	if _, _, lows := pin.state(); lows != 1 {
		t.Errorf("lows = %d, want 1", lows)
	}
}

func TestOverlappingPulseExtends(t *testing.T) {
	pin := &recordingPin{}
	m := NewMotor(pin)

	m.Pulse(30 * time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	m.Pulse(200 * time.Millisecond)

	// The first timer has fired by now but must not cut the second pulse.
	time.Sleep(60 * time.Millisecond)
	if on, _, _ := pin.state(); !on {
		t.Fatal("second pulse ended with the first")
	}

	waitOff(t, pin, time.Second)
	if _, _, lows := pin.state(); lows != 1 {
		t.Errorf("lows = %d, want 1", lows)
	}
}

func TestZeroPulseIsNoop(t *testing.T) {
	pin := &recordingPin{}
	NewMotor(pin).Pulse(0)
	if _, highs, _ := pin.state(); highs != 0 {
		t.Errorf("highs = %d, want 0", highs)
	}
}
