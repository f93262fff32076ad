//go:build !tinygo && !baremetal

package stub

import (
	"sync"
	"time"

	proto "github.com/ystepanoff/pitchcall/protocol"
	"github.com/ystepanoff/pitchcall/transport"
)

// Driver is an in-memory radio for host builds. Frames sent with Tx land in
// the paired driver's receive queue, or only in the local log when unpaired.
type Driver struct {
	mu      sync.Mutex
	rxBuf   ringBuffer
	txBuf   ringBuffer
	channel uint8
	peer    *Driver
}

func New() transport.RadioDriver { return &Driver{channel: proto.DefaultChannel} }

// Pair returns two drivers wired back to back.
func Pair() (*Driver, *Driver) {
	a := &Driver{channel: proto.DefaultChannel}
	b := &Driver{channel: proto.DefaultChannel, peer: a}
	a.peer = b
	return a, b
}

func (d *Driver) StartHFCLK() {}

func (d *Driver) Configure(address uint32, prefix byte, channel uint8) error {
	return d.SetChannel(channel)
}

func (d *Driver) SetChannel(channel uint8) error {
	if channel > proto.MaxChannel {
		return proto.ErrInvalidChannel
	}
	d.mu.Lock()
	d.channel = channel
	d.mu.Unlock()
	return nil
}

func (d *Driver) Channel() uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.channel
}

func (d *Driver) Tx(data []byte) error {
	if len(data) > proto.MaxFrameSize {
		return proto.ErrInvalidPayload
	}
	d.mu.Lock()
	d.txBuf.push(clone(data))
	peer, ch := d.peer, d.channel
	d.mu.Unlock()

	// Frames on a different channel are lost, as they would be on air.
	if peer != nil && peer.Channel() == ch {
		peer.InjectRx(data)
	}
	return nil
}

func (d *Driver) Rx(timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)
	for {
		d.mu.Lock()
		frame, ok := d.rxBuf.pop()
		d.mu.Unlock()
		if ok {
			return frame, nil
		}

		if time.Now().After(deadline) {
			return nil, proto.ErrTimeout
		}
		time.Sleep(1 * time.Millisecond)
	}
}

func (d *Driver) InjectRx(data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rxBuf.push(clone(data))
}

func (d *Driver) GetTxLog() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.txBuf.snapshot()
}

func clone(p []byte) []byte {
	out := make([]byte, len(p))
	copy(out, p)
	return out
}

const ringCapacity = 64

type ringBuffer struct {
	data       [ringCapacity][]byte
	head, tail int // head = next pop, tail = next push
	count      int
}

func (rb *ringBuffer) push(frame []byte) {
	if rb.count == ringCapacity {
		// full: drop the oldest
		rb.data[rb.tail] = nil
		rb.head = (rb.head + 1) % ringCapacity
		rb.count--
	}
	rb.data[rb.tail] = frame
	rb.tail = (rb.tail + 1) % ringCapacity
	rb.count++
}

func (rb *ringBuffer) pop() ([]byte, bool) {
	if rb.count == 0 {
		return nil, false
	}
	frame := rb.data[rb.head]
	rb.data[rb.head] = nil
	rb.head = (rb.head + 1) % ringCapacity
	rb.count--
	return frame, true
}

func (rb *ringBuffer) snapshot() [][]byte {
	out := make([][]byte, 0, rb.count)
	for c, i := 0, rb.head; c < rb.count; c, i = c+1, (i+1)%ringCapacity {
		out = append(out, clone(rb.data[i]))
	}
	return out
}
