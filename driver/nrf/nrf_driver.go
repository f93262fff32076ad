//go:build tinygo || baremetal

package nrf

import (
	"time"
	"unsafe"

	proto "github.com/ystepanoff/pitchcall/protocol"
	"github.com/ystepanoff/pitchcall/transport"

	"device/nrf"
)

// Driver drives the nRF RADIO peripheral directly. One DMA buffer is shared
// by Tx and Rx, so calls must not overlap.
type Driver struct {
	buffer [proto.MaxFrameSize]byte
}

func New() transport.RadioDriver { return &Driver{} }

func (d *Driver) StartHFCLK() { startHFCLK() }

func (d *Driver) Configure(address uint32, prefix byte, channel uint8) error {
	return configureRadio(address, prefix, channel)
}

func (d *Driver) SetChannel(channel uint8) error {
	if channel > proto.MaxChannel {
		return proto.ErrInvalidChannel
	}
	nrf.RADIO.FREQUENCY.Set(uint32(channel))
	return nil
}

func (d *Driver) Tx(data []byte) error {
	if len(data) > len(d.buffer) {
		return proto.ErrInvalidPayload
	}
	copy(d.buffer[:], data)
	d.arm()
	nrf.RADIO.TASKS_TXEN.Set(1)
	for nrf.RADIO.EVENTS_READY.Get() == 0 {
	}
	nrf.RADIO.TASKS_START.Set(1)
	for nrf.RADIO.EVENTS_END.Get() == 0 {
	}
	disable()
	return nil
}

func (d *Driver) Rx(timeout time.Duration) ([]byte, error) {
	d.arm()
	nrf.RADIO.TASKS_RXEN.Set(1)
	for nrf.RADIO.EVENTS_READY.Get() == 0 {
	}
	nrf.RADIO.TASKS_START.Set(1)

	deadline := time.Now().Add(timeout)
	for nrf.RADIO.EVENTS_END.Get() == 0 {
		if time.Now().After(deadline) {
			disable()
			return nil, proto.ErrTimeout
		}
	}
	disable()

	if nrf.RADIO.CRCSTATUS.Get() == 0 {
		return nil, proto.ErrInvalidPayload
	}

	n := int(d.buffer[0]) + proto.LengthFieldSize
	if n > len(d.buffer) {
		n = len(d.buffer)
	}
	out := make([]byte, n)
	copy(out, d.buffer[:n])
	return out, nil
}

func (d *Driver) arm() {
	nrf.RADIO.PACKETPTR.Set(uint32(uintptr(unsafe.Pointer(&d.buffer[0]))))
	nrf.RADIO.EVENTS_READY.Set(0)
	nrf.RADIO.EVENTS_END.Set(0)
}
