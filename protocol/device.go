package protocol

import (
	"fmt"
	"net"
	"sync"
	"time"
)

// Device is the in-memory record of one end of the link: its radio addressing
// plus the hardware address the short identifier is derived from.
type Device struct {
	ID      DeviceID
	Address uint32
	Prefix  byte
	Channel uint8
	HWAddr  net.HardwareAddr

	LastSeen int64 // unix milli

	shortOnce sync.Once
	shortID   string
}

// NewDevice returns a device on the default pipe address and channel.
func NewDevice(id DeviceID, hw net.HardwareAddr) *Device {
	return &Device{
		ID:       id,
		Address:  0xE7E7E7E7,
		Prefix:   0xE7,
		Channel:  DefaultChannel,
		HWAddr:   hw,
		LastSeen: time.Now().UnixMilli(),
	}
}

// ParseHWAddr parses a 6-byte link-layer address such as "C0:FF:EE:00:12:AB".
func ParseHWAddr(s string) (net.HardwareAddr, error) {
	hw, err := net.ParseMAC(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(hw) != 6 {
		return nil, fmt.Errorf("%w: want 6 bytes, got %d", ErrInvalidAddress, len(hw))
	}
	return hw, nil
}

// ShortID returns four uppercase hex characters built from the low two bytes
// of the hardware address (the last two octets in textual order). It is
// computed on first use and cached.
func (d *Device) ShortID() string {
	d.shortOnce.Do(func() {
		if len(d.HWAddr) < 2 {
			d.shortID = "0000"
			return
		}
		n := len(d.HWAddr)
		d.shortID = fmt.Sprintf("%02X%02X", d.HWAddr[n-2], d.HWAddr[n-1])
	})
	return d.shortID
}

func (d *Device) UpdateLastSeen() { d.LastSeen = time.Now().UnixMilli() }

func (d *Device) IsAlive() bool { return (time.Now().UnixMilli() - d.LastSeen) < DeviceTimeout }
