//go:build !tinygo && !baremetal

package pitchcall

import (
	"go.uber.org/zap"

	"github.com/ystepanoff/pitchcall/driver/stub"
	"github.com/ystepanoff/pitchcall/protocol"
	"github.com/ystepanoff/pitchcall/transport"
)

func NewTransmitter(id protocol.DeviceID, log *zap.Logger) *transport.Transmitter {
	return transport.NewTransmitterWithDriver(id, stub.New(), log)
}

func NewReceiver(dev *protocol.Device, sink transport.Sink, opts ...transport.ReceiverOption) *transport.Receiver {
	return transport.NewReceiverWithDriver(dev, stub.New(), sink, opts...)
}

// NewLoopback returns a transmitter and receiver joined by an in-memory link.
func NewLoopback(txID protocol.DeviceID, dev *protocol.Device, sink transport.Sink, log *zap.Logger, opts ...transport.ReceiverOption) (*transport.Transmitter, *transport.Receiver) {
	a, b := stub.Pair()
	opts = append([]transport.ReceiverOption{transport.WithReceiverLogger(log)}, opts...)
	return transport.NewTransmitterWithDriver(txID, a, log), transport.NewReceiverWithDriver(dev, b, sink, opts...)
}
