//go:build tinygo || baremetal

package pitchcall

import (
	"go.uber.org/zap"

	"github.com/ystepanoff/pitchcall/driver/nrf"
	"github.com/ystepanoff/pitchcall/protocol"
	"github.com/ystepanoff/pitchcall/transport"
)

func NewTransmitter(id protocol.DeviceID, log *zap.Logger) *transport.Transmitter {
	return transport.NewTransmitterWithDriver(id, nrf.New(), log)
}

func NewReceiver(dev *protocol.Device, sink transport.Sink, opts ...transport.ReceiverOption) *transport.Receiver {
	return transport.NewReceiverWithDriver(dev, nrf.New(), sink, opts...)
}
