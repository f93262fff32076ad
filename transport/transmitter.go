package transport

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	proto "github.com/ystepanoff/pitchcall/protocol"
)

// Transmitter is the companion-controller end of the link. Sends are
// fire-and-forget: nothing is acknowledged or retried.
type Transmitter struct {
	device *proto.Device
	driver RadioDriver
	log    *zap.Logger

	mu  sync.Mutex
	seq uint32
}

func NewTransmitterWithDriver(id proto.DeviceID, d RadioDriver, log *zap.Logger) *Transmitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Transmitter{
		device: proto.NewDevice(id, nil),
		driver: d,
		log:    log.Named("transmitter"),
	}
}

func (t *Transmitter) Initialise() error {
	t.driver.StartHFCLK()
	return t.driver.Configure(t.device.Address, t.device.Prefix, t.device.Channel)
}

func (t *Transmitter) SetChannel(ch uint8) error {
	if ch > proto.MaxChannel {
		return proto.ErrInvalidChannel
	}
	t.device.Channel = ch
	return t.driver.SetChannel(ch)
}

func (t *Transmitter) SendFrame(frameType byte, payload []byte) error {
	if len(payload) > proto.MaxPayloadSize {
		return proto.ErrInvalidPayload
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	frame := &proto.Frame{
		SenderID: t.device.ID,
		Type:     frameType,
		Seq:      t.seq,
		Payload:  payload,
	}
	t.seq++

	return t.driver.Tx(proto.EncodeFrame(frame))
}

// SendMessage transmits one signal message (at most 32 bytes).
func (t *Transmitter) SendMessage(msg []byte) error {
	if err := proto.CheckMessage(msg); err != nil {
		return err
	}
	if err := t.SendFrame(proto.FrameTypeData, msg); err != nil {
		return err
	}
	t.log.Debug("message sent", zap.ByteString("msg", msg))
	return nil
}

// Handshake sends the bare CONNECT marker.
func (t *Transmitter) Handshake() error {
	return t.SendMessage([]byte(proto.Handshake))
}

func (t *Transmitter) SendHeartbeat() error {
	return t.SendFrame(proto.FrameTypeHeartbeat, nil)
}

// RunHeartbeat sends a heartbeat every interval until ctx is done.
func (t *Transmitter) RunHeartbeat(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = proto.HeartbeatInterval * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := t.SendHeartbeat(); err != nil {
				t.log.Warn("heartbeat failed", zap.Error(err))
			}
		}
	}
}
