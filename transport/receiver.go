package transport

import (
	"bytes"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	proto "github.com/ystepanoff/pitchcall/protocol"
)

var handshake = []byte(proto.Handshake)

// Receiver is the wearable end of the link. Data frames go through the write
// endpoint into the sink; heartbeats only refresh peer liveness.
type Receiver struct {
	device *proto.Device
	driver RadioDriver
	sink   Sink
	waker  Waker
	log    *zap.Logger

	mu        sync.Mutex
	peers     map[proto.DeviceID]*proto.Device
	onMessage func(from proto.DeviceID, msg []byte)

	accepted atomic.Uint64
	rejected atomic.Uint64
}

// ReceiverOption configures a Receiver.
type ReceiverOption func(*Receiver)

// WithWaker sets the wake call made for every accepted non-handshake message.
func WithWaker(w Waker) ReceiverOption { return func(r *Receiver) { r.waker = w } }

func WithReceiverLogger(l *zap.Logger) ReceiverOption {
	return func(r *Receiver) {
		if l != nil {
			r.log = l
		}
	}
}

// WithObserver registers a callback run after each accepted write.
func WithObserver(fn func(from proto.DeviceID, msg []byte)) ReceiverOption {
	return func(r *Receiver) { r.onMessage = fn }
}

func NewReceiverWithDriver(dev *proto.Device, d RadioDriver, sink Sink, opts ...ReceiverOption) *Receiver {
	r := &Receiver{
		device: dev,
		driver: d,
		sink:   sink,
		waker:  nopWaker{},
		log:    zap.NewNop(),
		peers:  make(map[proto.DeviceID]*proto.Device),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.Named("receiver")
	return r
}

func (r *Receiver) Initialise() error {
	r.driver.StartHFCLK()
	return r.driver.Configure(r.device.Address, r.device.Prefix, r.device.Channel)
}

func (r *Receiver) SetChannel(ch uint8) error {
	if ch > proto.MaxChannel {
		return proto.ErrInvalidChannel
	}
	r.device.Channel = ch
	return r.driver.SetChannel(ch)
}

// ShortID is the read endpoint: the device's four-character identifier.
func (r *Receiver) ShortID() string { return r.device.ShortID() }

// Write is the write endpoint. Empty or oversized messages are rejected
// before they reach the sink.
func (r *Receiver) Write(from proto.DeviceID, msg []byte) error {
	if err := proto.CheckMessage(msg); err != nil {
		r.rejected.Add(1)
		r.log.Warn("message rejected", zap.Uint32("from", uint32(from)), zap.Int("len", len(msg)), zap.Error(err))
		return err
	}
	if err := r.sink.Put(msg); err != nil {
		r.rejected.Add(1)
		r.log.Warn("sink refused message", zap.Uint32("from", uint32(from)), zap.Error(err))
		return err
	}
	r.accepted.Add(1)

	r.mu.Lock()
	observer := r.onMessage
	r.mu.Unlock()
	if observer != nil {
		observer(from, msg)
	}

	if !bytes.Equal(msg, handshake) {
		r.waker.Wake()
	}
	return nil
}

func (r *Receiver) ProcessFrame(frame *proto.Frame) {
	if frame == nil {
		return
	}

	r.touchPeer(frame.SenderID)

	switch frame.Type {
	case proto.FrameTypeHeartbeat:
		r.log.Debug("heartbeat", zap.Uint32("from", uint32(frame.SenderID)), zap.Uint32("seq", frame.Seq))
	case proto.FrameTypeData:
		_ = r.Write(frame.SenderID, frame.Payload)
	default:
		r.log.Debug("ignored frame", zap.Uint8("type", frame.Type))
	}
}

func (r *Receiver) touchPeer(id proto.DeviceID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dev, ok := r.peers[id]
	if !ok {
		dev = proto.NewDevice(id, nil)
		r.peers[id] = dev
		r.log.Info("peer seen", zap.Uint32("peer", uint32(id)))
	}
	dev.UpdateLastSeen()
}

// Listen receives frames until ctx is done.
func (r *Receiver) Listen(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if frame := r.ReceiveFrame(100 * time.Millisecond); frame != nil {
			r.ProcessFrame(frame)
		}
	}
}

func (r *Receiver) ReceiveFrame(timeout time.Duration) *proto.Frame {
	data, err := r.driver.Rx(timeout)
	if err != nil {
		return nil
	}
	return proto.DecodeFrame(data)
}

func (r *Receiver) PeerIDs() []proto.DeviceID {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]proto.DeviceID, 0, len(r.peers))
	for id := range r.peers {
		ids = append(ids, id)
	}
	return ids
}

// IsPeerConnected reports whether any peer was heard within the device timeout.
func (r *Receiver) IsPeerConnected() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, dev := range r.peers {
		if dev.IsAlive() {
			return true
		}
	}
	return false
}

func (r *Receiver) CleanupDeadPeers() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, dev := range r.peers {
		if !dev.IsAlive() {
			r.log.Info("peer timed out", zap.Uint32("peer", uint32(id)))
			delete(r.peers, id)
		}
	}
}

// RunCleanup drops silent peers every half heartbeat interval until ctx is done.
func (r *Receiver) RunCleanup(ctx context.Context) error {
	ticker := time.NewTicker(proto.HeartbeatInterval * time.Millisecond / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.CleanupDeadPeers()
		}
	}
}

// Stats counts write-endpoint outcomes.
type Stats struct {
	Accepted uint64 `json:"accepted"`
	Rejected uint64 `json:"rejected"`
}

func (r *Receiver) Stats() Stats {
	return Stats{Accepted: r.accepted.Load(), Rejected: r.rejected.Load()}
}
