// Package pitchcall is the entry point to the wearable signal receiver: the
// radio link, the single-slot mailbox, the signal decoder and the session
// controller that drives the display.
package pitchcall

import (
	"github.com/ystepanoff/pitchcall/mailbox"
	"github.com/ystepanoff/pitchcall/protocol"
	"github.com/ystepanoff/pitchcall/session"
	"github.com/ystepanoff/pitchcall/signal"
	"github.com/ystepanoff/pitchcall/transport"
)

// Radio constructors live in build-tag specific files:
// - constructors_nrf.go for embedded targets (//go:build tinygo || baremetal)
// - constructors_host.go for host builds (//go:build !tinygo && !baremetal)

type (
	DeviceID     = protocol.DeviceID
	Device       = protocol.Device
	Frame        = protocol.Frame
	ParsedSignal = signal.ParsedSignal
	Kind         = signal.Kind
	Zone         = signal.Zone
	Sign         = signal.Sign
	Mailbox      = mailbox.Mailbox
	Controller   = session.Controller
	View         = session.View
	Transmitter  = transport.Transmitter
	Receiver     = transport.Receiver
)

var (
	ErrInvalidPayload  = protocol.ErrInvalidPayload
	ErrMessageTooLarge = protocol.ErrMessageTooLarge
	ErrEmptyMessage    = protocol.ErrEmptyMessage
	ErrTimeout         = protocol.ErrTimeout
	ErrInvalidChannel  = protocol.ErrInvalidChannel
	ErrInvalidAddress  = protocol.ErrInvalidAddress
)

const (
	KindUnknown = signal.KindUnknown
	KindConnect = signal.KindConnect
	KindPitch   = signal.KindPitch
	KindPlay    = signal.KindPlay

	MaxMessageSize = protocol.MaxMessageSize
	Handshake      = protocol.Handshake
)

// Decode parses one raw message. It never fails; unrecognised input yields
// a signal of KindUnknown.
func Decode(raw []byte) ParsedSignal { return signal.Decode(raw) }

// NewMailbox returns an empty single-slot mailbox.
func NewMailbox() *Mailbox { return mailbox.New() }
