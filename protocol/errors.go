package protocol

import "errors"

var (
	ErrInvalidPayload  = errors.New("invalid payload size")
	ErrEmptyMessage    = errors.New("empty message")
	ErrMessageTooLarge = errors.New("message exceeds 32 bytes")
	ErrTimeout         = errors.New("operation timed out")
	ErrInvalidChannel  = errors.New("invalid channel (valid range: 0-125)")
	ErrInvalidAddress  = errors.New("invalid link-layer address")
)

// CheckMessage reports whether msg fits the write endpoint.
func CheckMessage(msg []byte) error {
	switch {
	case len(msg) == 0:
		return ErrEmptyMessage
	case len(msg) > MaxMessageSize:
		return ErrMessageTooLarge
	}
	return nil
}
