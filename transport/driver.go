package transport

import "time"

// RadioDriver is the interface that wraps the basic radio operations.
type RadioDriver interface {
	StartHFCLK()
	Configure(address uint32, prefix byte, channel uint8) error
	SetChannel(channel uint8) error
	Tx(data []byte) error
	Rx(timeout time.Duration) ([]byte, error)
}

// Sink accepts messages from the write endpoint. The mailbox satisfies it.
type Sink interface {
	Put(msg []byte) error
}

// Waker is told that a displayable message has arrived.
type Waker interface {
	Wake()
}

// WakeFunc adapts a function to Waker.
type WakeFunc func()

func (f WakeFunc) Wake() { f() }

type nopWaker struct{}

func (nopWaker) Wake() {}
