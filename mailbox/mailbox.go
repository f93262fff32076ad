// Package mailbox holds the single pending message handed from the link layer
// to the display loop.
//
// The slot keeps only the latest write. A second write before the reader
// takes the first overwrites it and is counted; nothing is ever queued.
package mailbox

import (
	"sync"
	"sync/atomic"

	"github.com/ystepanoff/pitchcall/protocol"
)

// Mailbox is safe for one writer context and one reader context.
type Mailbox struct {
	mu     sync.Mutex
	buf    [protocol.MaxMessageSize]byte
	n      int
	unread bool

	writes     atomic.Uint64
	overwrites atomic.Uint64
}

func New() *Mailbox { return &Mailbox{} }

// Put stores msg and raises the unread flag. The buffer is fully written
// before the flag becomes visible to Take.
func (m *Mailbox) Put(msg []byte) error {
	if err := protocol.CheckMessage(msg); err != nil {
		return err
	}

	m.mu.Lock()
	if m.unread {
		m.overwrites.Add(1)
	}
	m.n = copy(m.buf[:], msg)
	m.unread = true
	m.mu.Unlock()

	m.writes.Add(1)
	return nil
}

// Take returns a copy of the pending message and clears the unread flag in
// the same critical section, so each write is handed out at most once.
func (m *Mailbox) Take() ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.unread {
		return nil, false
	}
	m.unread = false

	out := make([]byte, m.n)
	copy(out, m.buf[:m.n])
	return out, true
}

// HasUnread reports whether a message is waiting.
func (m *Mailbox) HasUnread() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unread
}

// Stats is a snapshot of the mailbox counters.
type Stats struct {
	Writes     uint64 `json:"writes"`
	Overwrites uint64 `json:"overwrites"`
}

func (m *Mailbox) Stats() Stats {
	return Stats{Writes: m.writes.Load(), Overwrites: m.overwrites.Load()}
}
