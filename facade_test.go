//go:build !tinygo && !baremetal

package pitchcall

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ystepanoff/pitchcall/protocol"
	"github.com/ystepanoff/pitchcall/session"
	"github.com/ystepanoff/pitchcall/transport"
)

type lastView struct{ views chan session.View }

func (l lastView) ShowWaiting()              {}
func (l lastView) ShowSignal(v session.View) { l.views <- v }
func (l lastView) ShowCountdown(float64)     {}
func (l lastView) Pulse(time.Duration)       {}

func TestLoopbackToScreen(t *testing.T) {
	hw, err := protocol.ParseHWAddr("C0:FF:EE:00:12:AB")
	require.NoError(t, err)
	dev := protocol.NewDevice(0x87654321, hw)

	box := NewMailbox()
	surface := lastView{views: make(chan session.View, 4)}
	ctrl := session.NewController(box, surface, surface, session.WithTickInterval(time.Hour))

	tx, rx := NewLoopback(0x12345678, dev, box, nil, transport.WithWaker(ctrl))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = rx.Listen(ctx) }()
	go func() { _ = ctrl.Run(ctx) }()

	require.NoError(t, tx.Handshake())
	require.NoError(t, tx.SendMessage([]byte("PITCH|CUT|4|3")))

	select {
	case v := <-surface.views:
		require.Equal(t, "CUT 3", v.Text)
		require.True(t, v.ShowGrid)
	case <-time.After(2 * time.Second):
		t.Fatal("signal never reached the screen")
	}

	require.ErrorIs(t, tx.SendMessage(make([]byte, MaxMessageSize+1)), ErrMessageTooLarge)
	require.Equal(t, "12AB", rx.ShortID())
	require.Equal(t, KindPlay, Decode([]byte("PLAY|SQUEEZE")).Kind)
}
