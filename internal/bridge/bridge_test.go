package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/require"

	"github.com/ystepanoff/pitchcall/protocol"
)

type fakeSender struct {
	mu         sync.Mutex
	sent       []string
	handshakes int
	fail       error
}

func (f *fakeSender) SendMessage(msg []byte) error {
	if err := protocol.CheckMessage(msg); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, string(msg))
	return nil
}

func (f *fakeSender) Handshake() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handshakes++
	return nil
}

func (f *fakeSender) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

type fakeDevice struct{ linked bool }

func (fakeDevice) ShortID() string         { return "12AB" }
func (d fakeDevice) IsPeerConnected() bool { return d.linked }

func newTestServer(t *testing.T, sender *fakeSender) *httptest.Server {
	t.Helper()
	stats := func() any { return map[string]int{"shown": 3} }
	srv := httptest.NewServer(New(sender, fakeDevice{linked: true}, stats, nil).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func TestSignalEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fail       error
		wantStatus int
	}{
		{"pitch", "PITCH|FB|5|1", nil, http.StatusAccepted},
		{"play", "PLAY|BUNT", nil, http.StatusAccepted},
		{"empty", "", nil, http.StatusBadRequest},
		{"oversized", strings.Repeat("X", protocol.MaxMessageSize+10), nil, http.StatusRequestEntityTooLarge},
		{"radio down", "PLAY|STEAL", protocol.ErrTimeout, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{fail: tt.fail}
			srv := newTestServer(t, sender)

			resp, err := http.Post(srv.URL+"/signal", "text/plain", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus == http.StatusAccepted {
				require.Equal(t, []string{tt.body}, sender.messages())
			} else {
				require.Empty(t, sender.messages())
			}
		})
	}
}

func TestHandshakeEndpoint(t *testing.T) {
	sender := &fakeSender{}
	srv := newTestServer(t, sender)

	resp, err := http.Post(srv.URL+"/handshake", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	require.Equal(t, 1, sender.handshakes)
}

func TestDeviceEndpoint(t *testing.T) {
	srv := newTestServer(t, &fakeSender{})

	resp, err := http.Get(srv.URL + "/device")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var info deviceInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	require.Equal(t, "12AB", info.ShortID)
	require.Equal(t, protocol.ServiceUUID, info.Service)
	require.Equal(t, protocol.SignalCharacteristic, info.Characteristic)
	require.True(t, info.Linked)
}

func TestHealthzAndStats(t *testing.T) {
	srv := newTestServer(t, &fakeSender{})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	var got map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, 3, got["shown"])
}

func TestWebSocketRelay(t *testing.T) {
	sender := &fakeSender{}
	srv := newTestServer(t, sender)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	exchange := func(typ websocket.MessageType, msg string) reply {
		require.NoError(t, conn.Write(ctx, typ, []byte(msg)))
		_, data, err := conn.Read(ctx)
		require.NoError(t, err)
		var r reply
		require.NoError(t, json.Unmarshal(data, &r))
		return r
	}

	require.True(t, exchange(websocket.MessageText, "PITCH|CB|7|2").OK)
	require.True(t, exchange(websocket.MessageText, "CONNECT").OK)

	r := exchange(websocket.MessageText, strings.Repeat("X", 40))
	require.False(t, r.OK)
	require.Equal(t, protocol.ErrMessageTooLarge.Error(), r.Error)

	r = exchange(websocket.MessageBinary, "PLAY|BUNT")
	require.False(t, r.OK)

	require.Equal(t, []string{"PITCH|CB|7|2", "CONNECT"}, sender.messages())
}
