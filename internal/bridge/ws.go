package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"
)

// reply is written back for every text frame the companion sends.
type reply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// handleWS relays each text frame as one message. The connection stays open
// across failed sends; only a read error ends it.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	s.log.Info("companion connected", zap.String("remote", r.RemoteAddr))
	conn.SetReadLimit(1024)

	for {
		ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
		typ, data, err := conn.Read(ctx)
		cancel()
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				s.log.Info("companion left")
			default:
				s.log.Debug("ws read", zap.Error(err))
			}
			return
		}

		out := reply{OK: true}
		if typ != websocket.MessageText {
			out = reply{Error: "text frames only"}
		} else if err := s.sender.SendMessage(data); err != nil {
			_, msg := sendStatus(err)
			out = reply{Error: msg}
		}

		payload, _ := json.Marshal(out)
		wctx, wcancel := context.WithTimeout(r.Context(), 3*time.Second)
		err = conn.Write(wctx, websocket.MessageText, payload)
		wcancel()
		if err != nil {
			return
		}
	}
}
