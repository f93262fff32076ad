// Package bridge lets a companion controller reach the wearable over HTTP or
// a websocket. Every message it accepts is sent on the radio link exactly as
// a phone would write it to the signal characteristic.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ystepanoff/pitchcall/protocol"
)

// Sender puts messages on the link.
type Sender interface {
	SendMessage(msg []byte) error
	Handshake() error
}

// Device answers the read endpoint and link status.
type Device interface {
	ShortID() string
	IsPeerConnected() bool
}

// StatsFunc returns a JSON-encodable snapshot of the runtime counters.
type StatsFunc func() any

type Server struct {
	sender Sender
	device Device
	stats  StatsFunc
	log    *zap.Logger
}

func New(sender Sender, device Device, stats StatsFunc, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if stats == nil {
		stats = func() any { return struct{}{} }
	}
	return &Server{sender: sender, device: device, stats: stats, log: log.Named("bridge")}
}

// Routes wires the bridge endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", Healthz)
	r.Get("/device", s.handleDevice)
	r.Get("/stats", s.handleStats)
	r.Post("/signal", s.handleSignal)
	r.Post("/handshake", s.handleHandshake)
	r.Get("/ws", s.handleWS)
	return r
}

// Run serves on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

type deviceInfo struct {
	ShortID        string `json:"short_id"`
	Service        string `json:"service"`
	Characteristic string `json:"characteristic"`
	Linked         bool   `json:"linked"`
}

func (s *Server) handleDevice(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, deviceInfo{
		ShortID:        s.device.ShortID(),
		Service:        protocol.ServiceUUID,
		Characteristic: protocol.SignalCharacteristic,
		Linked:         s.device.IsPeerConnected(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.stats())
}

// handleSignal sends the raw request body. One byte past the limit is read
// so oversized bodies are rejected rather than truncated.
func (s *Server) handleSignal(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, protocol.MaxMessageSize+1))
	if err != nil {
		respondError(w, http.StatusBadRequest, "read body")
		return
	}
	if err := s.sender.SendMessage(body); err != nil {
		status, msg := sendStatus(err)
		respondError(w, status, msg)
		return
	}
	s.log.Info("signal relayed", zap.ByteString("msg", body))
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleHandshake(w http.ResponseWriter, r *http.Request) {
	if err := s.sender.Handshake(); err != nil {
		status, msg := sendStatus(err)
		respondError(w, status, msg)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func sendStatus(err error) (int, string) {
	switch {
	case errors.Is(err, protocol.ErrEmptyMessage):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, protocol.ErrMessageTooLarge):
		return http.StatusRequestEntityTooLarge, err.Error()
	default:
		return http.StatusBadGateway, "radio send failed"
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
