// Command pitchcall runs the wearable on the host: the radio is an in-memory
// link, the screen is a terminal face and the companion connects through the
// HTTP/websocket bridge.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ystepanoff/pitchcall"
	"github.com/ystepanoff/pitchcall/internal/bridge"
	"github.com/ystepanoff/pitchcall/internal/config"
	"github.com/ystepanoff/pitchcall/internal/logging"
	"github.com/ystepanoff/pitchcall/internal/surface"
	"github.com/ystepanoff/pitchcall/mailbox"
	"github.com/ystepanoff/pitchcall/protocol"
	"github.com/ystepanoff/pitchcall/session"
	"github.com/ystepanoff/pitchcall/transport"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "pitchcall:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logFile := cfg.Log.File
	if cfg.UI.Enabled && logFile == "" {
		logFile = filepath.Join(os.TempDir(), "pitchcall.log")
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Development, logFile)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.Warn("failed to load .env", zap.Error(envErr))
	}

	hw, err := protocol.ParseHWAddr(cfg.Radio.HWAddr)
	if err != nil {
		return err
	}
	dev := protocol.NewDevice(protocol.DeviceID(cfg.Radio.DeviceID), hw)
	box := mailbox.New()

	// The face and the receiver both need the controller, which needs the
	// face; the closures break the cycle.
	var ctrl *session.Controller
	var rx *transport.Receiver
	var display interface {
		session.Display
		session.Haptics
	}
	var face *surface.Face
	if cfg.UI.Enabled {
		face = surface.NewFace(dev.ShortID(),
			func() { ctrl.RequestDismiss() },
			func() bool { return rx.IsPeerConnected() },
		)
		display = face
	} else {
		display = surface.NewLogSurface(log)
	}

	ctrl = session.NewController(box, display, display,
		session.WithTimeout(cfg.Session.DismissTimeout),
		session.WithTickInterval(cfg.Session.TickInterval),
		session.WithPulse(cfg.Session.HapticPulse),
		session.WithLogger(log),
	)

	tx, rx := pitchcall.NewLoopback(protocol.DeviceID(cfg.Radio.PeerID), dev, box, log, transport.WithWaker(ctrl))
	for _, setChannel := range []func(uint8) error{tx.SetChannel, rx.SetChannel} {
		if err := setChannel(cfg.Radio.Channel); err != nil {
			return err
		}
	}
	if err := rx.Initialise(); err != nil {
		return err
	}
	if err := tx.Initialise(); err != nil {
		return err
	}

	log.Info("wearable ready",
		zap.String("short_id", dev.ShortID()),
		zap.Uint8("channel", cfg.Radio.Channel),
		zap.String("service", protocol.ServiceUUID),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return rx.Listen(gctx) })
	g.Go(func() error { return rx.RunCleanup(gctx) })
	g.Go(func() error { return tx.RunHeartbeat(gctx, cfg.Radio.Heartbeat) })
	g.Go(func() error { return ctrl.Run(gctx) })

	if cfg.Bridge.Enabled {
		srv := bridge.New(tx, rx, func() any {
			return struct {
				Session  session.Stats   `json:"session"`
				Mailbox  mailbox.Stats   `json:"mailbox"`
				Receiver transport.Stats `json:"receiver"`
			}{ctrl.Stats(), box.Stats(), rx.Stats()}
		}, log)
		g.Go(func() error { return srv.Run(gctx, cfg.Bridge.Addr) })
	}

	if face != nil {
		prog := face.Program(tea.WithContext(gctx), tea.WithAltScreen())
		g.Go(func() error {
			_, err := prog.Run()
			stop()
			if errors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			return err
		})
	}

	if err := tx.Handshake(); err != nil {
		log.Warn("handshake failed", zap.Error(err))
	}

	err = g.Wait()
	log.Info("shutting down", zap.Stringer("state", ctrl.State()))
	return err
}
