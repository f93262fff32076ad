package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ystepanoff/pitchcall/protocol"
)

// Config holds application configuration.
type Config struct {
	Session SessionConfig
	Radio   RadioConfig
	Bridge  BridgeConfig
	Log     LogConfig
	UI      UIConfig
}

// SessionConfig holds presentation timings.
type SessionConfig struct {
	DismissTimeout time.Duration `mapstructure:"dismiss_timeout"`
	TickInterval   time.Duration `mapstructure:"tick_interval"`
	HapticPulse    time.Duration `mapstructure:"haptic_pulse"`
}

// RadioConfig holds link settings for both ends of the simulated link.
type RadioConfig struct {
	Channel   uint8
	DeviceID  uint32        `mapstructure:"device_id"`
	PeerID    uint32        `mapstructure:"peer_id"`
	HWAddr    string        `mapstructure:"hw_addr"`
	Heartbeat time.Duration `mapstructure:"heartbeat"`
}

// BridgeConfig holds the companion bridge listener.
type BridgeConfig struct {
	Enabled bool
	Addr    string
}

type LogConfig struct {
	Level       string
	Development bool
	File        string
}

type UIConfig struct {
	Enabled bool
}

// Load reads configuration from file and env. Env var overrides use prefix PITCHCALL_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("PITCHCALL_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "pitchcall"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PITCHCALL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit path must exist; the default location is optional
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("session.dismiss_timeout", 15*time.Second)
	v.SetDefault("session.tick_interval", 100*time.Millisecond)
	v.SetDefault("session.haptic_pulse", 50*time.Millisecond)
	v.SetDefault("radio.channel", protocol.DefaultChannel)
	v.SetDefault("radio.device_id", uint32(0x87654321))
	v.SetDefault("radio.peer_id", uint32(0x12345678))
	v.SetDefault("radio.hw_addr", "C0:FF:EE:00:12:AB")
	v.SetDefault("radio.heartbeat", protocol.HeartbeatInterval*time.Millisecond)
	v.SetDefault("bridge.enabled", true)
	v.SetDefault("bridge.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("log.file", "")
	v.SetDefault("ui.enabled", true)
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	durations := []struct {
		key string
		d   time.Duration
	}{
		{"session.dismiss_timeout", c.Session.DismissTimeout},
		{"session.tick_interval", c.Session.TickInterval},
		{"session.haptic_pulse", c.Session.HapticPulse},
		{"radio.heartbeat", c.Radio.Heartbeat},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.key, d.d)
		}
	}
	if c.Radio.Channel > protocol.MaxChannel {
		return fmt.Errorf("radio.channel %d: %w", c.Radio.Channel, protocol.ErrInvalidChannel)
	}
	if _, err := protocol.ParseHWAddr(c.Radio.HWAddr); err != nil {
		return fmt.Errorf("radio.hw_addr: %w", err)
	}
	if c.Bridge.Enabled && c.Bridge.Addr == "" {
		return errors.New("bridge.addr is required when the bridge is enabled")
	}
	return nil
}
