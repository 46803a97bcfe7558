// Copyright (c) 2025-2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config defines the global configuration structure
type Config struct {
	Buses   []BusConfig   `mapstructure:"buses"`
	Capture CaptureConfig `mapstructure:"capture"`
	Log     LogConfig     `mapstructure:"log"`
}

// LogConfig defines logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
	File  string `mapstructure:"file"`  // Log file path
}

// BusConfig defines an M-Bus segment the master talks to
type BusConfig struct {
	Name      string       `mapstructure:"name"`
	Type      string       `mapstructure:"type"`      // "serial", "tcp"
	Addresses string       `mapstructure:"addresses"` // Routing rules: "1", "1,2", "1-10"
	Serial    SerialConfig `mapstructure:"serial"`    // Used if Type is "serial"
	Tcp       TcpConfig    `mapstructure:"tcp"`       // Used if Type is "tcp"
}

// CaptureConfig defines where received telegrams are recorded
type CaptureConfig struct {
	Type string `mapstructure:"type"` // "memory", "file", "mmap"
	Path string `mapstructure:"path"` // File path for "file/mmap" type
}

// TcpConfig defines settings of a transparent TCP/M-Bus converter
type TcpConfig struct {
	Address string        `mapstructure:"address"` // e.g. "192.168.1.100:10001"
	Timeout time.Duration `mapstructure:"timeout"`
}

// SerialConfig defines M-Bus level converter settings
type SerialConfig struct {
	Device      string        `mapstructure:"device"`
	BaudRate    int           `mapstructure:"baud_rate"`
	DataBits    int           `mapstructure:"data_bits"`
	Parity      string        `mapstructure:"parity"`
	StopBits    int           `mapstructure:"stop_bits"`
	Timeout     time.Duration `mapstructure:"timeout"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`

	// RS485 specific
	RS485              bool          `mapstructure:"rs485"`
	DelayRtsBeforeSend time.Duration `mapstructure:"delay_rts_before_send"`
	DelayRtsAfterSend  time.Duration `mapstructure:"delay_rts_after_send"`
	RtsHighDuringSend  bool          `mapstructure:"rts_high_during_send"`
	RtsHighAfterSend   bool          `mapstructure:"rts_high_after_send"`
	RxDuringTx         bool          `mapstructure:"rx_during_tx"`
}

// LoadConfig loads configuration from file. Flags, when given, override
// file values under the same keys (e.g. "log.level"). A missing config file
// is not an error unless configFile names it explicitly.
func LoadConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/mbusgw/")
		v.AddConfigPath("$HOME/.mbusgw")
		v.AddConfigPath(".")
	}

	// Set defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("capture.type", "memory")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate / Fixups
	for i := range config.Buses {
		bus := &config.Buses[i]
		if bus.Name == "" {
			bus.Name = fmt.Sprintf("bus%d", i)
		}
		fixupSerial(&bus.Serial)
		if bus.Tcp.Timeout == 0 {
			bus.Tcp.Timeout = 2 * time.Second
		}
	}

	return &config, nil
}

// Bus returns the bus with the given name.
func (c *Config) Bus(name string) (BusConfig, bool) {
	for _, bus := range c.Buses {
		if bus.Name == name {
			return bus, true
		}
	}
	return BusConfig{}, false
}

// fixupSerial applies M-Bus defaults: 2400 baud, 8 data bits, even parity,
// one stop bit.
func fixupSerial(s *SerialConfig) {
	s.Parity = strings.ToUpper(s.Parity)
	if s.Parity == "" {
		s.Parity = "E"
	}
	if s.BaudRate == 0 {
		s.BaudRate = 2400
	}
	if s.DataBits == 0 {
		s.DataBits = 8
	}
	if s.StopBits == 0 {
		s.StopBits = 1
	}
	if s.Timeout == 0 {
		s.Timeout = time.Second
	}
	if s.IdleTimeout == 0 {
		s.IdleTimeout = 60 * time.Second
	}
}
