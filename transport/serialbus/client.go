// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

// Package serialbus talks to an M-Bus segment through a serial level
// converter.
package serialbus

import (
	"context"
	"time"

	"github.com/grid-x/serial"

	"github.com/ffutop/mbus-gateway/internal/config"
	"github.com/ffutop/mbus-gateway/mbus"
	"github.com/ffutop/mbus-gateway/transport"
)

var _ transport.Transport = (*Client)(nil)

// Client implements transport.Transport as an M-Bus master on a serial line.
type Client struct {
	serialPort
}

// NewClient allocates and initializes a serial Client.
func NewClient(cfg config.SerialConfig) *Client {
	client := &Client{}

	// Map internal config to serial.Config
	client.Config.Address = cfg.Device
	client.Config.BaudRate = cfg.BaudRate
	client.Config.DataBits = cfg.DataBits
	client.Config.StopBits = cfg.StopBits
	client.Config.Parity = cfg.Parity
	client.Config.Timeout = cfg.Timeout
	if cfg.RS485 {
		client.Config.RS485 = serial.RS485Config{
			Enabled:            true,
			DelayRtsBeforeSend: cfg.DelayRtsBeforeSend,
			DelayRtsAfterSend:  cfg.DelayRtsAfterSend,
			RtsHighDuringSend:  cfg.RtsHighDuringSend,
			RtsHighAfterSend:   cfg.RtsHighAfterSend,
			RxDuringTx:         cfg.RxDuringTx,
		}
	}

	client.IdleTimeout = cfg.IdleTimeout
	if client.IdleTimeout == 0 {
		client.IdleTimeout = serialIdleTimeout
	}
	return client
}

// Send writes frame to the bus and waits up to the configured timeout for
// the reply.
func (c *Client) Send(ctx context.Context, frame mbus.Frame) (mbus.Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.connect(ctx); err != nil {
		return nil, err
	}
	c.lastActivity = time.Now()
	c.startCloseTimer()

	return transport.Exchange(c.port, frame, transport.Deadline(ctx, c.Config.Timeout))
}
