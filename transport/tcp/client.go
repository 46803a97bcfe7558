// Copyright (c) 2025 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

// Package tcp talks to an M-Bus segment through a transparent TCP to
// M-Bus level converter. Frames travel unchanged over the connection.
package tcp

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/ffutop/mbus-gateway/mbus"
	"github.com/ffutop/mbus-gateway/transport"
)

const (
	tcpTimeout = 10 * time.Second
)

var _ transport.Transport = (*Client)(nil)

// Client implements transport.Transport over TCP.
type Client struct {
	Address string
	Timeout time.Duration
}

// NewClient allocates and initializes a TCP Client.
func NewClient(address string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = tcpTimeout
	}
	return &Client{
		Address: address,
		Timeout: timeout,
	}
}

// Send dials the converter, writes frame and reads the reply.
func (c *Client) Send(ctx context.Context, frame mbus.Frame) (mbus.Frame, error) {
	dialer := net.Dialer{Timeout: c.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.Address)
	if err != nil {
		return nil, fmt.Errorf("mbus: failed to connect to %s: %w", c.Address, err)
	}
	defer conn.Close()

	deadline := transport.Deadline(ctx, c.Timeout)
	if err = conn.SetDeadline(deadline); err != nil {
		return nil, err
	}

	return transport.Exchange(conn, frame, deadline)
}

// Connect checks that the address resolves.
func (c *Client) Connect(ctx context.Context) error {
	_, err := net.ResolveTCPAddr("tcp", c.Address)
	return err
}

// Close implements transport.Transport.
func (c *Client) Close() error {
	return nil
}
