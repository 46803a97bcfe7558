// Copyright (c) 2025 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package transport

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ffutop/mbus-gateway/mbus"
	"github.com/ffutop/mbus-gateway/mbus/framer"
)

// Transport is an M-Bus master's connection to a bus.
// Frame count bit bookkeeping and retries belong to the caller.
type Transport interface {
	Connect(ctx context.Context) error
	// Send writes the frame and returns the reply frame of the slave.
	Send(ctx context.Context, frame mbus.Frame) (mbus.Frame, error)
	Close() error
}

// Exchange writes one frame to rw and reads one reply frame before deadline.
func Exchange(rw io.ReadWriter, frame mbus.Frame, deadline time.Time) (mbus.Frame, error) {
	request := mbus.Encode(frame)
	slog.Debug("send to mbus slave", "request", hex.EncodeToString(request))
	if _, err := rw.Write(request); err != nil {
		return nil, err
	}

	raw, err := framer.ReadFrame(rw, deadline)
	if err != nil {
		return nil, err
	}
	slog.Debug("recv from mbus slave", "response", hex.EncodeToString(raw))

	reply, err := mbus.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode reply: %w", err)
	}
	return reply, nil
}

// Deadline returns the earlier of ctx's deadline and now+timeout.
func Deadline(ctx context.Context, timeout time.Duration) time.Time {
	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		return d
	}
	return deadline
}
