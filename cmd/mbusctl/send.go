// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ffutop/mbus-gateway/internal/capture"
	"github.com/ffutop/mbus-gateway/mbus"
)

// sender is satisfied by transports and by the router.
type sender interface {
	Send(ctx context.Context, frame mbus.Frame) (mbus.Frame, error)
	Close() error
}

func newSendCmd(a *app) *cobra.Command {
	var (
		ff      frameFlags
		busName string
	)
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a frame on a configured bus and print the reply",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := ff.build(false)
			if err != nil {
				return err
			}

			var s sender
			if busName != "" {
				bus, ok := a.cfg.Bus(busName)
				if !ok {
					return fmt.Errorf("no bus named %q", busName)
				}
				if s, err = newTransport(bus); err != nil {
					return err
				}
			} else {
				r, err := newRouter(a.cfg)
				if err != nil {
					return err
				}
				r.Connect(cmd.Context())
				s = r
			}
			defer s.Close()

			store := capture.New(a.cfg.Capture)
			defer store.Close()

			return exchange(cmd, s, store, request)
		},
	}
	ff.register(cmd)
	cmd.Flags().StringVarP(&busName, "bus", "b", "", "Bus name; route by address when empty.")
	return cmd
}

func exchange(cmd *cobra.Command, s sender, store capture.Storage, request mbus.Frame) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "> %s  %s\n", formatHex(mbus.Encode(request)), describe(request))

	if err := store.Append(request); err != nil {
		slog.Warn("Failed to record request", "err", err)
	}

	reply, err := s.Send(cmd.Context(), request)
	if err != nil {
		return err
	}

	if err := store.Append(reply); err != nil {
		slog.Warn("Failed to record reply", "err", err)
	}
	fmt.Fprintf(out, "< %s  %s\n", formatHex(mbus.Encode(reply)), describe(reply))
	return nil
}
