// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ffutop/mbus-gateway/internal/capture"
	"github.com/ffutop/mbus-gateway/mbus"
)

func newReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <file>",
		Short: "Decode every frame of a capture file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := capture.NewMmapStorage(args[0])
			defer store.Close()

			frames, err := store.Load()
			out := cmd.OutOrStdout()
			for i, f := range frames {
				fmt.Fprintf(out, "%4d  %s  %s\n", i, formatHex(mbus.Encode(f)), describe(f))
			}
			return err
		},
	}
}
