// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ffutop/mbus-gateway/mbus"
)

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex>...",
		Short: "Decode frames given as hex",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, arg := range args {
				raw, err := decodeHex(arg)
				if err != nil {
					return fmt.Errorf("invalid hex %q: %w", arg, err)
				}
				f, err := mbus.Decode(raw)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, describe(f))
			}
			return nil
		},
	}
}
