// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ffutop/mbus-gateway/mbus"
)

// frameFlags are the flags describing a frame to build.
type frameFlags struct {
	control string
	address string
	fcb     bool
	data    string
}

func (ff *frameFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ff.control, "control", "REQ_UD2", "Control field (SND_NKE, SND_UD, REQ_UD1, REQ_UD2, RSP_UD).")
	cmd.Flags().StringVarP(&ff.address, "address", "a", "254", "Address byte or reserved name.")
	cmd.Flags().BoolVar(&ff.fcb, "fcb", false, "Set the frame count bit.")
	cmd.Flags().StringVar(&ff.data, "data", "", "User data as hex; builds a long frame.")
}

// build returns a short frame, or a long frame when data is given or long
// is set.
func (ff *frameFlags) build(long bool) (mbus.Frame, error) {
	control, err := parseControl(ff.control)
	if err != nil {
		return nil, err
	}
	address, err := parseAddress(ff.address)
	if err != nil {
		return nil, err
	}

	var f mbus.Frame
	if long || ff.data != "" {
		data, err := decodeHex(ff.data)
		if err != nil {
			return nil, fmt.Errorf("invalid data: %w", err)
		}
		if f, err = mbus.NewLong(control, address, data); err != nil {
			return nil, err
		}
	} else {
		f = mbus.NewShort(control, address)
	}
	return f.WithFrameCountBit(ff.fcb), nil
}

func newEncodeCmd() *cobra.Command {
	var ff frameFlags
	cmd := &cobra.Command{
		Use:       "encode ack|nack|short|long",
		Short:     "Encode a frame and print it as hex",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"ack", "nack", "short", "long"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var f mbus.Frame
			switch args[0] {
			case "ack":
				f = mbus.NewSingle(mbus.Ack)
			case "nack":
				f = mbus.NewSingle(mbus.Nack)
			case "short", "long":
				var err error
				if f, err = ff.build(args[0] == "long"); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown frame type %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatHex(mbus.Encode(f)))
			return nil
		},
	}
	ff.register(cmd)
	return cmd
}
