// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/ffutop/mbus-gateway/mbus"
)

// decodeHex accepts hex with any mix of spaces, '|', '_' and ':' separators.
func decodeHex(s string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '|', '_', ':':
			return -1
		}
		return r
	}, s)
	return hex.DecodeString(cleaned)
}

// parseControl accepts a link layer name (SND_NKE, REQ_UD2, ...) or a
// command kind name (initialize, request, ...).
func parseControl(s string) (mbus.Control, error) {
	aliases := map[string]mbus.Control{
		"initialize":       mbus.Initialize,
		"send":             mbus.Send,
		"priority-request": mbus.PriorityRequest,
		"request":          mbus.Request,
		"response":         mbus.Response,
	}
	if c, ok := aliases[strings.ToLower(s)]; ok {
		return c, nil
	}
	for _, c := range mbus.Controls {
		if strings.EqualFold(c.String(), s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown control %q", s)
}

// parseAddress accepts an address byte (0-255) or a reserved address name.
func parseAddress(s string) (mbus.Address, error) {
	if n, err := strconv.ParseUint(s, 0, 8); err == nil {
		return mbus.AddressFromByte(byte(n)), nil
	}
	for _, a := range []mbus.Address{mbus.Unconfigured, mbus.Management, mbus.Reserved, mbus.Secondary, mbus.Diagnosis, mbus.Broadcast} {
		if strings.EqualFold(a.String(), s) {
			return a, nil
		}
	}
	return mbus.Address{}, fmt.Errorf("invalid address %q", s)
}

func describe(f mbus.Frame) string {
	switch f := f.(type) {
	case mbus.SingleCharacterFrame:
		return f.String()
	case mbus.ShortFrame:
		return fmt.Sprintf("short %s address=%s fcb=%t checksum=%#02x",
			f.Control(), f.Address(), f.FrameCountBit(), f.Checksum())
	case mbus.LongFrame:
		return fmt.Sprintf("long %s address=%s fcb=%t fcv=%t length=%d data=%s checksum=%#02x",
			f.Control(), f.Address(), f.FrameCountBit(), f.FrameCountValid(), f.Length(),
			strings.ToUpper(hex.EncodeToString(f.Data())), f.Checksum())
	default:
		return fmt.Sprintf("%T", f)
	}
}

func formatHex(raw []byte) string {
	return strings.ToUpper(hex.EncodeToString(raw))
}
