// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package mbus

import (
	"errors"
	"fmt"
)

var ErrUnsupportedCommunicationType = errors.New("mbus: unsupported communication type")

// Control is the command kind carried by the control field. The frame count
// bit is not part of the kind; frames carry it next to their Control and
// apply it when encoding.
type Control uint8

const (
	Initialize      Control = iota + 1 // SND_NKE
	Send                               // SND_UD
	PriorityRequest                    // REQ_UD1
	Request                            // REQ_UD2
	Response                           // RSP_UD
)

// Controls lists every command kind.
var Controls = []Control{Initialize, Send, PriorityRequest, Request, Response}

// ParseControl decodes a control byte. Only the documented bit patterns are
// accepted.
func ParseControl(b byte) (Control, error) {
	switch b {
	case 0x40:
		return Initialize, nil
	case 0x53, 0x73:
		return Send, nil
	case 0x5A, 0x7A:
		return PriorityRequest, nil
	case 0x5B, 0x7B:
		return Request, nil
	case 0x08, 0x18, 0x28, 0x38:
		return Response, nil
	default:
		return 0, fmt.Errorf("%w: %#02x", ErrUnsupportedCommunicationType, b)
	}
}

// Byte returns the canonical encoding of c, with FCB and FCV clear.
func (c Control) Byte() byte {
	switch c {
	case Initialize:
		return 0x40
	case Send:
		return 0x53
	case PriorityRequest:
		return 0x5A
	case Request:
		return 0x5B
	case Response:
		return 0x08
	default:
		return 0
	}
}

// HasFrameCountBit reports whether the command kind carries an FCB.
func (c Control) HasFrameCountBit() bool {
	switch c {
	case Send, PriorityRequest, Request, Response:
		return true
	default:
		return false
	}
}

// WithFrameCountBit sets or clears the FCB of the control byte b, which must
// be an encoding of c. FCV is preserved. Initialize has no FCB and b is
// returned as is.
func (c Control) WithFrameCountBit(b byte, fcb bool) byte {
	if !c.HasFrameCountBit() {
		return b
	}
	if fcb {
		return b | FrameCountBit
	}
	return b &^ FrameCountBit
}

func (c Control) String() string {
	switch c {
	case Initialize:
		return "SND_NKE"
	case Send:
		return "SND_UD"
	case PriorityRequest:
		return "REQ_UD1"
	case Request:
		return "REQ_UD2"
	case Response:
		return "RSP_UD"
	default:
		return fmt.Sprintf("Control(%d)", uint8(c))
	}
}

// controlField is a control kind plus the FCB/FCV bits seen on the wire.
type controlField struct {
	kind  Control
	flags byte
}

func parseControlField(b byte) (controlField, error) {
	c, err := ParseControl(b)
	if err != nil {
		return controlField{}, err
	}
	return controlField{kind: c, flags: b ^ c.Byte()}, nil
}

func (f controlField) Byte() byte {
	return f.kind.Byte() | f.flags
}

func (f controlField) withFrameCountBit(fcb bool) controlField {
	f.flags = f.kind.WithFrameCountBit(f.flags, fcb)
	return f
}

func (f controlField) frameCountBit() bool {
	return f.flags&FrameCountBit != 0
}

func (f controlField) frameCountValid() bool {
	return f.kind == Response && f.flags&FrameCountValid != 0
}
