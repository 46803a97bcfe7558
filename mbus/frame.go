// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

// Package mbus encodes and decodes M-Bus link layer frames in the FT 1.2
// format of EN 60870-5-2.
//
// Three frame shapes exist, told apart by their first byte:
//
//	Single character : 0xE5 (ACK) or 0xA2 (NACK)
//	Short frame      : 0x10 C A CS 0x16
//	Long frame       : 0x68 L L 0x68 C A data... CS 0x16
//
// All frame values are immutable. The frame count bit is not tracked here;
// a caller that alternates it re-renders a frame with WithFrameCountBit.
package mbus

import "fmt"

// FrameType identifies one of the three FT 1.2 frame shapes.
type FrameType uint8

const (
	FrameTypeShort FrameType = iota + 1
	FrameTypeLong
	FrameTypeSingle
)

func (t FrameType) String() string {
	switch t {
	case FrameTypeShort:
		return "short"
	case FrameTypeLong:
		return "long"
	case FrameTypeSingle:
		return "single character"
	default:
		return fmt.Sprintf("FrameType(%d)", uint8(t))
	}
}

// Frame is one of SingleCharacterFrame, ShortFrame or LongFrame.
type Frame interface {
	// Bytes returns the wire encoding of the frame.
	Bytes() []byte
	Type() FrameType
	// WithFrameCountBit returns the frame with the FCB of its control field
	// set or cleared. Frames without a control field are returned as is.
	WithFrameCountBit(fcb bool) Frame

	isFrame()
}

// DetectType tells the frame shape from the first byte of raw.
func DetectType(raw []byte) (FrameType, error) {
	if len(raw) == 0 {
		return 0, ErrEmpty
	}
	switch raw[0] {
	case ShortStartByte:
		return FrameTypeShort, nil
	case LongStartByte:
		return FrameTypeLong, nil
	case AckByte, NackByte:
		return FrameTypeSingle, nil
	default:
		return 0, &UnknownFrameTypeError{Byte: raw[0]}
	}
}

// Decode decodes one complete frame. Any failure is returned as a
// *FrameError wrapping the specific reason.
func Decode(raw []byte) (Frame, error) {
	t, err := DetectType(raw)
	if err != nil {
		return nil, &FrameError{Err: err}
	}

	var f Frame
	switch t {
	case FrameTypeShort:
		f, err = DecodeShortFrame(raw)
	case FrameTypeLong:
		f, err = DecodeLongFrame(raw)
	default:
		f, err = DecodeSingleCharacterFrame(raw)
	}
	if err != nil {
		return nil, &FrameError{Type: t, Err: err}
	}
	return f, nil
}

// Encode returns the wire encoding of f.
func Encode(f Frame) []byte {
	return f.Bytes()
}

// NewShort builds a short frame.
func NewShort(control Control, address Address) Frame {
	return NewShortFrame(control, address)
}

// NewLong builds a long frame. It fails if data exceeds MaxDataSize.
func NewLong(control Control, address Address, data []byte) (Frame, error) {
	f, err := NewLongFrame(control, address, data)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// NewSingle builds a single character frame.
func NewSingle(f SingleCharacterFrame) Frame {
	return f
}

// AddressOf returns the address of frames that carry one.
func AddressOf(f Frame) (Address, bool) {
	switch f := f.(type) {
	case ShortFrame:
		return f.Address(), true
	case LongFrame:
		return f.Address(), true
	default:
		return Address{}, false
	}
}
