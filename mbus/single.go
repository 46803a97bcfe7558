// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package mbus

// SingleCharacterFrame is a one byte acknowledgement.
type SingleCharacterFrame byte

const (
	Ack  SingleCharacterFrame = AckByte
	Nack SingleCharacterFrame = NackByte
)

// DecodeSingleCharacterFrame decodes a one byte frame.
func DecodeSingleCharacterFrame(raw []byte) (SingleCharacterFrame, error) {
	if len(raw) != SingleCharacterSize {
		return 0, &InvalidSizeError{Size: len(raw), Min: SingleCharacterSize, Max: SingleCharacterSize}
	}
	switch raw[0] {
	case AckByte:
		return Ack, nil
	case NackByte:
		return Nack, nil
	default:
		return 0, &InvalidByteError{Actual: raw[0]}
	}
}

func (f SingleCharacterFrame) Bytes() []byte {
	return []byte{byte(f)}
}

func (f SingleCharacterFrame) Type() FrameType {
	return FrameTypeSingle
}

// WithFrameCountBit returns f; single characters have no control field.
func (f SingleCharacterFrame) WithFrameCountBit(bool) Frame {
	return f
}

func (f SingleCharacterFrame) String() string {
	if f == Nack {
		return "NACK"
	}
	return "ACK"
}

func (SingleCharacterFrame) isFrame() {}
