// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package mbus

const (
	shortStartIndex    = 0
	shortControlIndex  = 1
	shortAddressIndex  = 2
	shortChecksumIndex = 3
	shortEndIndex      = 4
)

// ShortFrame is a fixed length frame:
//
//	Start    : 1 byte (0x10)
//	Control  : 1 byte
//	Address  : 1 byte
//	Checksum : 1 byte
//	End      : 1 byte (0x16)
type ShortFrame struct {
	control  controlField
	address  Address
	checksum byte
}

// NewShortFrame builds a short frame with FCB clear.
func NewShortFrame(control Control, address Address) ShortFrame {
	f := ShortFrame{
		control: controlField{kind: control},
		address: address,
	}
	f.checksum = f.computeChecksum()
	return f
}

// DecodeShortFrame decodes a 5 byte short frame. Checks run in this order:
// size, start byte, checksum, end byte, control field.
func DecodeShortFrame(raw []byte) (ShortFrame, error) {
	if len(raw) != ShortFrameSize {
		return ShortFrame{}, &InvalidLengthError{Expected: ShortFrameSize, Actual: len(raw)}
	}
	if raw[shortStartIndex] != ShortStartByte {
		return ShortFrame{}, &InvalidStartByteError{Expected: ShortStartByte, Actual: raw[shortStartIndex]}
	}
	checksum := Checksum(raw[shortControlIndex], raw[shortAddressIndex], nil)
	if checksum != raw[shortChecksumIndex] {
		return ShortFrame{}, &ChecksumError{Expected: checksum, Actual: raw[shortChecksumIndex]}
	}
	if raw[shortEndIndex] != EndByte {
		return ShortFrame{}, &InvalidEndByteError{Expected: EndByte, Actual: raw[shortEndIndex]}
	}
	control, err := parseControlField(raw[shortControlIndex])
	if err != nil {
		return ShortFrame{}, err
	}
	return ShortFrame{
		control:  control,
		address:  AddressFromByte(raw[shortAddressIndex]),
		checksum: checksum,
	}, nil
}

func (f ShortFrame) Bytes() []byte {
	return []byte{ShortStartByte, f.control.Byte(), f.address.Byte(), f.checksum, EndByte}
}

func (f ShortFrame) Control() Control {
	return f.control.kind
}

// ControlByte returns the control field as sent on the wire, FCB included.
func (f ShortFrame) ControlByte() byte {
	return f.control.Byte()
}

func (f ShortFrame) Address() Address {
	return f.address
}

func (f ShortFrame) Checksum() byte {
	return f.checksum
}

func (f ShortFrame) FrameCountBit() bool {
	return f.control.frameCountBit()
}

func (f ShortFrame) FrameCountValid() bool {
	return f.control.frameCountValid()
}

func (f ShortFrame) Type() FrameType {
	return FrameTypeShort
}

func (f ShortFrame) WithFrameCountBit(fcb bool) Frame {
	return f.SetFrameCountBit(fcb)
}

// SetFrameCountBit returns a copy of f with the FCB set or cleared. The
// checksum is recomputed so the copy stays a valid frame.
func (f ShortFrame) SetFrameCountBit(fcb bool) ShortFrame {
	f.control = f.control.withFrameCountBit(fcb)
	f.checksum = f.computeChecksum()
	return f
}

func (f ShortFrame) computeChecksum() byte {
	return Checksum(f.control.Byte(), f.address.Byte(), nil)
}

func (ShortFrame) isFrame() {}
