// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package mbus

const (
	longStart1Index    = 0
	longLength1Index   = 1
	longLength2Index   = 2
	longStart2Index    = 3
	longControlIndex   = 4
	longAddressIndex   = 5
	longDataStartIndex = 6

	// control and address are counted by the L field
	longLengthOverhead = 2
	// bytes outside the L field: start, length, length, start, checksum, end
	longFrameFraming = 6
)

// LongFrame is a variable length frame:
//
//	Start    : 1 byte (0x68)
//	Length   : 1 byte
//	Length   : 1 byte (repeated)
//	Start    : 1 byte (0x68, repeated)
//	Control  : 1 byte
//	Address  : 1 byte
//	Data     : 0 up to 253 bytes
//	Checksum : 1 byte
//	End      : 1 byte (0x16)
type LongFrame struct {
	control  controlField
	address  Address
	data     []byte
	checksum byte
}

// NewLongFrame builds a long frame with FCB clear. The data is copied.
func NewLongFrame(control Control, address Address, data []byte) (LongFrame, error) {
	if len(data) > MaxDataSize {
		return LongFrame{}, &DataTooLongError{Size: len(data)}
	}
	f := LongFrame{
		control: controlField{kind: control},
		address: address,
		data:    append([]byte(nil), data...),
	}
	f.checksum = f.computeChecksum()
	return f, nil
}

// DecodeLongFrame decodes a long frame. Checks run in this order: size,
// start byte, start byte repetition, length repetition, declared length,
// checksum, end byte, control field.
func DecodeLongFrame(raw []byte) (LongFrame, error) {
	size := len(raw)
	if size < MinLongFrameSize || size > MaxLongFrameSize {
		return LongFrame{}, &InvalidSizeError{Size: size, Min: MinLongFrameSize, Max: MaxLongFrameSize}
	}
	if raw[longStart1Index] != LongStartByte {
		return LongFrame{}, &InvalidStartByteError{Expected: LongStartByte, Actual: raw[longStart1Index]}
	}
	if raw[longStart1Index] != raw[longStart2Index] {
		return LongFrame{}, &StartByteMismatchError{First: raw[longStart1Index], Second: raw[longStart2Index]}
	}
	if raw[longLength1Index] != raw[longLength2Index] {
		return LongFrame{}, &LengthMismatchError{First: raw[longLength1Index], Second: raw[longLength2Index]}
	}
	declared := int(raw[longLength1Index])
	if size != declared+longFrameFraming {
		return LongFrame{}, &InvalidLengthError{Expected: declared, Actual: size - longFrameFraming}
	}

	// size >= 8 and size == declared+6, so declared >= 2
	data := raw[longDataStartIndex : longDataStartIndex+declared-longLengthOverhead]
	checksumIndex := size - 2
	checksum := Checksum(raw[longControlIndex], raw[longAddressIndex], data)
	if checksum != raw[checksumIndex] {
		return LongFrame{}, &ChecksumError{Expected: checksum, Actual: raw[checksumIndex]}
	}
	if raw[size-1] != EndByte {
		return LongFrame{}, &InvalidEndByteError{Expected: EndByte, Actual: raw[size-1]}
	}
	control, err := parseControlField(raw[longControlIndex])
	if err != nil {
		return LongFrame{}, err
	}
	return LongFrame{
		control:  control,
		address:  AddressFromByte(raw[longAddressIndex]),
		data:     append([]byte(nil), data...),
		checksum: checksum,
	}, nil
}

func (f LongFrame) Bytes() []byte {
	length := byte(len(f.data) + longLengthOverhead)
	raw := make([]byte, 0, len(f.data)+longFrameOverhead)
	raw = append(raw, LongStartByte, length, length, LongStartByte, f.control.Byte(), f.address.Byte())
	raw = append(raw, f.data...)
	return append(raw, f.checksum, EndByte)
}

func (f LongFrame) Control() Control {
	return f.control.kind
}

// ControlByte returns the control field as sent on the wire, FCB included.
func (f LongFrame) ControlByte() byte {
	return f.control.Byte()
}

func (f LongFrame) Address() Address {
	return f.address
}

// Data returns a copy of the user data.
func (f LongFrame) Data() []byte {
	return append([]byte(nil), f.data...)
}

// Length returns the L field: control, address and user data.
func (f LongFrame) Length() int {
	return len(f.data) + longLengthOverhead
}

func (f LongFrame) Checksum() byte {
	return f.checksum
}

func (f LongFrame) FrameCountBit() bool {
	return f.control.frameCountBit()
}

func (f LongFrame) FrameCountValid() bool {
	return f.control.frameCountValid()
}

func (f LongFrame) Type() FrameType {
	return FrameTypeLong
}

func (f LongFrame) WithFrameCountBit(fcb bool) Frame {
	return f.SetFrameCountBit(fcb)
}

// SetFrameCountBit returns a copy of f with the FCB set or cleared. The
// checksum is recomputed so the copy stays a valid frame. The user data is
// shared with f; neither frame ever writes to it.
func (f LongFrame) SetFrameCountBit(fcb bool) LongFrame {
	f.control = f.control.withFrameCountBit(fcb)
	f.checksum = f.computeChecksum()
	return f
}

func (f LongFrame) computeChecksum() byte {
	return Checksum(f.control.Byte(), f.address.Byte(), f.data)
}

func (LongFrame) isFrame() {}
