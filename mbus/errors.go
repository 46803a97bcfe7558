// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package mbus

import (
	"errors"
	"fmt"
)

var ErrEmpty = errors.New("mbus: input is empty")

// UnknownFrameTypeError is returned when the leading byte matches no frame type.
type UnknownFrameTypeError struct {
	Byte byte
}

func (e *UnknownFrameTypeError) Error() string {
	return fmt.Sprintf("mbus: unknown frame type %#02x", e.Byte)
}

// InvalidSizeError reports a buffer whose size is outside [Min, Max].
type InvalidSizeError struct {
	Size int
	Min  int
	Max  int
}

func (e *InvalidSizeError) Error() string {
	if e.Min == e.Max {
		return fmt.Sprintf("invalid frame size, expected %d, got %d", e.Min, e.Size)
	}
	return fmt.Sprintf("invalid frame size, expected %d-%d, got %d", e.Min, e.Max, e.Size)
}

// InvalidLengthError reports a frame length that does not match the
// expected one. For long frames Expected is the declared L field and Actual
// the length derived from the buffer size.
type InvalidLengthError struct {
	Expected int
	Actual   int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid length, expected %d, got %d", e.Expected, e.Actual)
}

type InvalidStartByteError struct {
	Expected byte
	Actual   byte
}

func (e *InvalidStartByteError) Error() string {
	return fmt.Sprintf("invalid start byte, expected %#02x, got %#02x", e.Expected, e.Actual)
}

// StartByteMismatchError reports differing start bytes of a long frame.
type StartByteMismatchError struct {
	First  byte
	Second byte
}

func (e *StartByteMismatchError) Error() string {
	return fmt.Sprintf("mismatched start bytes %#02x and %#02x", e.First, e.Second)
}

// LengthMismatchError reports differing L fields of a long frame.
type LengthMismatchError struct {
	First  byte
	Second byte
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("mismatched length fields %d and %d", e.First, e.Second)
}

// ChecksumError carries the recomputed and the received checksum.
type ChecksumError struct {
	Expected byte
	Actual   byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("invalid checksum, expected %#02x, got %#02x", e.Expected, e.Actual)
}

type InvalidEndByteError struct {
	Expected byte
	Actual   byte
}

func (e *InvalidEndByteError) Error() string {
	return fmt.Sprintf("invalid end byte, expected %#02x, got %#02x", e.Expected, e.Actual)
}

// InvalidByteError reports a single character that is neither ACK nor NACK.
type InvalidByteError struct {
	Actual byte
}

func (e *InvalidByteError) Error() string {
	return fmt.Sprintf("invalid single character %#02x", e.Actual)
}

// DataTooLongError is returned when user data does not fit a long frame.
type DataTooLongError struct {
	Size int
}

func (e *DataTooLongError) Error() string {
	return fmt.Sprintf("mbus: user data of %d bytes exceeds %d", e.Size, MaxDataSize)
}

// FrameError wraps the reason a buffer could not be decoded. Type is zero
// when the frame type could not be detected.
type FrameError struct {
	Type FrameType
	Err  error
}

func (e *FrameError) Error() string {
	if e.Type == 0 {
		return fmt.Sprintf("mbus: frame detection failed: %v", e.Err)
	}
	return fmt.Sprintf("mbus: %s frame decode failed: %v", e.Type, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}
