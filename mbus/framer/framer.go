// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

// Package framer delimits FT 1.2 frames in a byte stream. It only finds
// frame boundaries; validation is left to mbus.Decode.
package framer

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ffutop/mbus-gateway/mbus"
)

var (
	ErrRequestTimedOut = errors.New("mbus: request timed out")
	ErrShortHeader     = errors.New("mbus: header too short to determine frame length")
)

const (
	stateStart = 1 << iota
	stateLength
	stateLengthRepeat
	stateStartRepeat
	statePayload
)

// InvalidLengthError is returned for an L field too small to hold the
// control and address bytes.
type InvalidLengthError struct {
	Length byte
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid length received: %d", e.Length)
}

// FrameLength returns the total length of the frame starting at header[0].
// Long frames need two header bytes.
func FrameLength(header []byte) (int, error) {
	if len(header) == 0 {
		return 0, ErrShortHeader
	}
	switch header[0] {
	case mbus.AckByte, mbus.NackByte:
		return mbus.SingleCharacterSize, nil
	case mbus.ShortStartByte:
		return mbus.ShortFrameSize, nil
	case mbus.LongStartByte:
		if len(header) < 2 {
			return 0, ErrShortHeader
		}
		if header[1] < 2 {
			return 0, &InvalidLengthError{Length: header[1]}
		}
		// start, length, length, start, L bytes, checksum, end
		return int(header[1]) + 6, nil
	default:
		return 0, &mbus.UnknownFrameTypeError{Byte: header[0]}
	}
}

// Split is a bufio.SplitFunc returning one raw frame per token.
func Split(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if len(data) == 0 {
		return 0, nil, nil
	}
	length, err := FrameLength(data)
	if errors.Is(err, ErrShortHeader) {
		if atEOF {
			return 0, nil, io.ErrUnexpectedEOF
		}
		return 0, nil, nil
	}
	if err != nil {
		return 0, nil, err
	}
	if len(data) < length {
		if atEOF {
			return 0, nil, io.ErrUnexpectedEOF
		}
		return 0, nil, nil
	}
	return length, data[:length], nil
}

// ReadFrame reads one frame from r. Bytes that cannot start a frame are
// skipped, so line noise ahead of a reply is tolerated.
func ReadFrame(r io.Reader, deadline time.Time) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("reader is nil")
	}

	buf := make([]byte, 1)
	data := make([]byte, mbus.MaxLongFrameSize)

	state := stateStart
	var toRead, n int

	for {
		if time.Now().After(deadline) {
			return nil, ErrRequestTimedOut
		}

		if _, err := io.ReadAtLeast(r, buf, 1); err != nil {
			return nil, err
		}

		switch state {
		case stateStart:
			switch buf[0] {
			case mbus.AckByte, mbus.NackByte:
				return []byte{buf[0]}, nil
			case mbus.ShortStartByte:
				state = statePayload
				toRead = mbus.ShortFrameSize - 1
			case mbus.LongStartByte:
				state = stateLength
			default:
				continue
			}
			data[n] = buf[0]
			n++
		case stateLength:
			if buf[0] < 2 {
				return nil, &InvalidLengthError{Length: buf[0]}
			}
			// L bytes plus checksum and end
			toRead = int(buf[0]) + 2
			data[n] = buf[0]
			n++
			state = stateLengthRepeat
		case stateLengthRepeat:
			data[n] = buf[0]
			n++
			state = stateStartRepeat
		case stateStartRepeat:
			data[n] = buf[0]
			n++
			state = statePayload
		case statePayload:
			data[n] = buf[0]
			n++
			toRead--
			if toRead == 0 {
				return data[:n], nil
			}
		}
	}
}
