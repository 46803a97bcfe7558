// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package mbus

// Frame delimiters (EN 60870-5-2, FT 1.2)
const (
	ShortStartByte = 0x10
	LongStartByte  = 0x68
	EndByte        = 0x16

	AckByte  = 0xE5
	NackByte = 0xA2
)

// Frame sizes
const (
	SingleCharacterSize = 1
	ShortFrameSize      = 5

	// A long frame carries start, length, length, start, control, address,
	// checksum and end around the user data.
	longFrameOverhead = 8
	MinLongFrameSize  = longFrameOverhead
	MaxDataSize       = 0xFF - 2
	MaxLongFrameSize  = longFrameOverhead + MaxDataSize
)

// Control field bits
const (
	FrameCountBit   = 0x20
	FrameCountValid = 0x10
)
