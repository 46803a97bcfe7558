// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package mbus

// Checksum returns the FT 1.2 checksum of the control, address and user
// data bytes: their arithmetic sum modulo 256.
func Checksum(control, address byte, data []byte) byte {
	sum := control + address
	for _, b := range data {
		sum += b
	}
	return sum
}
