// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package mbus

import "fmt"

// AddressKind classifies the one-byte M-Bus address field.
type AddressKind uint8

const (
	AddressUnconfigured AddressKind = iota // 0
	AddressPrimary                         // 1-250
	AddressManagement                      // 251
	AddressReserved                        // 252
	AddressSecondary                       // 253
	AddressDiagnosis                       // 254
	AddressBroadcast                       // 255
)

const (
	MinPrimaryAddress = 1
	MaxPrimaryAddress = 250
)

var addressKindNames = [...]string{
	AddressUnconfigured: "unconfigured",
	AddressPrimary:      "primary",
	AddressManagement:   "management",
	AddressReserved:     "reserved",
	AddressSecondary:    "secondary",
	AddressDiagnosis:    "diagnosis",
	AddressBroadcast:    "broadcast",
}

func (k AddressKind) String() string {
	if int(k) < len(addressKindNames) {
		return addressKindNames[k]
	}
	return fmt.Sprintf("AddressKind(%d)", uint8(k))
}

// Address is the M-Bus address field. The zero value is the address of an
// unconfigured slave.
type Address struct {
	kind    AddressKind
	primary uint8
}

// Reserved addresses
var (
	Unconfigured = Address{kind: AddressUnconfigured}
	Management   = Address{kind: AddressManagement}
	Reserved     = Address{kind: AddressReserved}
	Secondary    = Address{kind: AddressSecondary}
	Diagnosis    = Address{kind: AddressDiagnosis}
	Broadcast    = Address{kind: AddressBroadcast}
)

// InvalidPrimaryAddressError is returned when a primary address outside
// 1-250 is requested.
type InvalidPrimaryAddressError struct {
	Value uint8
}

func (e *InvalidPrimaryAddressError) Error() string {
	return fmt.Sprintf("mbus: primary address %d out of range %d-%d", e.Value, MinPrimaryAddress, MaxPrimaryAddress)
}

// PrimaryAddress returns the primary address n.
func PrimaryAddress(n uint8) (Address, error) {
	if n < MinPrimaryAddress || n > MaxPrimaryAddress {
		return Address{}, &InvalidPrimaryAddressError{Value: n}
	}
	return Address{kind: AddressPrimary, primary: n}, nil
}

// AddressFromByte classifies an address byte. Every byte maps to exactly one
// address.
func AddressFromByte(b byte) Address {
	switch {
	case b == 0:
		return Unconfigured
	case b <= MaxPrimaryAddress:
		return Address{kind: AddressPrimary, primary: b}
	case b == 251:
		return Management
	case b == 252:
		return Reserved
	case b == 253:
		return Secondary
	case b == 254:
		return Diagnosis
	default:
		return Broadcast
	}
}

// Byte returns the wire encoding of the address.
func (a Address) Byte() byte {
	switch a.kind {
	case AddressPrimary:
		return a.primary
	case AddressManagement:
		return 251
	case AddressReserved:
		return 252
	case AddressSecondary:
		return 253
	case AddressDiagnosis:
		return 254
	case AddressBroadcast:
		return 255
	default:
		return 0
	}
}

func (a Address) Kind() AddressKind {
	return a.kind
}

// Primary returns the primary address and true for primary addresses.
func (a Address) Primary() (uint8, bool) {
	return a.primary, a.kind == AddressPrimary
}

func (a Address) String() string {
	if a.kind == AddressPrimary {
		return fmt.Sprintf("primary(%d)", a.primary)
	}
	return a.kind.String()
}
