// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package mbus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddressFromByte(t *testing.T) {
	tests := []struct {
		b    byte
		kind AddressKind
	}{
		{0, AddressUnconfigured},
		{1, AddressPrimary},
		{0x7F, AddressPrimary},
		{250, AddressPrimary},
		{251, AddressManagement},
		{252, AddressReserved},
		{253, AddressSecondary},
		{254, AddressDiagnosis},
		{255, AddressBroadcast},
	}

	for _, tt := range tests {
		a := AddressFromByte(tt.b)
		require.Equal(t, tt.kind, a.Kind(), "byte %d", tt.b)
	}
}

func TestAddressBijection(t *testing.T) {
	for i := 0; i <= 0xFF; i++ {
		require.Equal(t, byte(i), AddressFromByte(byte(i)).Byte())
	}
}

func TestPrimaryAddress(t *testing.T) {
	a, err := PrimaryAddress(1)
	require.NoError(t, err)
	n, ok := a.Primary()
	require.True(t, ok)
	require.Equal(t, uint8(1), n)
	require.Equal(t, AddressFromByte(1), a)
	require.Equal(t, "primary(1)", a.String())

	for _, n := range []uint8{0, 251, 255} {
		_, err := PrimaryAddress(n)
		var rangeErr *InvalidPrimaryAddressError
		require.True(t, errors.As(err, &rangeErr))
		require.Equal(t, n, rangeErr.Value)
	}
}

func TestReservedAddresses(t *testing.T) {
	require.Equal(t, byte(0), Unconfigured.Byte())
	require.Equal(t, byte(251), Management.Byte())
	require.Equal(t, byte(252), Reserved.Byte())
	require.Equal(t, byte(253), Secondary.Byte())
	require.Equal(t, byte(254), Diagnosis.Byte())
	require.Equal(t, byte(255), Broadcast.Byte())

	_, ok := Broadcast.Primary()
	require.False(t, ok)
	require.Equal(t, "broadcast", Broadcast.String())
	require.Equal(t, Unconfigured, Address{})
}
