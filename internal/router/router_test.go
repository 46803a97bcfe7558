// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package router

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ffutop/mbus-gateway/mbus"
)

type fakeBus struct {
	name   string
	sent   []mbus.Frame
	closed bool
	err    error
}

func (b *fakeBus) Connect(ctx context.Context) error { return nil }

func (b *fakeBus) Send(ctx context.Context, frame mbus.Frame) (mbus.Frame, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.sent = append(b.sent, frame)
	return mbus.Ack, nil
}

func (b *fakeBus) Close() error {
	b.closed = true
	return nil
}

func TestParseAddresses(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{"Single", "1", []byte{1}, false},
		{"List", "1, 2,5", []byte{1, 2, 5}, false},
		{"Range", "3-5", []byte{3, 4, 5}, false},
		{"Reserved", "250-253", []byte{250, 251, 252, 253}, false},
		{"Empty", "", nil, false},
		{"Reversed", "5-3", nil, true},
		{"OutOfRange", "256", nil, true},
		{"Negative", "-1", nil, true},
		{"NotANumber", "a", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAddresses(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			var raw []byte
			for _, a := range got {
				raw = append(raw, a.Byte())
			}
			require.Equal(t, tt.want, raw)
		})
	}
}

func TestRouter_Send(t *testing.T) {
	heat := &fakeBus{name: "heat"}
	water := &fakeBus{name: "water"}

	r := NewRouter("test", nil, nil)
	addrs, err := ParseAddresses("1-3")
	require.NoError(t, err)
	r.Add(addrs, heat)
	addrs, err = ParseAddresses("4")
	require.NoError(t, err)
	r.Add(addrs, water)

	two := mbus.AddressFromByte(2)
	reply, err := r.Send(context.Background(), mbus.NewShort(mbus.Request, two))
	require.NoError(t, err)
	require.Equal(t, mbus.Frame(mbus.Ack), reply)
	require.Len(t, heat.sent, 1)
	require.Empty(t, water.sent)

	_, err = r.Send(context.Background(), mbus.NewShort(mbus.Request, mbus.AddressFromByte(9)))
	require.True(t, errors.Is(err, ErrNoRoute))

	_, err = r.Send(context.Background(), mbus.Ack)
	require.True(t, errors.Is(err, ErrNoAddress))

	r.DefaultRoute = water
	_, err = r.Send(context.Background(), mbus.NewShort(mbus.Request, mbus.AddressFromByte(9)))
	require.NoError(t, err)
	require.Len(t, water.sent, 1)

	require.NoError(t, r.Close())
	require.True(t, heat.closed)
	require.True(t, water.closed)
}

func TestRouter_SendError(t *testing.T) {
	failing := &fakeBus{err: errors.New("line down")}
	r := NewRouter("test", nil, failing)
	_, err := r.Send(context.Background(), mbus.NewShort(mbus.Initialize, mbus.Broadcast))
	require.EqualError(t, err, "line down")
}
