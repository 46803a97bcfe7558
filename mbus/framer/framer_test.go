// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package framer

import (
	"bufio"
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ffutop/mbus-gateway/mbus"
)

var (
	shortFrame = []byte{0x10, 0x40, 0x01, 0x41, 0x16}
	longFrame  = []byte{0x68, 0x06, 0x06, 0x68, 0x53, 0x01, 0x00, 0x01, 0x02, 0x03, 0x5A, 0x16}
)

func TestFrameLength(t *testing.T) {
	tests := []struct {
		name    string
		header  []byte
		want    int
		wantErr bool
	}{
		{"Ack", []byte{0xE5}, 1, false},
		{"Nack", []byte{0xA2}, 1, false},
		{"Short", []byte{0x10}, 5, false},
		{"Long", []byte{0x68, 0x06}, 12, false},
		{"LongMax", []byte{0x68, 0xFF}, mbus.MaxLongFrameSize, false},
		{"LongShortHeader", []byte{0x68}, 0, true},
		{"LongInvalidLength", []byte{0x68, 0x01}, 0, true},
		{"Empty", nil, 0, true},
		{"Unknown", []byte{0x00}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FrameLength(tt.header)
			if (err != nil) != tt.wantErr {
				t.Errorf("FrameLength() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("FrameLength() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadFrame(t *testing.T) {
	deadline := time.Now().Add(time.Second)

	got, err := ReadFrame(bytes.NewReader(longFrame), deadline)
	require.NoError(t, err)
	require.Equal(t, longFrame, got)

	got, err = ReadFrame(bytes.NewReader(shortFrame), deadline)
	require.NoError(t, err)
	require.Equal(t, shortFrame, got)

	got, err = ReadFrame(bytes.NewReader([]byte{0xE5, 0x10}), deadline)
	require.NoError(t, err)
	require.Equal(t, []byte{0xE5}, got)
}

func TestReadFrameSkipsNoise(t *testing.T) {
	stream := append([]byte{0x00, 0xFF, 0x16}, longFrame...)
	got, err := ReadFrame(bytes.NewReader(stream), time.Now().Add(time.Second))
	require.NoError(t, err)
	require.Equal(t, longFrame, got)
}

func TestReadFrameErrors(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader(longFrame[:7]), time.Now().Add(time.Second))
	require.ErrorIs(t, err, io.EOF)

	_, err = ReadFrame(bytes.NewReader([]byte{0x68, 0x01}), time.Now().Add(time.Second))
	require.Equal(t, &InvalidLengthError{Length: 1}, err)

	_, err = ReadFrame(bytes.NewReader(longFrame), time.Now().Add(-time.Second))
	require.ErrorIs(t, err, ErrRequestTimedOut)

	_, err = ReadFrame(nil, time.Now().Add(time.Second))
	require.Error(t, err)
}

func TestSplit(t *testing.T) {
	var stream []byte
	stream = append(stream, longFrame...)
	stream = append(stream, 0xE5)
	stream = append(stream, shortFrame...)

	scanner := bufio.NewScanner(bytes.NewReader(stream))
	scanner.Split(Split)

	var frames [][]byte
	for scanner.Scan() {
		frames = append(frames, append([]byte(nil), scanner.Bytes()...))
	}
	require.NoError(t, scanner.Err())
	require.Equal(t, [][]byte{longFrame, {0xE5}, shortFrame}, frames)
}

func TestSplitTruncated(t *testing.T) {
	scanner := bufio.NewScanner(bytes.NewReader(longFrame[:10]))
	scanner.Split(Split)
	require.False(t, scanner.Scan())
	require.ErrorIs(t, scanner.Err(), io.ErrUnexpectedEOF)
}
