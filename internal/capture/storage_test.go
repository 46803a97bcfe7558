// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package capture

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ffutop/mbus-gateway/internal/config"
	"github.com/ffutop/mbus-gateway/mbus"
)

func telegrams(t *testing.T) []mbus.Frame {
	t.Helper()
	slave, err := mbus.PrimaryAddress(1)
	require.NoError(t, err)
	rsp, err := mbus.NewLong(mbus.Response, slave, []byte{0x72, 0x78, 0x56, 0x34, 0x12})
	require.NoError(t, err)
	return []mbus.Frame{
		mbus.NewShort(mbus.Initialize, slave),
		mbus.NewSingle(mbus.Ack),
		mbus.NewShort(mbus.Request, slave).WithFrameCountBit(true),
		rsp,
	}
}

func testStorage(t *testing.T, s Storage) {
	t.Helper()
	defer s.Close()

	frames, err := s.Load()
	require.NoError(t, err)
	require.Empty(t, frames)

	want := telegrams(t)
	for _, f := range want {
		require.NoError(t, s.Append(f))
	}

	frames, err = s.Load()
	require.NoError(t, err)
	require.Equal(t, want, frames)
}

func TestMemoryStorage(t *testing.T) {
	testStorage(t, NewMemoryStorage())
}

func TestFileStorage(t *testing.T) {
	testStorage(t, NewFileStorage(filepath.Join(t.TempDir(), "capture.bin")))
}

func TestMmapStorage(t *testing.T) {
	testStorage(t, NewMmapStorage(filepath.Join(t.TempDir(), "capture.bin")))
}

func TestMmapStorageEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	frames, err := NewMmapStorage(path).Load()
	require.NoError(t, err)
	require.Empty(t, frames)
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	require.IsType(t, &MemoryStorage{}, New(config.CaptureConfig{}))
	require.IsType(t, &FileStorage{}, New(config.CaptureConfig{Type: "file", Path: filepath.Join(dir, "a")}))
	require.IsType(t, &MmapStorage{}, New(config.CaptureConfig{Type: "mmap", Path: filepath.Join(dir, "b")}))
}

func TestDecodeAll(t *testing.T) {
	var data []byte
	for _, f := range telegrams(t) {
		data = append(data, mbus.Encode(f)...)
	}
	frames, err := DecodeAll(data)
	require.NoError(t, err)
	require.Len(t, frames, 4)

	// corrupt the address of the second short frame
	data[8] ^= 0xFF
	frames, err = DecodeAll(data)
	require.Len(t, frames, 2)
	var checksumErr *mbus.ChecksumError
	require.True(t, errors.As(err, &checksumErr))
	require.Contains(t, err.Error(), "offset 6")
}
