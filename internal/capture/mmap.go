// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package capture

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/ffutop/mbus-gateway/mbus"
)

// MmapStorage appends like FileStorage but replays the capture file through
// a read-only memory mapping, so large sniffer dumps are not copied into
// the heap before decoding.
type MmapStorage struct {
	appendFile
}

// NewMmapStorage creates a new MmapStorage.
func NewMmapStorage(path string) *MmapStorage {
	return &MmapStorage{appendFile{path: path}}
}

// Load maps the capture file and decodes it. Decoded frames own their
// bytes, so the mapping is released before Load returns.
func (ms *MmapStorage) Load() ([]mbus.Frame, error) {
	f, err := os.Open(ms.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open mmap file: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	// an empty file cannot be mapped
	if fi.Size() == 0 {
		return nil, nil
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap failed: %w", err)
	}
	defer func() {
		if err := data.Unmap(); err != nil {
			slog.Error("Failed to unmap capture file", "path", ms.path, "err", err)
		}
	}()

	return DecodeAll(data)
}
