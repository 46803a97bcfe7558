// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

// Package capture records telegrams as a plain concatenation of their wire
// encodings, the format serial sniffers produce.
package capture

import (
	"bufio"
	"bytes"
	"fmt"
	"log/slog"

	"github.com/ffutop/mbus-gateway/internal/config"
	"github.com/ffutop/mbus-gateway/mbus"
	"github.com/ffutop/mbus-gateway/mbus/framer"
)

// Storage defines the interface for recording telegrams.
type Storage interface {
	// Load returns every recorded frame in order.
	Load() ([]mbus.Frame, error)

	// Append records one frame.
	Append(frame mbus.Frame) error

	Close() error
}

// New returns the storage selected by cfg.
func New(cfg config.CaptureConfig) Storage {
	switch cfg.Type {
	case "file":
		slog.Debug("Recording telegrams to file", "path", cfg.Path)
		return NewFileStorage(cfg.Path)
	case "mmap":
		slog.Debug("Recording telegrams to file, replaying through mmap", "path", cfg.Path)
		return NewMmapStorage(cfg.Path)
	default:
		return NewMemoryStorage()
	}
}

// DecodeAll decodes a concatenation of frames.
func DecodeAll(data []byte) ([]mbus.Frame, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Split(framer.Split)

	var frames []mbus.Frame
	offset := 0
	for scanner.Scan() {
		raw := scanner.Bytes()
		f, err := mbus.Decode(raw)
		if err != nil {
			return frames, fmt.Errorf("frame at offset %d: %w", offset, err)
		}
		frames = append(frames, f)
		offset += len(raw)
	}
	if err := scanner.Err(); err != nil {
		return frames, fmt.Errorf("frame at offset %d: %w", offset, err)
	}
	return frames, nil
}
