// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package capture

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/ffutop/mbus-gateway/mbus"
)

// appendFile appends frames to a capture file, opening it on first use.
type appendFile struct {
	path string

	mu   sync.Mutex
	file *os.File
}

func (af *appendFile) Append(frame mbus.Frame) error {
	af.mu.Lock()
	defer af.mu.Unlock()

	if af.file == nil {
		f, err := os.OpenFile(af.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open capture file: %w", err)
		}
		af.file = f
	}
	if _, err := af.file.Write(mbus.Encode(frame)); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := af.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync file to disk: %w", err)
	}
	return nil
}

func (af *appendFile) Close() error {
	af.mu.Lock()
	defer af.mu.Unlock()

	if af.file == nil {
		return nil
	}
	err := af.file.Close()
	af.file = nil
	return err
}

// FileStorage implements capture using plain file operations.
type FileStorage struct {
	appendFile
}

// NewFileStorage creates a new FileStorage.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{appendFile{path: path}}
}

// Load reads the whole capture file. A missing file holds no frames.
func (s *FileStorage) Load() ([]mbus.Frame, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return DecodeAll(data)
}
