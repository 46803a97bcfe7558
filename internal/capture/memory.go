// Copyright (c) 2026 Li Jinling. All rights reserved.
// This software may be modified and distributed under the terms
// of the BSD-3 Clause License. See the LICENSE file for details.

package capture

import (
	"sync"

	"github.com/ffutop/mbus-gateway/mbus"
)

// MemoryStorage is a non-persistent storage.
type MemoryStorage struct {
	mu     sync.Mutex
	frames []mbus.Frame
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (ms *MemoryStorage) Load() ([]mbus.Frame, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]mbus.Frame(nil), ms.frames...), nil
}

func (ms *MemoryStorage) Append(frame mbus.Frame) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.frames = append(ms.frames, frame)
	return nil
}

func (ms *MemoryStorage) Close() error {
	return nil
}
