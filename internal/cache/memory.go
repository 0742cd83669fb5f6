// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

import (
	"context"
	"maps"
	"sync"

	"github.com/MKhiriev/go-notes-keeper/models"
)

type memoryBackend struct {
	mu    sync.RWMutex
	users map[int64]map[int64]models.Note
}

// NewMemoryBackend returns a process-local Backend.
func NewMemoryBackend() Backend {
	return &memoryBackend{users: make(map[int64]map[int64]models.Note)}
}

func (m *memoryBackend) Load(_ context.Context, userID int64) (map[int64]models.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return maps.Clone(m.users[userID]), nil
}

func (m *memoryBackend) Replace(_ context.Context, userID int64, notes []models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(notes) == 0 {
		delete(m.users, userID)
		return nil
	}

	partition := make(map[int64]models.Note, len(notes))
	for _, n := range notes {
		partition[n.NoteID] = n
	}
	m.users[userID] = partition
	return nil
}

func (m *memoryBackend) Put(_ context.Context, userID int64, note models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	partition, ok := m.users[userID]
	if !ok {
		partition = make(map[int64]models.Note)
		m.users[userID] = partition
	}
	partition[note.NoteID] = note
	return nil
}

func (m *memoryBackend) Remove(_ context.Context, userID, noteID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	partition, ok := m.users[userID]
	if !ok {
		return nil
	}
	delete(partition, noteID)
	if len(partition) == 0 {
		delete(m.users, userID)
	}
	return nil
}

func (m *memoryBackend) Clear(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.users, userID)
	return nil
}
