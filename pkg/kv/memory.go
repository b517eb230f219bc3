/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package kv

import (
	"bytes"
	"context"
	"sync"
	"time"
)

// MemoryStore keeps values in process memory. It backs tests and the
// "memory" backend, where nothing outlives the process.
type MemoryStore struct {
	mu       sync.Mutex
	values   map[string]memoryEntry
	watchers map[string][]chan []byte
	closed   bool
	now      func() time.Time
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:   make(map[string]memoryEntry),
		watchers: make(map[string][]chan []byte),
		now:      time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, false, ErrStoreClosed
	}

	entry, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}

	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		delete(m.values, key)

		return nil, false, nil
	}

	return bytes.Clone(entry.value), true, nil
}

func (m *MemoryStore) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	entry := memoryEntry{value: bytes.Clone(value)}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}

	m.values[key] = entry
	m.notifyLocked(key, entry.value)

	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if _, ok := m.values[key]; !ok {
		return nil
	}

	delete(m.values, key)
	m.notifyLocked(key, nil)

	return nil
}

func (m *MemoryStore) Watch(ctx context.Context, key string) (<-chan []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	ch := make(chan []byte, 1)
	if entry, ok := m.values[key]; ok {
		ch <- bytes.Clone(entry.value)
	}

	m.watchers[key] = append(m.watchers[key], ch)

	go func() {
		<-ctx.Done()
		m.removeWatcher(key, ch)
	}()

	return ch, nil
}

// notifyLocked hands the newest value to every watcher of key. A watcher
// that has not drained its previous value only ever sees the latest one.
func (m *MemoryStore) notifyLocked(key string, value []byte) {
	for _, ch := range m.watchers[key] {
		select {
		case <-ch:
		default:
		}

		ch <- bytes.Clone(value)
	}
}

func (m *MemoryStore) removeWatcher(key string, target chan []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	watchers := m.watchers[key]
	for i, ch := range watchers {
		if ch == target {
			m.watchers[key] = append(watchers[:i], watchers[i+1:]...)
			close(ch)

			return
		}
	}
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true

	for key, watchers := range m.watchers {
		for _, ch := range watchers {
			close(ch)
		}

		delete(m.watchers, key)
	}

	return nil
}

var _ KVStore = (*MemoryStore)(nil)
