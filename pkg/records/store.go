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

// Package records persists the ordered list of submitted device records.
package records

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/carverauto/devicecollector/pkg/kv"
	"github.com/carverauto/devicecollector/pkg/logger"
	"github.com/carverauto/devicecollector/pkg/models"
)

// DefaultKey is the storage key holding the record list.
const DefaultKey = "deviceCollectionData"

// Store appends records to a single JSON array kept under one key.
// Appends are serialized so concurrent submissions never lose a record.
type Store struct {
	kv  kv.KVStore
	key string
	log logger.Logger

	mu sync.Mutex
}

func NewStore(store kv.KVStore, key string, log logger.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}

	return &Store{
		kv:  store,
		key: key,
		log: log,
	}
}

// Key returns the storage key in use.
func (s *Store) Key() string {
	return s.key
}

// Append adds record to the end of the stored list.
func (s *Store) Append(ctx context.Context, record models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(append(existing, record))
	if err != nil {
		return fmt.Errorf("%w: %w", errEncodeRecords, err)
	}

	if err := s.kv.Put(ctx, s.key, data, 0); err != nil {
		return fmt.Errorf("%w: %w", errWriteRecords, err)
	}

	s.log.Debug().
		Str("key", s.key).
		Int("count", len(existing)+1).
		Msg("Appended record")

	return nil
}

// LoadAll returns every stored record in insertion order. A missing or
// unreadable payload yields an empty list.
func (s *Store) LoadAll(ctx context.Context) ([]models.Record, error) {
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) ([]models.Record, error) {
	data, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errReadRecords, err)
	}

	if !found {
		return []models.Record{}, nil
	}

	return s.decode(data), nil
}

func (s *Store) decode(data []byte) []models.Record {
	var records []models.Record

	if err := json.Unmarshal(data, &records); err != nil {
		s.log.Warn().
			Err(err).
			Str("key", s.key).
			Msg("Stored records are corrupt, treating as empty")

		return []models.Record{}
	}

	if records == nil {
		return []models.Record{}
	}

	return records
}

// Watch emits the full record list each time the stored payload changes,
// starting with the current contents.
func (s *Store) Watch(ctx context.Context) (<-chan []models.Record, error) {
	updates, err := s.kv.Watch(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errWatchRecords, err)
	}

	ch := make(chan []models.Record, 1)

	go func() {
		defer close(ch)

		for {
			select {
			case <-ctx.Done():
				return
			case data, ok := <-updates:
				if !ok {
					return
				}

				records := []models.Record{}
				if data != nil {
					records = s.decode(data)
				}

				select {
				case ch <- records:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
