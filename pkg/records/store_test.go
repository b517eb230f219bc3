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

package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/devicecollector/pkg/kv"
	"github.com/carverauto/devicecollector/pkg/logger"
	"github.com/carverauto/devicecollector/pkg/models"
)

func testRecord(name string) models.Record {
	return models.Record{
		UserName:   name,
		Department: "IT",
		DeviceType: "Laptop",
		IPAddress:  models.UnknownIP,
		DeviceID:   "00:00:2B:79:5E:2A",
		Timestamp:  "2025-03-01T12:00:00.000Z",
	}
}

func TestLoadAllEmptyStore(t *testing.T) {
	store := NewStore(kv.NewMemoryStore(), "", logger.NewTestLogger())

	records, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.Equal(t, DefaultKey, store.Key())
}

func TestAppendPreservesOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemoryStore(), DefaultKey, logger.NewTestLogger())

	for i, name := range []string{"alice", "bob", "carol"} {
		before, err := store.LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, before, i)

		record := testRecord(name)
		record.Phone = fmt.Sprintf("555-010%d", i)
		record.Purpose = "dev " + name

		require.NoError(t, store.Append(ctx, record))

		after, err := store.LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, after, len(before)+1)
		assert.Equal(t, record, after[len(after)-1])
		assert.Equal(t, before, after[:len(before)])
	}

	records, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "alice", records[0].UserName)
	assert.Equal(t, "bob", records[1].UserName)
	assert.Equal(t, "carol", records[2].UserName)
}

func TestFileBackendCorruptFileReadsEmpty(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultKey+".json")

	require.NoError(t, os.WriteFile(path, []byte("not json{"), 0o600))

	backend, err := kv.NewFileStore(dir, time.Second, logger.NewTestLogger())
	require.NoError(t, err)

	t.Cleanup(func() { _ = backend.Close() })

	store := NewStore(backend, DefaultKey, logger.NewTestLogger())

	records, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	require.NoError(t, store.Append(ctx, testRecord("alice")))

	records, err = store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, testRecord("alice"), records[0])

	// The file is the plain JSON array of records.
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var onDisk []models.Record
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, records, onDisk)
}

func TestAppendOverCorruptPayload(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryStore()

	require.NoError(t, backend.Put(ctx, DefaultKey, []byte("{not json"), 0))

	store := NewStore(backend, DefaultKey, logger.NewTestLogger())

	records, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	require.NoError(t, store.Append(ctx, testRecord("alice")))

	records, err = store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "alice", records[0].UserName)
}

func TestLoadAllNullPayload(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryStore()

	require.NoError(t, backend.Put(ctx, DefaultKey, []byte("null"), 0))

	records, err := NewStore(backend, DefaultKey, logger.NewTestLogger()).LoadAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestAppendConcurrent(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemoryStore(), DefaultKey, logger.NewTestLogger())

	const writers = 25

	var wg sync.WaitGroup

	for i := 0; i < writers; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			assert.NoError(t, store.Append(ctx, testRecord(fmt.Sprintf("user-%d", i))))
		}(i)
	}

	wg.Wait()

	records, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, writers)
}

func TestBackendErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := kv.NewMockKVStore(ctrl)
	store := NewStore(backend, DefaultKey, logger.NewTestLogger())
	ctx := context.Background()
	ioErr := errors.New("disk on fire")

	t.Run("read failure", func(t *testing.T) {
		backend.EXPECT().Get(gomock.Any(), DefaultKey).Return(nil, false, ioErr)

		_, err := store.LoadAll(ctx)
		require.ErrorIs(t, err, errReadRecords)
		require.ErrorIs(t, err, ioErr)
	})

	t.Run("append read failure skips write", func(t *testing.T) {
		backend.EXPECT().Get(gomock.Any(), DefaultKey).Return(nil, false, ioErr)
		backend.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		require.ErrorIs(t, store.Append(ctx, testRecord("alice")), ioErr)
	})

	t.Run("write failure", func(t *testing.T) {
		backend.EXPECT().Get(gomock.Any(), DefaultKey).Return([]byte("[]"), true, nil)
		backend.EXPECT().Put(gomock.Any(), DefaultKey, gomock.Any(), time.Duration(0)).Return(ioErr)

		err := store.Append(ctx, testRecord("alice"))
		require.ErrorIs(t, err, errWriteRecords)
		require.ErrorIs(t, err, ioErr)
	})

	t.Run("watch failure", func(t *testing.T) {
		backend.EXPECT().Watch(gomock.Any(), DefaultKey).Return(nil, ioErr)

		_, err := store.Watch(ctx)
		require.ErrorIs(t, err, errWatchRecords)
	})
}

func TestWatchEmitsSnapshots(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend := kv.NewMemoryStore()
	store := NewStore(backend, DefaultKey, logger.NewTestLogger())

	require.NoError(t, store.Append(ctx, testRecord("alice")))

	ch, err := store.Watch(ctx)
	require.NoError(t, err)

	first := receive(t, ch)
	require.Len(t, first, 1)

	require.NoError(t, store.Append(ctx, testRecord("bob")))

	second := receive(t, ch)
	require.Len(t, second, 2)
	assert.Equal(t, "bob", second[1].UserName)

	require.NoError(t, backend.Delete(ctx, DefaultKey))
	assert.Empty(t, receive(t, ch))
}

func receive(t *testing.T, ch <-chan []models.Record) []models.Record {
	t.Helper()

	select {
	case records, ok := <-ch:
		require.True(t, ok, "watch channel closed")

		return records
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for records")
	}

	return nil
}
