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
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/devicecollector/pkg/logger"
)

const testPollInterval = 10 * time.Millisecond

func newTestStores(t *testing.T) map[string]KVStore {
	t.Helper()

	fileStore, err := NewFileStore(t.TempDir(), testPollInterval, logger.NewTestLogger())
	require.NoError(t, err)

	stores := map[string]KVStore{
		"memory": NewMemoryStore(),
		"file":   fileStore,
	}

	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})

	return stores
}

func TestStoreGetPutDelete(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			runGetPutDelete(t, store)
		})
	}
}

func runGetPutDelete(t *testing.T, store KVStore) {
	t.Helper()

	ctx := context.Background()

	_, found, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Put(ctx, "deviceCollectionData", []byte(`[{"a":1}]`), 0))

	value, found, err := store.Get(ctx, "deviceCollectionData")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[{"a":1}]`, string(value))

	require.NoError(t, store.Put(ctx, "deviceCollectionData", []byte(`[]`), 0))

	value, _, err = store.Get(ctx, "deviceCollectionData")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(value))

	require.NoError(t, store.Delete(ctx, "deviceCollectionData"))
	require.NoError(t, store.Delete(ctx, "deviceCollectionData"))

	_, found, err = store.Get(ctx, "deviceCollectionData")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStoreTTLExpires(t *testing.T) {
	current := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }

	mem := NewMemoryStore()
	mem.now = clock

	fileStore, err := NewFileStore(t.TempDir(), testPollInterval, logger.NewTestLogger())
	require.NoError(t, err)

	fileStore.now = clock

	for name, store := range map[string]KVStore{"memory": mem, "file": fileStore} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.Put(ctx, "k", []byte("v"), time.Minute))

			_, found, err := store.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, found)

			current = current.Add(2 * time.Minute)

			_, found, err = store.Get(ctx, "k")
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestStoreWatch(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			runWatch(t, store)
		})
	}
}

func runWatch(t *testing.T, store KVStore) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, store.Put(ctx, "watched", []byte("one"), 0))

	ch, err := store.Watch(ctx, "watched")
	require.NoError(t, err)

	assert.Equal(t, []byte("one"), receive(t, ch))

	require.NoError(t, store.Put(ctx, "watched", []byte("two"), 0))
	assert.Equal(t, []byte("two"), receive(t, ch))

	require.NoError(t, store.Delete(ctx, "watched"))
	assert.Nil(t, receive(t, ch))

	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, testPollInterval)
}

func receive(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()

	select {
	case value, ok := <-ch:
		require.True(t, ok, "watch channel closed unexpectedly")

		return value
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watch update")
	}

	return nil
}

func TestStoreClosed(t *testing.T) {
	for name, store := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, store.Close())
			require.NoError(t, store.Close())

			_, _, err := store.Get(ctx, "k")
			require.ErrorIs(t, err, ErrStoreClosed)
			require.ErrorIs(t, store.Put(ctx, "k", nil, 0), ErrStoreClosed)

			_, err = store.Watch(ctx, "k")
			require.ErrorIs(t, err, ErrStoreClosed)
		})
	}
}

func TestFileStoreRejectsPathKeys(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), testPollInterval, logger.NewTestLogger())
	require.NoError(t, err)

	ctx := context.Background()

	for _, key := range []string{"", "..", "../escape", "a/b", "white space"} {
		require.ErrorIs(t, store.Put(ctx, key, []byte("x"), 0), ErrInvalidKey, key)
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir, testPollInterval, logger.NewTestLogger())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Put(context.Background(), "k", []byte{byte(i)}, 0))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k"+fileExt, entries[0].Name())

	info, err := os.Stat(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(filePerms), info.Mode().Perm())
}

func TestFileStoreKeepsValueBytes(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir, testPollInterval, logger.NewTestLogger())
	require.NoError(t, err)

	ctx := context.Background()
	payload := []byte(`[{"userName":"ada"}]`)

	require.NoError(t, store.Put(ctx, "records", payload, 0))

	data, err := os.ReadFile(filepath.Join(dir, "records"+fileExt))
	require.NoError(t, err)
	assert.Equal(t, payload, data, "the file holds exactly the stored bytes")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad"+fileExt), []byte("{not json"), filePerms))

	value, found, err := store.Get(ctx, "bad")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("{not json"), value)
}

func TestFileStoreExpiryFile(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir, testPollInterval, logger.NewTestLogger())
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", []byte("v"), time.Minute))
	assert.FileExists(t, filepath.Join(dir, "k"+expiresExt))

	require.NoError(t, store.Put(ctx, "k", []byte("v2"), 0))
	assert.NoFileExists(t, filepath.Join(dir, "k"+expiresExt))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "k"+expiresExt), []byte("someday"), filePerms))

	value, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found, "a malformed expiry is ignored")
	assert.Equal(t, []byte("v2"), value)

	require.NoError(t, store.Delete(ctx, "k"))
	assert.NoFileExists(t, filepath.Join(dir, "k"+expiresExt))
}

func TestNewSelectsBackend(t *testing.T) {
	ctx := context.Background()

	store, err := New(ctx, Config{Backend: BackendMemory}, logger.NewTestLogger())
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
	require.NoError(t, store.Close())

	store, err = New(ctx, Config{Backend: BackendFile, Path: t.TempDir()}, logger.NewTestLogger())
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)
	require.NoError(t, store.Close())

	_, err = New(ctx, Config{Backend: "etcd"}, logger.NewTestLogger())
	require.ErrorIs(t, err, errUnknownBackend)
}
