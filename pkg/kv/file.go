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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/carverauto/devicecollector/pkg/logger"
)

const (
	fileExt      = ".json"
	expiresExt   = ".expires"
	dirPerms     = 0o700
	filePerms    = 0o600
	tempFileGlob = ".kv-*"
)

var fileKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// FileStore persists each key as one file inside a directory holding the
// value bytes as written. A TTL lives in a sibling "<key>.expires" file.
// Writes go through a temporary file and a rename so readers never see a
// partial value.
type FileStore struct {
	dir          string
	pollInterval time.Duration
	log          logger.Logger
	now          func() time.Time

	mu        sync.Mutex
	done      chan struct{}
	closeOnce sync.Once
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string, pollInterval time.Duration, log logger.Logger) (*FileStore, error) {
	if dir == "" {
		return nil, errPathRequired
	}

	if err := os.MkdirAll(dir, dirPerms); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}

	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	return &FileStore{
		dir:          dir,
		pollInterval: pollInterval,
		log:          log,
		now:          time.Now,
		done:         make(chan struct{}),
	}, nil
}

func (f *FileStore) path(key string) (string, error) {
	if !fileKeyPattern.MatchString(key) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	return filepath.Join(f.dir, key+fileExt), nil
}

func expiresPath(path string) string {
	return strings.TrimSuffix(path, fileExt) + expiresExt
}

// expired reports whether the key at path has passed its TTL. An unreadable
// expiry is logged and ignored.
func (f *FileStore) expired(path string) bool {
	data, err := os.ReadFile(expiresPath(path))
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}

	if err != nil {
		f.log.Warn().Err(err).Str("path", path).Msg("Failed to read key expiry")

		return false
	}

	expiresAt, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(string(data)))
	if err != nil {
		f.log.Warn().Err(err).Str("path", path).Msg("Ignoring malformed key expiry")

		return false
	}

	return !f.now().Before(expiresAt)
}

func (f *FileStore) isClosed() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func (f *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if f.isClosed() {
		return nil, false, ErrStoreClosed
	}

	path, err := f.path(key)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %s: %w", key, err)
	}

	if f.expired(path) {
		return nil, false, nil
	}

	if data == nil {
		data = []byte{}
	}

	return data, true, nil
}

func (f *FileStore) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if f.isClosed() {
		return ErrStoreClosed
	}

	path, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := writeFileAtomic(f.dir, path, value); err != nil {
		return err
	}

	if ttl <= 0 {
		return removeIfExists(expiresPath(path))
	}

	expiresAt := f.now().Add(ttl).UTC().Format(time.RFC3339Nano)

	return writeFileAtomic(f.dir, expiresPath(path), []byte(expiresAt))
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	return nil
}

func writeFileAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, tempFileGlob)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	tmpName := tmp.Name()

	cleanup := func() {
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()

		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()

		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		cleanup()

		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpName, filePerms); err != nil {
		cleanup()

		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		cleanup()

		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

func (f *FileStore) Delete(_ context.Context, key string) error {
	if f.isClosed() {
		return ErrStoreClosed
	}

	path, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}

	return removeIfExists(expiresPath(path))
}

func (f *FileStore) Watch(ctx context.Context, key string) (<-chan []byte, error) {
	if f.isClosed() {
		return nil, ErrStoreClosed
	}

	if _, err := f.path(key); err != nil {
		return nil, err
	}

	fetch := func(ctx context.Context) ([]byte, bool, error) {
		return f.Get(ctx, key)
	}

	return pollWatch(ctx, key, f.pollInterval, f.done, fetch, f.log), nil
}

func (f *FileStore) Close() error {
	f.closeOnce.Do(func() {
		close(f.done)
	})

	return nil
}

var _ KVStore = (*FileStore)(nil)
