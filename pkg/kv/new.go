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
	"fmt"
	"time"

	"github.com/carverauto/devicecollector/pkg/logger"
)

// New opens the backend selected by cfg.
func New(ctx context.Context, cfg Config, log logger.Logger) (KVStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pollInterval := time.Duration(cfg.PollInterval)

	var (
		store KVStore
		err   error
	)

	switch cfg.Backend {
	case BackendMemory:
		store = NewMemoryStore()
	case BackendFile:
		store, err = NewFileStore(cfg.Path, pollInterval, log)
	case BackendNATS:
		store, err = openNats(ctx, cfg, log)
	case BackendPostgres:
		store, err = NewPostgresStore(ctx, cfg.PostgresURL, cfg.Table, pollInterval, log)
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownBackend, cfg.Backend)
	}

	if err != nil {
		return nil, err
	}

	log.Debug().Str("backend", string(cfg.Backend)).Msg("Opened storage backend")

	return store, nil
}

func openNats(ctx context.Context, cfg Config, log logger.Logger) (KVStore, error) {
	tlsConfig, err := cfg.TLS.Load()
	if err != nil {
		return nil, err
	}

	return NewNatsStore(ctx, cfg.NATSURL, cfg.Bucket, tlsConfig, log)
}
