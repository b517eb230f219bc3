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
	"time"

	"github.com/carverauto/devicecollector/pkg/logger"
)

type fetchFunc func(ctx context.Context) (value []byte, found bool, err error)

// pollWatch emulates Watch for backends without change notification. The
// current value is sent first; afterwards only changes are sent, with nil
// signalling that the key disappeared.
func pollWatch(
	ctx context.Context,
	key string,
	interval time.Duration,
	done <-chan struct{},
	fetch fetchFunc,
	log logger.Logger,
) <-chan []byte {
	ch := make(chan []byte, 1)

	go func() {
		defer close(ch)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var (
			last    []byte
			present bool
		)

		poll := func() bool {
			value, found, err := fetch(ctx)
			if err != nil {
				if ctx.Err() == nil {
					log.Warn().Err(err).Str("key", key).Msg("Watch poll failed")
				}

				return true
			}

			if found == present && bytes.Equal(value, last) {
				return true
			}

			if !found && !present {
				return true
			}

			last, present = value, found

			var update []byte
			if found {
				update = value
			}

			select {
			case ch <- update:
				return true
			case <-ctx.Done():
				return false
			case <-done:
				return false
			}
		}

		if !poll() {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				if !poll() {
					return
				}
			}
		}
	}()

	return ch
}
