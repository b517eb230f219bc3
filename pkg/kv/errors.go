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
	"errors"
)

var (
	// ErrStoreClosed is returned by operations on a closed store.
	ErrStoreClosed = errors.New("kv store is closed")
	// ErrInvalidKey is returned for keys a backend cannot address.
	ErrInvalidKey = errors.New("invalid key")

	errUnknownBackend      = errors.New("unknown storage backend")
	errPathRequired        = errors.New("storage.path is required for the file backend")
	errNatsURLRequired     = errors.New("storage.nats_url is required for the nats backend")
	errPostgresURLRequired = errors.New("storage.postgres_url is required for the postgres backend")
	errInvalidTableName    = errors.New("storage.table must be a plain SQL identifier")
	errInvalidPollInterval = errors.New("storage.poll_interval must not be negative")
	errTLSCARequired       = errors.New("storage.tls.ca_file is required when tls is set")
	errTLSKeyPair          = errors.New("storage.tls.cert_file and storage.tls.key_file must be set together")
	errCAParsingFailed     = errors.New("failed to parse CA certificate")
)
