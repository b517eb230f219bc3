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
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/carverauto/devicecollector/pkg/models"
)

// Backend names a KVStore implementation.
type Backend string

const (
	BackendFile     Backend = "file"
	BackendMemory   Backend = "memory"
	BackendNATS     Backend = "nats"
	BackendPostgres Backend = "postgres"
)

const (
	defaultBucket       = "devicecollector"
	defaultTable        = "devicecollector_kv"
	defaultPollInterval = time.Second
	defaultDirName      = "devicecollector"
	defaultDataDirName  = "data"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config holds the storage backend selection and its settings.
type Config struct {
	Backend      Backend         `json:"backend"`
	Path         string          `json:"path,omitempty"`          // Directory for the file backend
	NATSURL      string          `json:"nats_url,omitempty"`      // NATS server for the nats backend
	Bucket       string          `json:"bucket,omitempty"`        // JetStream KV bucket name
	PostgresURL  string          `json:"postgres_url,omitempty"`  // Connection string for the postgres backend
	Table        string          `json:"table,omitempty"`         // Table for the postgres backend
	PollInterval models.Duration `json:"poll_interval,omitempty"` // Watch polling for file and postgres
	TLS          *TLSConfig      `json:"tls,omitempty"`           // Client TLS for the nats backend
}

// DefaultConfig stores records as files under the user's config directory.
func DefaultConfig() Config {
	return Config{
		Backend:      BackendFile,
		Path:         DefaultPath(),
		Bucket:       defaultBucket,
		Table:        defaultTable,
		PollInterval: models.Duration(defaultPollInterval),
	}
}

// DefaultPath returns the per-user directory used by the file backend.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join("."+defaultDirName, defaultDataDirName)
	}

	return filepath.Join(dir, defaultDirName, defaultDataDirName)
}

// Validate checks the selected backend has what it needs and fills defaults.
func (c *Config) Validate() error {
	if c.Backend == "" {
		c.Backend = BackendFile
	}

	if err := c.validateRequiredFields(); err != nil {
		return err
	}

	c.setDefaults()

	if c.Backend == BackendPostgres && !tableNamePattern.MatchString(c.Table) {
		return errInvalidTableName
	}

	return nil
}

// validateRequiredFields checks for mandatory per-backend fields.
func (c *Config) validateRequiredFields() error {
	if c.PollInterval < 0 {
		return errInvalidPollInterval
	}

	switch c.Backend {
	case BackendFile:
		if c.Path == "" {
			return errPathRequired
		}
	case BackendMemory:
	case BackendNATS:
		if c.NATSURL == "" {
			return errNatsURLRequired
		}

		if c.TLS != nil {
			return c.TLS.validate()
		}
	case BackendPostgres:
		if c.PostgresURL == "" {
			return errPostgresURLRequired
		}
	default:
		return errUnknownBackend
	}

	return nil
}

func (c *Config) setDefaults() {
	if c.Bucket == "" {
		c.Bucket = defaultBucket
	}

	if c.Table == "" {
		c.Table = defaultTable
	}

	if c.PollInterval == 0 {
		c.PollInterval = models.Duration(defaultPollInterval)
	}
}

// Persistent reports whether values survive the process.
func (c *Config) Persistent() bool {
	return c.Backend != BackendMemory
}
