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
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carverauto/devicecollector/pkg/logger"
)

const postgresApplicationName = "devicecollector"

// PostgresStore keeps values in a single key/value table.
type PostgresStore struct {
	pool         *pgxpool.Pool
	table        string
	pollInterval time.Duration
	log          logger.Logger

	done chan struct{}
	once sync.Once
}

func NewPostgresStore(
	ctx context.Context, connString, table string, pollInterval time.Duration, log logger.Logger,
) (*PostgresStore, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, errInvalidTableName
	}

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to parse connection string: %w", err)
	}

	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = make(map[string]string)
	}

	if _, ok := poolConfig.ConnConfig.RuntimeParams["application_name"]; !ok {
		poolConfig.ConnConfig.RuntimeParams["application_name"] = postgresApplicationName
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to initialize pool: %w", err)
	}

	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	store := &PostgresStore{
		pool:         pool,
		table:        pgx.Identifier{table}.Sanitize(),
		pollInterval: pollInterval,
		log:          log,
		done:         make(chan struct{}),
	}

	if err := store.ensureSchema(ctx); err != nil {
		pool.Close()

		return nil, err
	}

	log.Info().
		Str("host", poolConfig.ConnConfig.Host).
		Str("table", table).
		Msg("Connected to Postgres")

	return store, nil
}

func (p *PostgresStore) ensureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		key        TEXT PRIMARY KEY,
		value      BYTEA NOT NULL,
		expires_at TIMESTAMPTZ,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, p.table)

	if _, err := p.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("postgres: failed to create table: %w", err)
	}

	return nil
}

func (p *PostgresStore) isClosed() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if p.isClosed() {
		return nil, false, ErrStoreClosed
	}

	query := fmt.Sprintf(
		`SELECT value FROM %s WHERE key = $1 AND (expires_at IS NULL OR expires_at > now())`, p.table)

	var value []byte

	err := p.pool.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("failed to get key %s: %w", key, err)
	}

	if value == nil {
		value = []byte{}
	}

	return value, true, nil
}

func (p *PostgresStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if p.isClosed() {
		return ErrStoreClosed
	}

	var expiresAt *time.Time

	if ttl > 0 {
		t := time.Now().Add(ttl).UTC()
		expiresAt = &t
	}

	if value == nil {
		value = []byte{}
	}

	query := fmt.Sprintf(`INSERT INTO %s (key, value, expires_at, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = now()`, p.table)

	if _, err := p.pool.Exec(ctx, query, key, value, expiresAt); err != nil {
		return fmt.Errorf("failed to put key %s: %w", key, err)
	}

	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, key string) error {
	if p.isClosed() {
		return ErrStoreClosed
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, p.table)

	if _, err := p.pool.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}

	return nil
}

func (p *PostgresStore) Watch(ctx context.Context, key string) (<-chan []byte, error) {
	if p.isClosed() {
		return nil, ErrStoreClosed
	}

	fetch := func(ctx context.Context) ([]byte, bool, error) {
		return p.Get(ctx, key)
	}

	return pollWatch(ctx, key, p.pollInterval, p.done, fetch, p.log), nil
}

func (p *PostgresStore) Close() error {
	p.once.Do(func() {
		close(p.done)
		p.pool.Close()
	})

	return nil
}

var _ KVStore = (*PostgresStore)(nil)
