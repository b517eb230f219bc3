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

// Package collector gathers device information and turns validated form
// input into stored records.
package collector

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carverauto/devicecollector/pkg/fingerprint"
	"github.com/carverauto/devicecollector/pkg/logger"
	"github.com/carverauto/devicecollector/pkg/models"
)

const (
	// DefaultSubmitDelay is the pause after a successful save before the
	// caller is told about it.
	DefaultSubmitDelay = time.Second

	timestampLayout = "2006-01-02T15:04:05.000Z"
)

// Config tunes submission behaviour.
type Config struct {
	SubmitDelay models.Duration `json:"submit_delay"`
}

func DefaultConfig() Config {
	return Config{SubmitDelay: models.Duration(DefaultSubmitDelay)}
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if c.SubmitDelay < 0 {
		return errNegativeDelay
	}

	return nil
}

// Collector owns the device snapshot and the submission workflow.
type Collector struct {
	env      fingerprint.Environment
	resolver IPResolver
	store    RecordAppender
	clock    Clock
	delay    time.Duration
	logger   logger.Logger

	mu       sync.Mutex
	snapshot *models.DeviceInfo
}

func New(
	cfg Config, env fingerprint.Environment, resolver IPResolver, store RecordAppender, log logger.Logger,
) *Collector {
	return &Collector{
		env:      env,
		resolver: resolver,
		store:    store,
		clock:    realClock{},
		delay:    time.Duration(cfg.SubmitDelay),
		logger:   log,
	}
}

// Snapshot returns the device information, resolving the public IP on the
// first call only.
func (c *Collector) Snapshot(ctx context.Context) models.DeviceInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil {
		return *c.snapshot
	}

	info := models.DeviceInfo{
		IPAddress:        c.resolver.Resolve(ctx),
		DeviceID:         fingerprint.GenerateDeviceID(c.env),
		ScreenResolution: fingerprint.ScreenResolution(c.env),
		ColorDepth:       fingerprint.ColorDepthLabel(c.env),
		Browser:          fingerprint.BrowserInfo(c.env.UserAgent(), c.env.Language()),
		UserAgent:        c.env.UserAgent(),
		Platform:         c.env.Platform(),
	}

	// An aborted lookup is not cached so the next call can retry.
	if ctx.Err() == nil {
		c.snapshot = &info
	}

	c.logger.Debug().
		Str("device_id", info.DeviceID).
		Str("ip", info.IPAddress).
		Msg("Collected device snapshot")

	return info
}

// Submit validates input, stores the resulting record and then waits for
// the configured delay. Invalid input is never stored. On failure the
// caller still holds input and may resubmit it.
func (c *Collector) Submit(ctx context.Context, input models.FormInput) (models.Record, error) {
	input = trimInput(input)

	if err := Validate(input); err != nil {
		return models.Record{}, err
	}

	submissionID := uuid.NewString()
	info := c.Snapshot(ctx)

	record := models.Record{
		UserName:         input.UserName,
		Department:       input.Department,
		Phone:            input.Phone,
		DeviceType:       input.DeviceType,
		Location:         input.Location,
		Purpose:          input.Purpose,
		IPAddress:        info.IPAddress,
		DeviceID:         info.DeviceID,
		ScreenResolution: info.ScreenResolution,
		ColorDepth:       info.ColorDepth,
		Browser:          info.Browser,
		Timestamp:        c.clock.Now().UTC().Format(timestampLayout),
		UserAgent:        info.UserAgent,
		Platform:         info.Platform,
	}

	if err := c.store.Append(ctx, record); err != nil {
		c.logger.Error().
			Err(err).
			Str("submission_id", submissionID).
			Msg("Failed to store submission")

		return models.Record{}, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	c.logger.Info().
		Str("submission_id", submissionID).
		Str("device_id", record.DeviceID).
		Str("department", record.Department).
		Msg("Stored submission")

	c.wait(ctx)

	return record, nil
}

// wait pauses for the submit delay. The record is already stored, so a
// canceled context only cuts the pause short.
func (c *Collector) wait(ctx context.Context) {
	if c.delay <= 0 {
		return
	}

	select {
	case <-c.clock.After(c.delay):
	case <-ctx.Done():
	}
}

func trimInput(input models.FormInput) models.FormInput {
	return models.FormInput{
		UserName:   strings.TrimSpace(input.UserName),
		Department: strings.TrimSpace(input.Department),
		Phone:      strings.TrimSpace(input.Phone),
		DeviceType: strings.TrimSpace(input.DeviceType),
		Location:   strings.TrimSpace(input.Location),
		Purpose:    strings.TrimSpace(input.Purpose),
	}
}
