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

// Package ipresolver looks up the public IP address of the collecting host.
package ipresolver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/carverauto/devicecollector/pkg/logger"
	"github.com/carverauto/devicecollector/pkg/models"
)

const (
	// DefaultPrimaryURL answers over IPv4.
	DefaultPrimaryURL = "https://api.ipify.org?format=json"
	// DefaultFallbackURL answers over IPv4 or IPv6.
	DefaultFallbackURL = "https://api64.ipify.org?format=json"

	defaultTimeout  = 5 * time.Second
	maxResponseSize = 4 << 10
)

// Config selects the lookup endpoints.
type Config struct {
	PrimaryURL  string          `json:"primary_url"`
	FallbackURL string          `json:"fallback_url"`
	Timeout     models.Duration `json:"timeout"`
}

// DefaultConfig returns the ipify endpoints with a five second timeout.
func DefaultConfig() Config {
	return Config{
		PrimaryURL:  DefaultPrimaryURL,
		FallbackURL: DefaultFallbackURL,
		Timeout:     models.Duration(defaultTimeout),
	}
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if c.PrimaryURL == "" {
		return errPrimaryURLRequired
	}

	if c.FallbackURL == "" {
		return errFallbackURLRequired
	}

	return nil
}

// Resolver queries the primary endpoint and falls back to the secondary.
type Resolver struct {
	client      *http.Client
	primaryURL  string
	fallbackURL string
	timeout     time.Duration
	logger      logger.Logger
}

// New creates a Resolver. A nil client uses a fresh http.Client.
func New(cfg Config, client *http.Client, log logger.Logger) *Resolver {
	if client == nil {
		client = &http.Client{}
	}

	timeout := time.Duration(cfg.Timeout)
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Resolver{
		client:      client,
		primaryURL:  cfg.PrimaryURL,
		fallbackURL: cfg.FallbackURL,
		timeout:     timeout,
		logger:      log,
	}
}

type lookupResponse struct {
	IP string `json:"ip"`
}

// Resolve returns the public IP, or models.UnknownIP when both endpoints
// fail. It never returns an error.
func (r *Resolver) Resolve(ctx context.Context) string {
	ip, err := r.lookup(ctx, r.primaryURL)
	if err == nil {
		return ip
	}

	r.logger.Warn().Err(err).Str("url", r.primaryURL).Msg("Primary IP lookup failed, trying fallback")

	ip, err = r.lookup(ctx, r.fallbackURL)
	if err == nil {
		return ip
	}

	r.logger.Warn().Err(err).Str("url", r.fallbackURL).Msg("Fallback IP lookup failed")

	return models.UnknownIP
}

func (r *Resolver) lookup(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errBuildRequest, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: %s", errUnexpectedStatus, resp.Status)
	}

	var body lookupResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: %w", errMalformedResponse, err)
	}

	ip := strings.TrimSpace(body.IP)
	if ip == "" {
		return "", errEmptyIP
	}

	return ip, nil
}
