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

package ipresolver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/carverauto/devicecollector/pkg/logger"
	"github.com/carverauto/devicecollector/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonServer(t *testing.T, status int, body string, hits *atomic.Int32) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits != nil {
			hits.Add(1)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func closedServerURL(t *testing.T) string {
	t.Helper()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	return url
}

func newResolver(primary, fallback string) *Resolver {
	return New(Config{
		PrimaryURL:  primary,
		FallbackURL: fallback,
		Timeout:     models.Duration(2 * time.Second),
	}, nil, logger.NewTestLogger())
}

func TestResolvePrimarySucceeds(t *testing.T) {
	var fallbackHits atomic.Int32

	primary := jsonServer(t, http.StatusOK, `{"ip":"203.0.113.7"}`, nil)
	fallback := jsonServer(t, http.StatusOK, `{"ip":"2001:db8::1"}`, &fallbackHits)

	ip := newResolver(primary.URL, fallback.URL).Resolve(context.Background())

	assert.Equal(t, "203.0.113.7", ip)
	assert.Zero(t, fallbackHits.Load(), "fallback must not be queried when primary succeeds")
}

func TestResolveFallsBack(t *testing.T) {
	fallback := jsonServer(t, http.StatusOK, `{"ip":"2001:db8::1"}`, nil)

	cases := []struct {
		name    string
		primary string
	}{
		{name: "network error", primary: closedServerURL(t)},
		{name: "server error", primary: jsonServer(t, http.StatusTooManyRequests, `{}`, nil).URL},
		{name: "malformed json", primary: jsonServer(t, http.StatusOK, `<html>blocked</html>`, nil).URL},
		{name: "missing ip", primary: jsonServer(t, http.StatusOK, `{"address":"203.0.113.7"}`, nil).URL},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ip := newResolver(tc.primary, fallback.URL).Resolve(context.Background())
			assert.Equal(t, "2001:db8::1", ip)
		})
	}
}

func TestResolveBothFail(t *testing.T) {
	primary := jsonServer(t, http.StatusServiceUnavailable, `{}`, nil)

	ip := newResolver(primary.URL, closedServerURL(t)).Resolve(context.Background())

	assert.Equal(t, models.UnknownIP, ip)
}

func TestResolveTimeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(slow.Close)

	fallback := jsonServer(t, http.StatusOK, `{"ip":"198.51.100.2"}`, nil)

	r := New(Config{
		PrimaryURL:  slow.URL,
		FallbackURL: fallback.URL,
		Timeout:     models.Duration(50 * time.Millisecond),
	}, nil, logger.NewTestLogger())

	assert.Equal(t, "198.51.100.2", r.Resolve(context.Background()))
}

func TestResolveCanceledContext(t *testing.T) {
	primary := jsonServer(t, http.StatusOK, `{"ip":"203.0.113.7"}`, nil)
	fallback := jsonServer(t, http.StatusOK, `{"ip":"2001:db8::1"}`, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, models.UnknownIP, newResolver(primary.URL, fallback.URL).Resolve(ctx))
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.PrimaryURL = ""
	require.ErrorIs(t, cfg.Validate(), errPrimaryURLRequired)

	cfg = DefaultConfig()
	cfg.FallbackURL = ""
	require.ErrorIs(t, cfg.Validate(), errFallbackURLRequired)
}
