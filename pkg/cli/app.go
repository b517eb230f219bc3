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

package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/carverauto/devicecollector/pkg/collector"
	"github.com/carverauto/devicecollector/pkg/config"
	"github.com/carverauto/devicecollector/pkg/fingerprint"
	"github.com/carverauto/devicecollector/pkg/ipresolver"
	"github.com/carverauto/devicecollector/pkg/kv"
	"github.com/carverauto/devicecollector/pkg/logger"
	"github.com/carverauto/devicecollector/pkg/records"
)

// App bundles the components every subcommand works with.
type App struct {
	Config    *config.AppConfig
	Logger    logger.Logger
	Storage   kv.KVStore
	Records   *records.Store
	Env       *fingerprint.HostEnvironment
	Collector *collector.Collector
}

// NewApp opens storage and builds the collector from cfg.
func NewApp(ctx context.Context, cfg *config.AppConfig, log logger.Logger) (*App, error) {
	store, err := kv.New(ctx, cfg.Storage, logger.ForComponent(log, "kv"))
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	overrides := cfg.Environment
	if overrides.CookieEnabled == nil {
		persistent := cfg.Storage.Persistent()
		overrides.CookieEnabled = &persistent
	}

	env := fingerprint.DetectHost(ctx, overrides, logger.ForComponent(log, "fingerprint"))
	recordStore := records.NewStore(store, cfg.Records.Key, logger.ForComponent(log, "records"))
	resolver := ipresolver.New(cfg.IPLookup, &http.Client{}, logger.ForComponent(log, "ipresolver"))

	return &App{
		Config:    cfg,
		Logger:    log,
		Storage:   store,
		Records:   recordStore,
		Env:       env,
		Collector: collector.New(cfg.Submit, env, resolver, recordStore, logger.ForComponent(log, "collector")),
	}, nil
}

func (a *App) Close() error {
	return a.Storage.Close()
}
