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

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/carverauto/devicecollector/pkg/collector"
	"github.com/carverauto/devicecollector/pkg/fingerprint"
	"github.com/carverauto/devicecollector/pkg/ipresolver"
	"github.com/carverauto/devicecollector/pkg/kv"
	"github.com/carverauto/devicecollector/pkg/logger"
	"github.com/carverauto/devicecollector/pkg/records"
)

const (
	appDirName     = "devicecollector"
	configFileName = "config.json"
	redactedValue  = "[redacted]"
)

// RecordsConfig names the storage key holding the record list.
type RecordsConfig struct {
	Key string `json:"key"`
}

// GeoIPConfig points at an optional MaxMind country database used by the
// report country breakdown.
type GeoIPConfig struct {
	DatabasePath string `json:"database_path,omitempty"`
}

// ExportConfig sets where export artifacts are written.
type ExportConfig struct {
	Dir string `json:"dir,omitempty"`
}

// AppConfig is the complete devicecollector configuration.
type AppConfig struct {
	Logging     logger.Config         `json:"logging"`
	Storage     kv.Config             `json:"storage"`
	Records     RecordsConfig         `json:"records"`
	IPLookup    ipresolver.Config     `json:"ip_lookup"`
	Submit      collector.Config      `json:"submit"`
	GeoIP       GeoIPConfig           `json:"geoip"`
	Environment fingerprint.Overrides `json:"environment"`
	Export      ExportConfig          `json:"export"`
}

// DefaultAppConfig returns the configuration used when nothing overrides it.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Logging:  *logger.DefaultConfig(),
		Storage:  kv.DefaultConfig(),
		Records:  RecordsConfig{Key: records.DefaultKey},
		IPLookup: ipresolver.DefaultConfig(),
		Submit:   collector.DefaultConfig(),
		Export:   ExportConfig{Dir: "."},
	}
}

// DefaultPath is the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join("."+appDirName, configFileName)
	}

	return filepath.Join(dir, appDirName, configFileName)
}

// Validate implements Validator.
func (c *AppConfig) Validate() error {
	if c.Records.Key == "" {
		c.Records.Key = records.DefaultKey
	}

	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}

	sections := []struct {
		name string
		v    Validator
	}{
		{"storage", &c.Storage},
		{"ip_lookup", &c.IPLookup},
		{"submit", &c.Submit},
	}

	for _, section := range sections {
		if err := section.v.Validate(); err != nil {
			return fmt.Errorf("%s: %w", section.name, err)
		}
	}

	return nil
}

// Redacted returns a copy safe to print, with credentials removed from
// connection URLs.
func (c *AppConfig) Redacted() AppConfig {
	out := *c
	out.Storage.NATSURL = redactURL(c.Storage.NATSURL)
	out.Storage.PostgresURL = redactURL(c.Storage.PostgresURL)

	return out
}

func redactURL(raw string) string {
	if raw == "" {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return redactedValue
	}

	return u.Redacted()
}
