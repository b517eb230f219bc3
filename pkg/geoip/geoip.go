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

// Package geoip maps IP addresses to ISO country codes.
package geoip

import (
	"errors"
	"fmt"
	"net"

	"github.com/oschwald/maxminddb-golang"
)

var (
	ErrInvalidIP    = errors.New("invalid ip address")
	errOpenDatabase = errors.New("failed to open geoip database")
	errLookup       = errors.New("geoip lookup failed")
)

// Lookup resolves an IP address to an ISO 3166-1 alpha-2 country code.
// An empty code with a nil error means the address is not in the database.
type Lookup interface {
	Country(ip string) (string, error)
}

type countryReader interface {
	Lookup(ip net.IP, result any) error
	Close() error
}

type countryRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// MaxMindLookup reads GeoLite2/GeoIP2 country or city databases.
type MaxMindLookup struct {
	reader countryReader
}

func OpenMaxMind(path string) (*MaxMindLookup, error) {
	reader, err := maxminddb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", errOpenDatabase, path, err)
	}

	return &MaxMindLookup{reader: reader}, nil
}

func (m *MaxMindLookup) Country(ip string) (string, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidIP, ip)
	}

	var record countryRecord

	if err := m.reader.Lookup(parsed, &record); err != nil {
		return "", fmt.Errorf("%w: %w", errLookup, err)
	}

	return record.Country.ISOCode, nil
}

func (m *MaxMindLookup) Close() error {
	return m.reader.Close()
}

var _ Lookup = (*MaxMindLookup)(nil)
