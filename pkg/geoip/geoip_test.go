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

package geoip

import (
	"errors"
	"net"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	countries map[string]string
	err       error
	closed    bool
}

func (f *fakeReader) Lookup(ip net.IP, result any) error {
	if f.err != nil {
		return f.err
	}

	code, ok := f.countries[ip.String()]
	if !ok {
		return nil
	}

	record, ok := result.(*countryRecord)
	if !ok {
		return errors.New("unexpected result type " + reflect.TypeOf(result).String())
	}

	record.Country.ISOCode = code

	return nil
}

func (f *fakeReader) Close() error {
	f.closed = true

	return nil
}

func TestMaxMindLookupCountry(t *testing.T) {
	reader := &fakeReader{countries: map[string]string{"81.2.69.142": "GB"}}
	lookup := &MaxMindLookup{reader: reader}

	code, err := lookup.Country("81.2.69.142")
	require.NoError(t, err)
	assert.Equal(t, "GB", code)

	code, err = lookup.Country("10.0.0.1")
	require.NoError(t, err)
	assert.Empty(t, code)

	_, err = lookup.Country("unknown")
	require.ErrorIs(t, err, ErrInvalidIP)

	require.NoError(t, lookup.Close())
	assert.True(t, reader.closed)
}

func TestMaxMindLookupReaderError(t *testing.T) {
	lookup := &MaxMindLookup{reader: &fakeReader{err: errors.New("corrupt tree")}}

	_, err := lookup.Country("81.2.69.142")
	require.ErrorIs(t, err, errLookup)
}

func TestOpenMaxMindMissingFile(t *testing.T) {
	_, err := OpenMaxMind(filepath.Join(t.TempDir(), "missing.mmdb"))
	require.ErrorIs(t, err, errOpenDatabase)
}
