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

package report

import (
	"github.com/carverauto/devicecollector/pkg/geoip"
	"github.com/carverauto/devicecollector/pkg/models"
)

// UnknownCountry groups records whose IP could not be placed.
const UnknownCountry = "??"

// CountryBreakdown counts records per ISO country code of their IP address.
func CountryBreakdown(records []models.Record, lookup geoip.Lookup) map[string]int {
	breakdown := make(map[string]int)

	for i := range records {
		breakdown[countryOf(records[i].IPAddress, lookup)]++
	}

	return breakdown
}

func countryOf(ip string, lookup geoip.Lookup) string {
	if lookup == nil || ip == "" || ip == models.UnknownIP {
		return UnknownCountry
	}

	code, err := lookup.Country(ip)
	if err != nil || code == "" {
		return UnknownCountry
	}

	return code
}
