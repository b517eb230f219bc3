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

// Package fingerprint derives a stable pseudo-identifier for the device the
// collector runs on. The identifier is a weak, non-cryptographic hash and is
// expected to collide across distinct devices occasionally.
package fingerprint

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
)

const (
	componentSeparator = "|"
	deviceIDHexLength  = 12
	deviceIDGroupSize  = 2
	deviceIDSeparator  = ":"
)

// Environment exposes the attributes a device fingerprint is derived from.
type Environment interface {
	UserAgent() string
	Platform() string
	Language() string
	ScreenWidth() int
	ScreenHeight() int
	ColorDepth() int
	// TimezoneOffset is in minutes, positive west of UTC.
	TimezoneOffset() int
	CookieEnabled() bool
	JavaEnabled() bool
}

// GenerateDeviceID returns the colon-grouped identifier for env, e.g.
// "00:00:2B:79:5E:2A". The same attributes always produce the same id.
func GenerateDeviceID(env Environment) string {
	components := strings.Join([]string{
		env.UserAgent(),
		env.Platform(),
		env.Language(),
		ScreenResolution(env),
		strconv.Itoa(env.TimezoneOffset()),
		strconv.FormatBool(env.CookieEnabled()),
		strconv.FormatBool(env.JavaEnabled()),
	}, componentSeparator)

	return formatDeviceID(rollingHash(components))
}

// rollingHash is the 31x string hash over UTF-16 code units, wrapping to
// int32 on every step.
func rollingHash(s string) int32 {
	var hash int32

	for _, unit := range utf16.Encode([]rune(s)) {
		hash = (hash << 5) - hash + int32(unit)
	}

	return hash
}

func formatDeviceID(hash int32) string {
	abs := int64(hash)
	if abs < 0 {
		abs = -abs
	}

	hex := fmt.Sprintf("%0*x", deviceIDHexLength, abs)
	if len(hex) > deviceIDHexLength {
		hex = hex[:deviceIDHexLength]
	}

	groups := make([]string, 0, deviceIDHexLength/deviceIDGroupSize)
	for i := 0; i < len(hex); i += deviceIDGroupSize {
		groups = append(groups, hex[i:i+deviceIDGroupSize])
	}

	return strings.ToUpper(strings.Join(groups, deviceIDSeparator))
}

// ScreenResolution renders the screen dimensions as "WxH".
func ScreenResolution(env Environment) string {
	return fmt.Sprintf("%dx%d", env.ScreenWidth(), env.ScreenHeight())
}

// ColorDepthLabel renders the color depth with its unit, e.g. "24-bit".
func ColorDepthLabel(env Environment) string {
	return fmt.Sprintf("%d-bit", env.ColorDepth())
}
