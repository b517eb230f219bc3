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

package fingerprint

import (
	"fmt"
	"strings"
)

const otherBrowser = "Other"

// BrowserName sniffs the client family from a user agent string. Order
// matters: Chromium-based Edge advertises both "Chrome" and "Edg", and
// Chrome advertises "Safari".
func BrowserName(userAgent string) string {
	switch {
	case strings.Contains(userAgent, "Chrome") && !strings.Contains(userAgent, "Edg"):
		return "Chrome"
	case strings.Contains(userAgent, "Firefox"):
		return "Firefox"
	case strings.Contains(userAgent, "Safari") && !strings.Contains(userAgent, "Chrome"):
		return "Safari"
	case strings.Contains(userAgent, "Edg"):
		return "Edge"
	default:
		return otherBrowser
	}
}

// BrowserInfo returns the client name followed by its language tag.
func BrowserInfo(userAgent, language string) string {
	return fmt.Sprintf("%s (%s)", BrowserName(userAgent), language)
}
