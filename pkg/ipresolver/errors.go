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

import "errors"

var (
	errPrimaryURLRequired  = errors.New("ip_lookup.primary_url is required")
	errFallbackURLRequired = errors.New("ip_lookup.fallback_url is required")
	errBuildRequest        = errors.New("failed to build lookup request")
	errRequestFailed       = errors.New("lookup request failed")
	errUnexpectedStatus    = errors.New("unexpected lookup status")
	errMalformedResponse   = errors.New("malformed lookup response")
	errEmptyIP             = errors.New("lookup response has no ip")
)
