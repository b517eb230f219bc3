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

import "errors"

var (
	errUnknownSubcommand = errors.New("unknown subcommand")
	errNoFormValues      = errors.New("no form values given; pass -user-name, -department and -device-type or run without -non-interactive")
	errClipboard         = errors.New("clipboard is not available")
	errWriteArtifact     = errors.New("failed to write export")
	errWriteHTML         = errors.New("failed to write html report")
	errGeoIP             = errors.New("failed to open geoip database")
	errNotTerminal       = errors.New("the form needs a terminal; pass -non-interactive with field flags")
)
