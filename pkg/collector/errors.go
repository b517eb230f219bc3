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

package collector

import (
	"errors"
	"strings"
)

var (
	// ErrSubmitFailed wraps storage failures during a submission.
	ErrSubmitFailed = errors.New("submission failed")
	// ErrUnknownField is returned for form keys outside the accepted set.
	ErrUnknownField = errors.New("unknown form field")

	errNegativeDelay = errors.New("submit.delay must not be negative")
)

// ValidationError lists required form fields that were missing or blank.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}
