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

// Attributes is a fixed attribute tuple. It is used for tests and for
// describing a device other than the host from configuration.
type Attributes struct {
	UserAgent      string
	Platform       string
	Language       string
	ScreenWidth    int
	ScreenHeight   int
	ColorDepth     int
	TimezoneOffset int
	CookieEnabled  bool
	JavaEnabled    bool
}

type staticEnvironment struct {
	attrs Attributes
}

// NewStaticEnvironment returns an Environment that always reports attrs.
func NewStaticEnvironment(attrs Attributes) Environment {
	return staticEnvironment{attrs: attrs}
}

func (s staticEnvironment) UserAgent() string   { return s.attrs.UserAgent }
func (s staticEnvironment) Platform() string    { return s.attrs.Platform }
func (s staticEnvironment) Language() string    { return s.attrs.Language }
func (s staticEnvironment) ScreenWidth() int    { return s.attrs.ScreenWidth }
func (s staticEnvironment) ScreenHeight() int   { return s.attrs.ScreenHeight }
func (s staticEnvironment) ColorDepth() int     { return s.attrs.ColorDepth }
func (s staticEnvironment) TimezoneOffset() int { return s.attrs.TimezoneOffset }
func (s staticEnvironment) CookieEnabled() bool { return s.attrs.CookieEnabled }
func (s staticEnvironment) JavaEnabled() bool   { return s.attrs.JavaEnabled }
