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
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/carverauto/devicecollector/pkg/logger"
	"github.com/carverauto/devicecollector/pkg/version"
	"github.com/muesli/termenv"
	"github.com/shirou/gopsutil/v3/host"
)

const (
	defaultLanguage     = "en-US"
	// The screen size feeds the device id, so it is fixed unless configured:
	// a terminal window can be resized or redirected between runs.
	defaultScreenWidth  = 80
	defaultScreenHeight = 24
	trueColorDepth      = 24
	ansi256ColorDepth   = 8
	ansiColorDepth      = 4
	asciiColorDepth     = 1
	javaBinary          = "java"
)

// Seams for tests.
var (
	hostInfo     = host.InfoWithContext
	colorProfile = termenv.ColorProfile
	lookPath     = exec.LookPath
	now          = time.Now
)

// Overrides replaces detected host attributes. Zero values leave the
// detected value in place; the pointer fields distinguish "false"/"0" from
// "not set".
type Overrides struct {
	UserAgent      string `json:"user_agent"`
	Platform       string `json:"platform"`
	Language       string `json:"language"`
	ScreenWidth    int    `json:"screen_width"`
	ScreenHeight   int    `json:"screen_height"`
	ColorDepth     int    `json:"color_depth"`
	TimezoneOffset *int   `json:"timezone_offset,omitempty"`
	CookieEnabled  *bool  `json:"cookie_enabled,omitempty"`
	JavaEnabled    *bool  `json:"java_enabled,omitempty"`
}

// HostEnvironment is the Environment of the machine the collector runs on.
type HostEnvironment struct {
	attrs Attributes
}

var _ Environment = (*HostEnvironment)(nil)

// DetectHost inspects the local machine. Detection problems are logged and
// replaced with fallbacks; the result is always usable. Nothing that changes
// between runs on one machine (window size, output redirection) feeds the
// attributes hashed into the device id.
func DetectHost(ctx context.Context, overrides Overrides, log logger.Logger) *HostEnvironment {
	attrs := Attributes{
		Language:       languageFromLocale(),
		ScreenWidth:    defaultScreenWidth,
		ScreenHeight:   defaultScreenHeight,
		ColorDepth:     colorDepth(colorProfile()),
		TimezoneOffset: timezoneOffset(now()),
		CookieEnabled:  true,
		JavaEnabled:    javaAvailable(),
	}

	osName, platform, arch := runtime.GOOS, runtime.GOOS, runtime.GOARCH

	info, err := hostInfo(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read host info, falling back to runtime values")
	} else {
		if info.OS != "" {
			osName = info.OS
		}

		if info.KernelArch != "" {
			arch = info.KernelArch
		}

		platform = strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
	}

	attrs.Platform = fmt.Sprintf("%s %s", osName, arch)
	attrs.UserAgent = fmt.Sprintf("devicecollector/%s (%s; %s) Go/%s",
		version.GetVersion(), platform, arch, strings.TrimPrefix(runtime.Version(), "go"))

	applyOverrides(&attrs, overrides)

	return &HostEnvironment{attrs: attrs}
}

func applyOverrides(attrs *Attributes, o Overrides) {
	if o.UserAgent != "" {
		attrs.UserAgent = o.UserAgent
	}

	if o.Platform != "" {
		attrs.Platform = o.Platform
	}

	if o.Language != "" {
		attrs.Language = o.Language
	}

	if o.ScreenWidth > 0 {
		attrs.ScreenWidth = o.ScreenWidth
	}

	if o.ScreenHeight > 0 {
		attrs.ScreenHeight = o.ScreenHeight
	}

	if o.ColorDepth > 0 {
		attrs.ColorDepth = o.ColorDepth
	}

	if o.TimezoneOffset != nil {
		attrs.TimezoneOffset = *o.TimezoneOffset
	}

	if o.CookieEnabled != nil {
		attrs.CookieEnabled = *o.CookieEnabled
	}

	if o.JavaEnabled != nil {
		attrs.JavaEnabled = *o.JavaEnabled
	}
}

// languageFromLocale turns "en_US.UTF-8" into "en-US".
func languageFromLocale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if tag := localeToTag(os.Getenv(key)); tag != "" {
			return tag
		}
	}

	return defaultLanguage
}

func localeToTag(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}

	if locale == "" || locale == "C" || locale == "POSIX" {
		return ""
	}

	return strings.ReplaceAll(locale, "_", "-")
}

func timezoneOffset(t time.Time) int {
	_, offsetSeconds := t.Zone()

	return -offsetSeconds / 60
}

func colorDepth(profile termenv.Profile) int {
	switch profile {
	case termenv.TrueColor:
		return trueColorDepth
	case termenv.ANSI256:
		return ansi256ColorDepth
	case termenv.ANSI:
		return ansiColorDepth
	default:
		return asciiColorDepth
	}
}

func javaAvailable() bool {
	_, err := lookPath(javaBinary)

	return err == nil
}

// Attributes returns a copy of the detected attribute tuple.
func (h *HostEnvironment) Attributes() Attributes { return h.attrs }

func (h *HostEnvironment) UserAgent() string   { return h.attrs.UserAgent }
func (h *HostEnvironment) Platform() string    { return h.attrs.Platform }
func (h *HostEnvironment) Language() string    { return h.attrs.Language }
func (h *HostEnvironment) ScreenWidth() int    { return h.attrs.ScreenWidth }
func (h *HostEnvironment) ScreenHeight() int   { return h.attrs.ScreenHeight }
func (h *HostEnvironment) ColorDepth() int     { return h.attrs.ColorDepth }
func (h *HostEnvironment) TimezoneOffset() int { return h.attrs.TimezoneOffset }
func (h *HostEnvironment) CookieEnabled() bool { return h.attrs.CookieEnabled }
func (h *HostEnvironment) JavaEnabled() bool   { return h.attrs.JavaEnabled }
