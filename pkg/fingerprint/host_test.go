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
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/carverauto/devicecollector/pkg/logger"
	"github.com/muesli/termenv"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/stretchr/testify/assert"
)

var errNoHost = errors.New("host info unavailable")

func stubHostSeams(t *testing.T) {
	t.Helper()

	origHostInfo, origProfile, origLookPath, origNow := hostInfo, colorProfile, lookPath, now

	t.Cleanup(func() {
		hostInfo, colorProfile, lookPath, now = origHostInfo, origProfile, origLookPath, origNow
	})

	hostInfo = func(context.Context) (*host.InfoStat, error) {
		return &host.InfoStat{
			OS:              "linux",
			Platform:        "ubuntu",
			PlatformVersion: "24.04",
			KernelArch:      "x86_64",
		}, nil
	}
	colorProfile = func() termenv.Profile { return termenv.ANSI256 }
	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	now = func() time.Time {
		return time.Date(2026, 10, 16, 12, 0, 0, 0, time.FixedZone("CST", 8*60*60))
	}

	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "zh_CN.UTF-8")
}

func TestDetectHost(t *testing.T) {
	stubHostSeams(t)

	env := DetectHost(context.Background(), Overrides{}, logger.NewTestLogger())

	assert.Equal(t, "linux x86_64", env.Platform())
	assert.True(t, strings.HasPrefix(env.UserAgent(), "devicecollector/"))
	assert.Contains(t, env.UserAgent(), "(ubuntu 24.04; x86_64)")
	assert.Equal(t, "zh-CN", env.Language())
	assert.Equal(t, 80, env.ScreenWidth())
	assert.Equal(t, 24, env.ScreenHeight())
	assert.Equal(t, 8, env.ColorDepth())
	assert.Equal(t, -480, env.TimezoneOffset())
	assert.True(t, env.CookieEnabled())
	assert.False(t, env.JavaEnabled())
}

func TestDetectHostFallbacks(t *testing.T) {
	stubHostSeams(t)

	hostInfo = func(context.Context) (*host.InfoStat, error) { return nil, errNoHost }
	colorProfile = func() termenv.Profile { return termenv.Ascii }
	lookPath = func(string) (string, error) { return "/usr/bin/java", nil }

	t.Setenv("LANG", "C")

	env := DetectHost(context.Background(), Overrides{}, logger.NewTestLogger())

	assert.NotEmpty(t, env.Platform())
	assert.Equal(t, "en-US", env.Language())
	assert.Equal(t, 80, env.ScreenWidth())
	assert.Equal(t, 24, env.ScreenHeight())
	assert.Equal(t, 1, env.ColorDepth())
	assert.True(t, env.JavaEnabled())
}

func TestDetectHostDeviceIDStableAcrossTerminals(t *testing.T) {
	stubHostSeams(t)

	var ids []string

	// TrueColor is a full-screen terminal, Ascii is output piped to a file.
	for _, profile := range []termenv.Profile{termenv.TrueColor, termenv.ANSI256, termenv.Ascii} {
		colorProfile = func() termenv.Profile { return profile }

		ids = append(ids, GenerateDeviceID(DetectHost(context.Background(), Overrides{}, logger.NewTestLogger())))
	}

	assert.Equal(t, ids[0], ids[1])
	assert.Equal(t, ids[0], ids[2])

	resized := DetectHost(context.Background(), Overrides{ScreenWidth: 1920, ScreenHeight: 1080}, logger.NewTestLogger())
	assert.NotEqual(t, ids[0], GenerateDeviceID(resized), "a configured screen size is part of the id")
}

func TestDetectHostOverrides(t *testing.T) {
	stubHostSeams(t)

	offset := 300
	cookies := false
	java := true

	env := DetectHost(context.Background(), Overrides{
		UserAgent:      chromeUA,
		Platform:       "Win32",
		Language:       "fr-FR",
		ScreenWidth:    1280,
		ScreenHeight:   720,
		ColorDepth:     30,
		TimezoneOffset: &offset,
		CookieEnabled:  &cookies,
		JavaEnabled:    &java,
	}, logger.NewTestLogger())

	assert.Equal(t, Attributes{
		UserAgent:      chromeUA,
		Platform:       "Win32",
		Language:       "fr-FR",
		ScreenWidth:    1280,
		ScreenHeight:   720,
		ColorDepth:     30,
		TimezoneOffset: 300,
		CookieEnabled:  false,
		JavaEnabled:    true,
	}, env.Attributes())
}

func TestLocaleToTag(t *testing.T) {
	cases := map[string]string{
		"en_US.UTF-8":     "en-US",
		"de_DE@euro":      "de-DE",
		"pt_BR":           "pt-BR",
		"C":               "",
		"POSIX":           "",
		"":                "",
		"C.UTF-8":         "",
		"ja_JP.eucJP@foo": "ja-JP",
	}

	for in, want := range cases {
		assert.Equal(t, want, localeToTag(in), in)
	}
}

func TestColorDepth(t *testing.T) {
	assert.Equal(t, 24, colorDepth(termenv.TrueColor))
	assert.Equal(t, 8, colorDepth(termenv.ANSI256))
	assert.Equal(t, 4, colorDepth(termenv.ANSI))
	assert.Equal(t, 1, colorDepth(termenv.Ascii))
}
