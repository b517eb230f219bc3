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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/devicecollector/pkg/models"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want CmdConfig
	}{
		{
			name: "no arguments opens the form",
			args: nil,
			want: CmdConfig{SubCmd: subCmdCollect},
		},
		{
			name: "collect flags without subcommand",
			args: []string{"-user-name", "Ada", "-department", "IT", "-device-type", "Laptop", "-non-interactive"},
			want: CmdConfig{
				SubCmd:         subCmdCollect,
				UserName:       "Ada",
				Department:     "IT",
				DeviceType:     "Laptop",
				NonInteractive: true,
			},
		},
		{
			name: "report with follow and html",
			args: []string{"report", "-follow", "-html", "out.html", "-geoip", "country.mmdb"},
			want: CmdConfig{SubCmd: subCmdReport, Follow: true, HTMLOut: "out.html", GeoIPPath: "country.mmdb"},
		},
		{
			name: "export to stdout",
			args: []string{"export", "-out", "-"},
			want: CmdConfig{SubCmd: subCmdExport, OutPath: "-"},
		},
		{
			name: "device id with copy and config file",
			args: []string{"device-id", "-copy", "-config", "/etc/devicecollector.json"},
			want: CmdConfig{SubCmd: subCmdDeviceID, Copy: true, ConfigFile: "/etc/devicecollector.json"},
		},
		{
			name: "config",
			args: []string{"config"},
			want: CmdConfig{SubCmd: subCmdConfig},
		},
		{
			name: "version",
			args: []string{"version"},
			want: CmdConfig{SubCmd: subCmdVersion},
		},
		{
			name: "help word",
			args: []string{"help"},
			want: CmdConfig{SubCmd: subCmdCollect, Help: true},
		},
		{
			name: "help flag on subcommand",
			args: []string{"export", "-h"},
			want: CmdConfig{SubCmd: subCmdExport, Help: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlags(tt.args)
			require.NoError(t, err)

			want := tt.want
			got.Args = nil

			assert.Equal(t, &want, got)
		})
	}
}

func TestParseFlagsUnknownSubcommand(t *testing.T) {
	_, err := ParseFlags([]string{"upload"})
	require.ErrorIs(t, err, errUnknownSubcommand)
}

func TestParseFlagsUnknownFlag(t *testing.T) {
	_, err := ParseFlags([]string{"report", "-nope"})
	require.Error(t, err)
}

func TestFormValuesOnlySetFlags(t *testing.T) {
	cfg := &CmdConfig{UserName: "Ada", Phone: "555-0100"}

	assert.Equal(t, map[string]string{
		models.FieldUserName: "Ada",
		models.FieldPhone:    "555-0100",
	}, cfg.formValues())
}

func TestInteractive(t *testing.T) {
	assert.True(t, (&CmdConfig{SubCmd: subCmdCollect}).Interactive())
	assert.False(t, (&CmdConfig{SubCmd: subCmdCollect, NonInteractive: true}).Interactive())
	assert.False(t, (&CmdConfig{SubCmd: subCmdCollect, UserName: "Ada"}).Interactive())
	assert.False(t, (&CmdConfig{SubCmd: subCmdReport}).Interactive())
}
