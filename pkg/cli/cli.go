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
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/carverauto/devicecollector/pkg/models"
)

const (
	subCmdCollect  = "collect"
	subCmdReport   = "report"
	subCmdExport   = "export"
	subCmdDeviceID = "device-id"
	subCmdConfig   = "config"
	subCmdVersion  = "version"
)

// SubcommandHandler defines the interface for parsing subcommand flags.
type SubcommandHandler interface {
	Parse(args []string, cfg *CmdConfig) error
}

func newFlagSet(name string, cfg *CmdConfig) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.ConfigFile, "config", "", "path to config file (default per-user config)")

	return fs
}

// CollectHandler handles flags for the collect subcommand.
type CollectHandler struct{}

// Parse processes the command-line arguments for the collect subcommand.
func (CollectHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet(subCmdCollect, cfg)
	fs.StringVar(&cfg.UserName, "user-name", "", "name of the person registering the device")
	fs.StringVar(&cfg.Department, "department", "", "department")
	fs.StringVar(&cfg.Phone, "phone", "", "contact phone")
	fs.StringVar(&cfg.DeviceType, "device-type", "", "device type, e.g. Laptop")
	fs.StringVar(&cfg.Location, "location", "", "where the device lives")
	fs.StringVar(&cfg.Purpose, "purpose", "", "what the device is used for")
	fs.BoolVar(&cfg.NonInteractive, "non-interactive", false, "submit from flags instead of the form")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing collect flags: %w", err)
	}

	cfg.Args = fs.Args()

	return nil
}

// ReportHandler handles flags for the report subcommand.
type ReportHandler struct{}

// Parse processes the command-line arguments for the report subcommand.
func (ReportHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet(subCmdReport, cfg)
	fs.BoolVar(&cfg.Follow, "follow", false, "keep running and redraw when records change")
	fs.StringVar(&cfg.GeoIPPath, "geoip", "", "MaxMind country database for a per-country breakdown")
	fs.StringVar(&cfg.HTMLOut, "html", "", "also write an HTML report to this path")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing report flags: %w", err)
	}

	cfg.Args = fs.Args()

	return nil
}

// ExportHandler handles flags for the export subcommand.
type ExportHandler struct{}

// Parse processes the command-line arguments for the export subcommand.
func (ExportHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet(subCmdExport, cfg)
	fs.StringVar(&cfg.OutPath, "out", "", "output file or directory; '-' writes to stdout")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing export flags: %w", err)
	}

	cfg.Args = fs.Args()

	return nil
}

// DeviceIDHandler handles flags for the device-id subcommand.
type DeviceIDHandler struct{}

// Parse processes the command-line arguments for the device-id subcommand.
func (DeviceIDHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet(subCmdDeviceID, cfg)
	fs.BoolVar(&cfg.Copy, "copy", false, "copy the device id to the clipboard")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing device-id flags: %w", err)
	}

	cfg.Args = fs.Args()

	return nil
}

// ConfigHandler handles flags for the config subcommand.
type ConfigHandler struct{}

// Parse processes the command-line arguments for the config subcommand.
func (ConfigHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet(subCmdConfig, cfg)

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing config flags: %w", err)
	}

	cfg.Args = fs.Args()

	return nil
}

// VersionHandler handles the version subcommand, which takes no flags.
type VersionHandler struct{}

// Parse rejects any flags given to the version subcommand.
func (VersionHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := flag.NewFlagSet(subCmdVersion, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing version flags: %w", err)
	}

	cfg.Args = fs.Args()

	return nil
}

func subcommands() map[string]SubcommandHandler {
	return map[string]SubcommandHandler{
		subCmdCollect:  CollectHandler{},
		subCmdReport:   ReportHandler{},
		subCmdExport:   ExportHandler{},
		subCmdDeviceID: DeviceIDHandler{},
		subCmdConfig:   ConfigHandler{},
		subCmdVersion:  VersionHandler{},
	}
}

// ParseFlags parses args (without the program name). With no subcommand
// the interactive collect form is selected.
func ParseFlags(args []string) (*CmdConfig, error) {
	cfg := &CmdConfig{SubCmd: subCmdCollect}

	if len(args) > 0 {
		switch args[0] {
		case "-h", "-help", "--help", "help":
			cfg.Help = true

			return cfg, nil
		}

		if len(args[0]) > 0 && args[0][0] != '-' {
			cfg.SubCmd = args[0]
			args = args[1:]
		}
	}

	handler, exists := subcommands()[cfg.SubCmd]
	if !exists {
		return cfg, fmt.Errorf("%w: %s", errUnknownSubcommand, cfg.SubCmd)
	}

	if err := handler.Parse(args, cfg); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			cfg.Help = true

			return cfg, nil
		}

		return cfg, err
	}

	return cfg, nil
}

// formValues returns the collect flags that were set, keyed by form field.
func (c *CmdConfig) formValues() map[string]string {
	values := make(map[string]string)

	for field, value := range map[string]string{
		models.FieldUserName:   c.UserName,
		models.FieldDepartment: c.Department,
		models.FieldPhone:      c.Phone,
		models.FieldDeviceType: c.DeviceType,
		models.FieldLocation:   c.Location,
		models.FieldPurpose:    c.Purpose,
	} {
		if value != "" {
			values[field] = value
		}
	}

	return values
}

// Interactive reports whether the command opens the terminal form.
func (c *CmdConfig) Interactive() bool {
	return c.SubCmd == subCmdCollect && !c.NonInteractive && len(c.formValues()) == 0
}
