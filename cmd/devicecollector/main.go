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

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/carverauto/devicecollector/pkg/cli"
	"github.com/carverauto/devicecollector/pkg/config"
	"github.com/carverauto/devicecollector/pkg/logger"
	"github.com/carverauto/devicecollector/pkg/version"
)

const (
	logFileName = "devicecollector.log"
	logDirPerms = 0o700
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, err := cli.ParseFlags(os.Args[1:])
	if err != nil {
		cli.ShowHelp()

		return err
	}

	if cmd.Help {
		cli.ShowHelp()

		return nil
	}

	if cmd.SubCmd == "version" {
		fmt.Println(version.Get())

		return nil
	}

	cfg := config.DefaultAppConfig()
	loader := config.NewConfig(nil)

	path := cmd.ConfigFile
	if path == "" {
		path = config.DefaultPath()

		loader.AllowMissingFile()
	}

	if err := loader.LoadAndValidate(ctx, path, cfg); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cmd.Interactive() {
		if err := redirectTerminalLogs(&cfg.Logging, path); err != nil {
			return err
		}
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	defer func() {
		if err := logger.Close(log); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log output: %v\n", err)
		}
	}()

	log.Debug().
		Str("version", version.GetFullVersion()).
		Str("subcommand", cmd.SubCmd).
		Str("config", path).
		Msg("Starting devicecollector")

	switch cmd.SubCmd {
	case "config":
		return cli.RunConfig(cfg, os.Stdout)
	case "device-id":
		return cli.RunDeviceID(ctx, cfg, cmd, os.Stdout, log)
	}

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		return err
	}

	defer func() {
		if err := app.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close storage")
		}
	}()

	err = dispatch(ctx, app, cmd)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func dispatch(ctx context.Context, app *cli.App, cmd *cli.CmdConfig) error {
	switch cmd.SubCmd {
	case "report":
		return cli.RunReport(ctx, app, cmd, os.Stdout)
	case "export":
		return cli.RunExport(ctx, app, cmd, os.Stdout)
	default:
		return cli.RunCollect(ctx, app, cmd, os.Stdout)
	}
}

// redirectTerminalLogs moves terminal log output next to the config file so
// it does not draw over the form.
func redirectTerminalLogs(cfg *logger.Config, configPath string) error {
	switch cfg.Output {
	case "", "stdout", "stderr":
	default:
		return nil
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, logDirPerms); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	cfg.Output = filepath.Join(dir, logFileName)

	return nil
}
