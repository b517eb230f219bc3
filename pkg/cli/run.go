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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/carverauto/devicecollector/pkg/collector"
	"github.com/carverauto/devicecollector/pkg/config"
	"github.com/carverauto/devicecollector/pkg/fingerprint"
	"github.com/carverauto/devicecollector/pkg/geoip"
	"github.com/carverauto/devicecollector/pkg/logger"
	"github.com/carverauto/devicecollector/pkg/models"
	"github.com/carverauto/devicecollector/pkg/report"
)

const (
	defaultFilePerms = 0o600
	stdoutPath       = "-"
)

var isTerminal = func(fd uintptr) bool { return term.IsTerminal(int(fd)) }

// RunCollect submits one record, from flags or from the interactive form.
func RunCollect(ctx context.Context, app *App, cfg *CmdConfig, out io.Writer) error {
	if cfg.Interactive() {
		if !isTerminal(os.Stdin.Fd()) {
			return errNotTerminal
		}

		p := tea.NewProgram(newFormModel(ctx, app.Collector), tea.WithAltScreen(), tea.WithContext(ctx))
		_, err := p.Run()

		return err
	}

	values := cfg.formValues()
	if len(values) == 0 {
		return errNoFormValues
	}

	input, err := collector.ParseForm(values)
	if err != nil {
		return err
	}

	record, err := app.Collector.Submit(ctx, input)
	if err != nil {
		return err
	}

	ls := newLogStyles()

	fmt.Fprintln(out, ls.success.Render(msgSubmitted))
	fmt.Fprintf(out, "%s %s\n", ls.info.Render("Device ID:"), record.DeviceID)
	fmt.Fprintf(out, "%s %s\n", ls.info.Render("IP address:"), report.SanitizeText(record.IPAddress))
	fmt.Fprintf(out, "%s %s\n", ls.info.Render("Timestamp:"), record.Timestamp)

	return nil
}

// RunReport prints the summary and record table, redrawing on changes
// when -follow is set.
func RunReport(ctx context.Context, app *App, cfg *CmdConfig, out io.Writer) error {
	lookup, closeLookup, err := openGeoIP(cfg.GeoIPPath, app.Config.GeoIP.DatabasePath)
	if err != nil {
		return err
	}
	defer closeLookup()

	if !cfg.Follow {
		recs, err := app.Records.LoadAll(ctx)
		if err != nil {
			return err
		}

		return emitReport(out, cfg, recs, lookup)
	}

	updates, err := app.Records.Watch(ctx)
	if err != nil {
		return err
	}

	clearScreen := func() {}
	if f, ok := out.(*os.File); ok && isTerminal(f.Fd()) {
		clearScreen = termenv.NewOutput(out).ClearScreen
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case recs, ok := <-updates:
			if !ok {
				return nil
			}

			clearScreen()

			if err := emitReport(out, cfg, recs, lookup); err != nil {
				return err
			}
		}
	}
}

func emitReport(out io.Writer, cfg *CmdConfig, recs []models.Record, lookup geoip.Lookup) error {
	var countries map[string]int
	if lookup != nil {
		countries = report.CountryBreakdown(recs, lookup)
	}

	renderReport(out, recs, countries, time.Local)

	if cfg.HTMLOut == "" {
		return nil
	}

	return writeHTMLReport(cfg.HTMLOut, recs)
}

func openGeoIP(paths ...string) (geoip.Lookup, func(), error) {
	for _, path := range paths {
		if path == "" {
			continue
		}

		lookup, err := geoip.OpenMaxMind(path)
		if err != nil {
			return nil, func() {}, fmt.Errorf("%w: %w", errGeoIP, err)
		}

		return lookup, func() { _ = lookup.Close() }, nil
	}

	return nil, func() {}, nil
}

func renderReport(out io.Writer, recs []models.Record, countries map[string]int, loc *time.Location) {
	s := newStyles()
	summary := report.Summarize(recs)

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		s.panel.Render(fmt.Sprintf("%s\n%s", s.value.Render(fmt.Sprint(summary.TotalCount)), "Records")),
		s.panel.Render(fmt.Sprintf("%s\n%s", s.value.Render(fmt.Sprint(summary.UniqueDepartmentCount)), "Departments")),
		s.panel.Render(fmt.Sprintf("%s\n%s", s.value.Render(fmt.Sprint(summary.UniqueDeviceTypeCount)), "Device types")),
	)

	fmt.Fprintln(out, s.title.Render("Device Collection Report"))
	fmt.Fprintln(out, stats)

	if len(summary.DeviceTypeHistogram) > 0 {
		fmt.Fprintln(out, s.focusedLabel.Render("Device types"))
		writeCounts(out, s, report.SortCounts(summary.DeviceTypeHistogram))
	}

	if len(countries) > 0 {
		fmt.Fprintln(out, s.focusedLabel.Render("Countries"))
		writeCounts(out, s, report.SortCounts(countries))
	}

	rows := report.Rows(recs, loc)
	if len(rows) == 0 {
		fmt.Fprintln(out, s.help.Render("No records"))

		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(draculaPurple))).
		Headers(report.Columns...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}

			return s.cell
		})

	for _, row := range rows {
		t.Row(row.Cells()...)
	}

	fmt.Fprintln(out, t.Render())
}

func writeCounts(out io.Writer, s styles, counts []report.Count) {
	for _, c := range counts {
		fmt.Fprintf(out, "  %s %s\n", s.label.Render(report.SanitizeText(c.Label)+":"), s.value.Render(fmt.Sprint(c.Count)))
	}
}

func writeHTMLReport(path string, recs []models.Record) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, defaultFilePerms)
	if err != nil {
		return fmt.Errorf("%w: %w", errWriteHTML, err)
	}

	if err := report.WriteHTML(f, recs, report.Summarize(recs), time.Now(), time.Local); err != nil {
		_ = f.Close()

		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", errWriteHTML, err)
	}

	return nil
}

// RunExport writes the JSON export artifact. The destination defaults to
// the configured export directory.
func RunExport(ctx context.Context, app *App, cfg *CmdConfig, out io.Writer) error {
	recs, err := app.Records.LoadAll(ctx)
	if err != nil {
		return err
	}

	artifact, err := report.Export(recs, time.Now())
	if err != nil {
		return err
	}

	dest := cfg.OutPath
	if dest == "" {
		dest = app.Config.Export.Dir
	}

	if dest == stdoutPath {
		_, err := out.Write(append(artifact.Data, '\n'))

		return err
	}

	path := exportPath(dest, artifact.Filename)

	if err := os.WriteFile(path, artifact.Data, defaultFilePerms); err != nil {
		return fmt.Errorf("%w: %w", errWriteArtifact, err)
	}

	app.Logger.Info().Str("path", path).Int("records", len(recs)).Msg("Exported records")

	ls := newLogStyles()
	if len(recs) == 0 {
		fmt.Fprintln(out, ls.warning.Render("No records stored, exported an empty list"))
	}

	fmt.Fprintf(out, "%s %s (%d records)\n", ls.success.Render("Exported"), path, len(recs))

	return nil
}

// exportPath places filename inside dest when dest is a directory.
func exportPath(dest, filename string) string {
	if strings.HasSuffix(dest, string(os.PathSeparator)) {
		return filepath.Join(dest, filename)
	}

	info, err := os.Stat(dest)
	if err == nil && info.IsDir() {
		return filepath.Join(dest, filename)
	}

	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return filepath.Join(dest, filename)
	}

	return dest
}

// RunDeviceID prints the fingerprint of this host without opening storage.
func RunDeviceID(ctx context.Context, appCfg *config.AppConfig, cfg *CmdConfig, out io.Writer, log logger.Logger) error {
	overrides := appCfg.Environment
	if overrides.CookieEnabled == nil {
		persistent := appCfg.Storage.Persistent()
		overrides.CookieEnabled = &persistent
	}

	id := fingerprint.GenerateDeviceID(fingerprint.DetectHost(ctx, overrides, logger.ForComponent(log, "fingerprint")))

	fmt.Fprintln(out, id)

	if !cfg.Copy {
		return nil
	}

	if clipboard.Unsupported {
		return errClipboard
	}

	if err := writeClipboard(id); err != nil {
		return fmt.Errorf("%w: %w", errClipboard, err)
	}

	return nil
}

// RunConfig prints the effective configuration with secrets removed.
func RunConfig(appCfg *config.AppConfig, out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(appCfg.Redacted())
}
