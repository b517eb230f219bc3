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

package report

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/carverauto/devicecollector/pkg/models"
)

const (
	// DisplayTimeLayout matches the numeric date style of the report view.
	DisplayTimeLayout = "2006/1/2 15:04:05"
	// InvalidDate is shown for timestamps that cannot be parsed.
	InvalidDate = "Invalid Date"
)

// Row is one display-ready table row. Every string is safe to print to a
// terminal.
type Row struct {
	Index      int
	UserName   string
	Department string
	IPAddress  string
	DeviceID   string
	DeviceType string
	Phone      string
	Location   string
	Time       string
}

// Columns lists the table headers in Row field order.
var Columns = []string{"#", "User", "Department", "IP Address", "Device ID", "Device Type", "Phone", "Location", "Time"}

// Cells returns the row as strings in Columns order.
func (r Row) Cells() []string {
	return []string{
		strconv.Itoa(r.Index),
		r.UserName,
		r.Department,
		r.IPAddress,
		r.DeviceID,
		r.DeviceType,
		r.Phone,
		r.Location,
		r.Time,
	}
}

// Rows builds table rows in storage order, numbered from 1.
func Rows(records []models.Record, loc *time.Location) []Row {
	if loc == nil {
		loc = time.Local
	}

	rows := make([]Row, 0, len(records))

	for i := range records {
		rec := &records[i]

		rows = append(rows, Row{
			Index:      i + 1,
			UserName:   SanitizeText(rec.UserName),
			Department: SanitizeText(rec.Department),
			IPAddress:  SanitizeText(rec.IPAddress),
			DeviceID:   SanitizeText(rec.DeviceID),
			DeviceType: SanitizeText(rec.DeviceType),
			Phone:      SanitizeText(rec.Phone),
			Location:   SanitizeText(rec.Location),
			Time:       FormatTimestamp(rec.Timestamp, loc),
		})
	}

	return rows
}

// FormatTimestamp renders an RFC 3339 timestamp in loc.
func FormatTimestamp(timestamp string, loc *time.Location) string {
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return InvalidDate
	}

	return t.In(loc).Format(DisplayTimeLayout)
}

// SanitizeText replaces control and bidi-override characters with visible
// Go-style escapes so stored text cannot drive the terminal. Invalid UTF-8
// bytes are escaped as \xNN.
func SanitizeText(s string) string {
	if isPrintable(s) {
		return s
	}

	var b strings.Builder

	b.Grow(len(s) + 8)

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])

		switch {
		case r == utf8.RuneError && size == 1:
			b.WriteString(`\x`)
			b.WriteString(strconv.FormatUint(uint64(s[i])|0x100, 16)[1:])
		case needsEscape(r):
			quoted := strconv.QuoteRuneToASCII(r)
			b.WriteString(quoted[1 : len(quoted)-1])
		default:
			b.WriteRune(r)
		}

		i += size
	}

	return b.String()
}

func isPrintable(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}

	for _, r := range s {
		if needsEscape(r) {
			return false
		}
	}

	return true
}

func needsEscape(r rune) bool {
	return unicode.IsControl(r) || unicode.Is(unicode.Bidi_Control, r)
}
