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
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/carverauto/devicecollector/pkg/models"
)

const (
	exportContentType = "application/json"
	exportDateLayout  = "2006-01-02"
	exportIndent      = "  "
)

// Artifact is a downloadable export.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Export renders records as a pretty-printed JSON array named after the
// UTC date of now.
func Export(records []models.Record, now time.Time) (Artifact, error) {
	if records == nil {
		records = []models.Record{}
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", exportIndent)

	if err := enc.Encode(records); err != nil {
		return Artifact{}, fmt.Errorf("%w: %w", errEncodeExport, err)
	}

	return Artifact{
		Filename:    ExportFilename(now),
		ContentType: exportContentType,
		Data:        bytes.TrimRight(buf.Bytes(), "\n"),
	}, nil
}

func ExportFilename(now time.Time) string {
	return "device-data-" + now.UTC().Format(exportDateLayout) + ".json"
}

// ParseExport reads an artifact produced by Export.
func ParseExport(data []byte) ([]models.Record, error) {
	var records []models.Record

	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExport, err)
	}

	if records == nil {
		records = []models.Record{}
	}

	return records, nil
}
