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
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/carverauto/devicecollector/pkg/models"
)

const htmlReport = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Device Collection Report</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
.stats { display: flex; gap: 2rem; margin-bottom: 1.5rem; }
.stat strong { display: block; font-size: 1.6rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: left; }
th { background: #f3f3f3; }
</style>
</head>
<body>
<h1>Device Collection Report</h1>
<p>Generated {{.Generated}}</p>
<div class="stats">
  <div class="stat"><strong>{{.Summary.TotalCount}}</strong>Records</div>
  <div class="stat"><strong>{{.Summary.UniqueDepartmentCount}}</strong>Departments</div>
  <div class="stat"><strong>{{.Summary.UniqueDeviceTypeCount}}</strong>Device types</div>
</div>
{{- if .DeviceTypes}}
<h2>Device types</h2>
<ul>
{{- range .DeviceTypes}}
  <li>{{.Label}}: {{.Count}}</li>
{{- end}}
</ul>
{{- end}}
<table>
<thead>
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{- range .Rows}}
<tr>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{- else}}
<tr><td colspan="{{len .Columns}}">No records</td></tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`

var htmlTemplate = template.Must(template.New("report").Parse(htmlReport))

type htmlData struct {
	Generated   string
	Summary     models.Summary
	DeviceTypes []Count
	Columns     []string
	Rows        []Row
}

// WriteHTML renders a standalone HTML report. All record text is escaped
// by html/template.
func WriteHTML(w io.Writer, records []models.Record, summary models.Summary, now time.Time, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}

	data := htmlData{
		Generated:   now.In(loc).Format(DisplayTimeLayout),
		Summary:     summary,
		DeviceTypes: SortCounts(summary.DeviceTypeHistogram),
		Columns:     Columns,
		Rows:        Rows(records, loc),
	}

	if err := htmlTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("%w: %w", errRenderHTML, err)
	}

	return nil
}
