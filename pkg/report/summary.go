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

// Package report aggregates stored device records into summaries, table
// rows and export artifacts.
package report

import (
	"sort"

	"github.com/carverauto/devicecollector/pkg/models"
)

// Summarize counts records, distinct departments and device types.
// Values are compared exactly; "Laptop" and "laptop" are different types.
func Summarize(records []models.Record) models.Summary {
	summary := models.Summary{
		TotalCount:          len(records),
		DeviceTypeHistogram: make(map[string]int),
		DepartmentHistogram: make(map[string]int),
	}

	for i := range records {
		summary.DeviceTypeHistogram[records[i].DeviceType]++
		summary.DepartmentHistogram[records[i].Department]++
	}

	summary.UniqueDepartmentCount = len(summary.DepartmentHistogram)
	summary.UniqueDeviceTypeCount = len(summary.DeviceTypeHistogram)

	return summary
}

// Count is one histogram bucket.
type Count struct {
	Label string
	Count int
}

// SortCounts orders a histogram by descending count, then label.
func SortCounts(histogram map[string]int) []Count {
	counts := make([]Count, 0, len(histogram))
	for label, n := range histogram {
		counts = append(counts, Count{Label: label, Count: n})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}

		return counts[i].Label < counts[j].Label
	})

	return counts
}
