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

package models

// UnknownIP is stored as the IP address when no lookup service answered.
const UnknownIP = "unknown"

// Form field names accepted at the collection boundary.
const (
	FieldUserName   = "userName"
	FieldDepartment = "department"
	FieldPhone      = "phone"
	FieldDeviceType = "deviceType"
	FieldLocation   = "location"
	FieldPurpose    = "purpose"
)

// Record is one submitted device-collection entry. Records are never
// mutated after creation; the JSON names match the exported payload.
type Record struct {
	UserName         string `json:"userName"`
	Department       string `json:"department"`
	Phone            string `json:"phone"`
	DeviceType       string `json:"deviceType"`
	Location         string `json:"location"`
	Purpose          string `json:"purpose"`
	IPAddress        string `json:"ipAddress"`
	DeviceID         string `json:"deviceId"`
	ScreenResolution string `json:"screenResolution"`
	ColorDepth       string `json:"colorDepth"`
	Browser          string `json:"browser"`
	Timestamp        string `json:"timestamp"`
	UserAgent        string `json:"userAgent"`
	Platform         string `json:"platform"`
}

// FormInput is the validated, typed form submission.
type FormInput struct {
	UserName   string
	Department string
	Phone      string
	DeviceType string
	Location   string
	Purpose    string
}

// DeviceInfo is the environment snapshot collected before a submission.
type DeviceInfo struct {
	IPAddress        string `json:"ipAddress"`
	DeviceID         string `json:"deviceId"`
	ScreenResolution string `json:"screenResolution"`
	ColorDepth       string `json:"colorDepth"`
	Browser          string `json:"browser"`
	UserAgent        string `json:"userAgent"`
	Platform         string `json:"platform"`
}

// Summary holds the aggregate counts shown on the report view.
type Summary struct {
	TotalCount            int            `json:"totalCount"`
	UniqueDepartmentCount int            `json:"uniqueDepartmentCount"`
	UniqueDeviceTypeCount int            `json:"uniqueDeviceTypeCount"`
	DeviceTypeHistogram   map[string]int `json:"deviceTypeHistogram"`
	DepartmentHistogram   map[string]int `json:"departmentHistogram"`
}
