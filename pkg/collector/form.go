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

package collector

import (
	"fmt"
	"sort"
	"strings"

	"github.com/carverauto/devicecollector/pkg/models"
)

// RequiredFields are the form fields that must be non-blank.
var RequiredFields = []string{models.FieldUserName, models.FieldDepartment, models.FieldDeviceType}

// FormFields lists every accepted form field in display order.
var FormFields = []string{
	models.FieldUserName,
	models.FieldDepartment,
	models.FieldPhone,
	models.FieldDeviceType,
	models.FieldLocation,
	models.FieldPurpose,
}

// ParseForm converts raw form values into a FormInput. Values are trimmed.
func ParseForm(values map[string]string) (models.FormInput, error) {
	var (
		input   models.FormInput
		unknown []string
	)

	for key, value := range values {
		value = strings.TrimSpace(value)

		switch key {
		case models.FieldUserName:
			input.UserName = value
		case models.FieldDepartment:
			input.Department = value
		case models.FieldPhone:
			input.Phone = value
		case models.FieldDeviceType:
			input.DeviceType = value
		case models.FieldLocation:
			input.Location = value
		case models.FieldPurpose:
			input.Purpose = value
		default:
			unknown = append(unknown, key)
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)

		return models.FormInput{}, fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(unknown, ", "))
	}

	if err := Validate(input); err != nil {
		return models.FormInput{}, err
	}

	return input, nil
}

// Validate reports the required fields that are blank after trimming.
func Validate(input models.FormInput) error {
	var missing []string

	for _, field := range RequiredFields {
		if strings.TrimSpace(fieldValue(input, field)) == "" {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}

	return nil
}

// fieldValue returns the value of the named form field.
func fieldValue(input models.FormInput, field string) string {
	switch field {
	case models.FieldUserName:
		return input.UserName
	case models.FieldDepartment:
		return input.Department
	case models.FieldPhone:
		return input.Phone
	case models.FieldDeviceType:
		return input.DeviceType
	case models.FieldLocation:
		return input.Location
	case models.FieldPurpose:
		return input.Purpose
	default:
		return ""
	}
}
