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
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/carverauto/devicecollector/pkg/collector"
	"github.com/carverauto/devicecollector/pkg/models"
	"github.com/carverauto/devicecollector/pkg/report"
)

const (
	msgSubmitted      = "Information submitted successfully!"
	msgSubmitFailed   = "Submission failed, please try again"
	msgRequiredFields = "Please fill in all required fields"
	msgDetecting      = "Detecting..."
)

var writeClipboard = clipboard.WriteAll

// deviceCollector is the part of collector.Collector the form drives.
type deviceCollector interface {
	Snapshot(ctx context.Context) models.DeviceInfo
	Submit(ctx context.Context, input models.FormInput) (models.Record, error)
}

type formField struct {
	key         string
	label       string
	placeholder string
	required    bool
}

var formFields = []formField{
	{key: models.FieldUserName, label: "Name", placeholder: "Zhang San", required: true},
	{key: models.FieldDepartment, label: "Department", placeholder: "IT", required: true},
	{key: models.FieldPhone, label: "Phone", placeholder: "optional"},
	{key: models.FieldDeviceType, label: "Device type", placeholder: "Laptop", required: true},
	{key: models.FieldLocation, label: "Location", placeholder: "optional"},
	{key: models.FieldPurpose, label: "Purpose", placeholder: "optional"},
}

type snapshotMsg struct {
	info models.DeviceInfo
}

type submitResultMsg struct {
	record models.Record
	err    error
}

type formModel struct {
	ctx         context.Context
	collector   deviceCollector
	inputs      []textinput.Model
	focused     int
	info        *models.DeviceInfo
	submitting  bool
	status      string
	err         error
	canCopy     bool
	copyMessage string
	styles      styles
}

func newFormModel(ctx context.Context, c deviceCollector) *formModel {
	inputs := make([]textinput.Model, len(formFields))

	for i, field := range formFields {
		ti := textinput.New()
		ti.Placeholder = field.placeholder
		ti.Width = inputWidth
		ti.CharLimit = 256
		ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaCyan))
		ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaForeground))
		ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaComment))
		inputs[i] = ti
	}

	inputs[0].Focus()

	return &formModel{
		ctx:       ctx,
		collector: c,
		inputs:    inputs,
		canCopy:   !clipboard.Unsupported,
		styles:    newStyles(),
	}
}

func (m *formModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadSnapshot())
}

func (m *formModel) loadSnapshot() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{info: m.collector.Snapshot(m.ctx)}
	}
}

func (m *formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.info = &msg.info

		return m, nil
	case submitResultMsg:
		return m.handleSubmitResult(msg)
	case tea.KeyMsg:
		if model, cmd, handled := m.handleKeyMsg(msg); handled {
			return model, cmd
		}
	}

	var cmd tea.Cmd

	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)

	return m, cmd
}

func (m *formModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	//nolint:exhaustive // Default case handles all unlisted keys
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit, true
	case tea.KeyTab, tea.KeyDown:
		return m, m.focus(m.focused + 1), true
	case tea.KeyShiftTab, tea.KeyUp:
		return m, m.focus(m.focused - 1), true
	case tea.KeyEnter:
		if m.focused < len(m.inputs)-1 {
			return m, m.focus(m.focused + 1), true
		}

		model, cmd := m.submit()

		return model, cmd, true
	case tea.KeyCtrlS:
		model, cmd := m.submit()

		return model, cmd, true
	case tea.KeyCtrlY:
		m.copyDeviceID()

		return m, nil, true
	default:
		return m, nil, false
	}
}

func (m *formModel) focus(index int) tea.Cmd {
	n := len(m.inputs)
	index = ((index % n) + n) % n

	m.inputs[m.focused].Blur()
	m.focused = index

	return m.inputs[m.focused].Focus()
}

func (m *formModel) input() models.FormInput {
	value := func(i int) string {
		return strings.TrimSpace(m.inputs[i].Value())
	}

	return models.FormInput{
		UserName:   value(0),
		Department: value(1),
		Phone:      value(2),
		DeviceType: value(3),
		Location:   value(4),
		Purpose:    value(5),
	}
}

func (m *formModel) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	input := m.input()

	var validationErr *collector.ValidationError
	if err := collector.Validate(input); errors.As(err, &validationErr) {
		m.err = errors.New(msgRequiredFields)
		m.status = ""

		return m, m.focus(m.fieldIndex(validationErr.Fields[0]))
	}

	m.submitting = true
	m.err = nil
	m.status = "Submitting..."

	return m, func() tea.Msg {
		record, err := m.collector.Submit(m.ctx, input)

		return submitResultMsg{record: record, err: err}
	}
}

func (m *formModel) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	m.submitting = false

	if msg.err != nil {
		var validationErr *collector.ValidationError
		if errors.As(msg.err, &validationErr) {
			m.err = errors.New(msgRequiredFields)
		} else {
			m.err = errors.New(msgSubmitFailed)
		}

		m.status = ""

		return m, nil
	}

	m.err = nil
	m.status = msgSubmitted

	for i := range m.inputs {
		m.inputs[i].Reset()
	}

	return m, m.focus(0)
}

func (m *formModel) fieldIndex(key string) int {
	for i, field := range formFields {
		if field.key == key {
			return i
		}
	}

	return 0
}

func (m *formModel) copyDeviceID() {
	if !m.canCopy || m.info == nil {
		m.copyMessage = "Clipboard not available"

		return
	}

	if err := writeClipboard(m.info.DeviceID); err != nil {
		m.copyMessage = "Failed to copy to clipboard"
	} else {
		m.copyMessage = "Device ID copied to clipboard!"
	}
}

func (m *formModel) View() string {
	var content strings.Builder

	content.WriteString(m.styles.title.Render("Device Information Collection"))
	content.WriteString("\n\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderInputs(), "  ", m.renderDeviceInfo())
	content.WriteString(body)
	content.WriteString("\n\n")

	switch {
	case m.err != nil:
		content.WriteString(m.styles.error.Render(m.err.Error()))
	case m.status != "":
		content.WriteString(m.styles.success.Render(m.status))
	}

	if m.copyMessage != "" {
		content.WriteString("\n")

		style := m.styles.success
		if !strings.HasSuffix(m.copyMessage, "!") {
			style = m.styles.error
		}

		content.WriteString(style.Render(m.copyMessage))
	}

	content.WriteString("\n")
	content.WriteString(m.styles.help.Render(
		"Tab/↓ next | Shift+Tab/↑ previous | Enter on last field or Ctrl+S submit | Ctrl+Y copy device ID | Esc quit"))

	return m.styles.app.Align(lipgloss.Left).Render(content.String())
}

func (m *formModel) renderInputs() string {
	var b strings.Builder

	for i, field := range formFields {
		style := m.styles.label
		if i == m.focused {
			style = m.styles.focusedLabel
		}

		b.WriteString(style.Render(field.label))

		if field.required {
			b.WriteString(m.styles.hint.Render(" *"))
		}

		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	return b.String()
}

func (m *formModel) renderDeviceInfo() string {
	rows := [][2]string{
		{"IP address", msgDetecting},
		{"Device ID", msgDetecting},
		{"Screen", msgDetecting},
		{"Browser", msgDetecting},
		{"Platform", msgDetecting},
	}

	if m.info != nil {
		rows[0][1] = m.info.IPAddress
		rows[1][1] = m.info.DeviceID
		rows[2][1] = fmt.Sprintf("%s (%s)", m.info.ScreenResolution, m.info.ColorDepth)
		rows[3][1] = m.info.Browser
		rows[4][1] = m.info.Platform
	}

	var b strings.Builder

	b.WriteString(m.styles.focusedLabel.Render("This device"))

	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(m.styles.label.Render(row[0] + ": "))
		b.WriteString(m.styles.value.Render(report.SanitizeText(row[1])))
	}

	return m.styles.panel.Render(b.String())
}
