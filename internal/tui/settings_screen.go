package tui

import (
	"context"
	"fmt"

	"github.com/andy/salesdesk/internal/app"
	"github.com/andy/salesdesk/internal/domain"
	"github.com/andy/salesdesk/internal/service"
	"github.com/andy/salesdesk/internal/validation"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
)

var profileFormFields = []fieldSpec{
	{name: validation.FieldFullName, label: "Full name:", placeholder: "Jane Doe", limit: 100, width: 40},
	{name: validation.FieldEmail, label: "Email:", placeholder: "jane@example.com", limit: 254, width: 40},
	{name: validation.FieldPhone, label: "Phone:", placeholder: "(555) 123-4567", limit: 30, width: 20},
	{name: validation.FieldTitle, label: "Title:", placeholder: "Account Executive", limit: 100, width: 40},
}

type toggle struct {
	label string
	get   func(p *domain.Preferences) *bool
}

var notificationToggles = []toggle{
	{"Email notifications", func(p *domain.Preferences) *bool { return &p.EmailNotifications }},
	{"Visit reminders", func(p *domain.Preferences) *bool { return &p.VisitReminders }},
	{"Weekly reports", func(p *domain.Preferences) *bool { return &p.WeeklyReports }},
	{"New lead alerts", func(p *domain.Preferences) *bool { return &p.NewLeadAlerts }},
}

type prefsLoadedMsg struct {
	prefs *domain.Preferences
	err   error
}

type prefsSavedMsg struct {
	prefs *domain.Preferences
	err   error
}

// SettingsModel edits the current user's profile and notification
// preferences. They are loaded when the screen opens and saved on submit.
type SettingsModel struct {
	app       *app.App
	mode      settingsMode
	prefs     *domain.Preferences
	draft     *domain.Preferences // toggles being edited
	form      *fieldForm
	row       int // focus across profile fields then toggles
	loading   bool
	err       error
	statusMsg string
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) *SettingsModel {
	return &SettingsModel{
		app:     a,
		mode:    settingsModeView,
		loading: true,
	}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit
}

func (m *SettingsModel) Init() tea.Cmd {
	return m.loadPrefs()
}

func (m *SettingsModel) loadPrefs() tea.Cmd {
	return func() tea.Msg {
		p, err := m.app.PreferencesService.Load(context.Background())
		return prefsLoadedMsg{prefs: p, err: err}
	}
}

func (m *SettingsModel) rows() int {
	return len(profileFormFields) + len(notificationToggles)
}

func (m *SettingsModel) openForm() tea.Cmd {
	draft := *m.prefs
	m.draft = &draft
	m.form = newFieldForm(validation.ProfileSchema(), profileFormFields, service.ProfileValues(m.prefs))
	m.mode = settingsModeEdit
	m.statusMsg = ""
	m.err = nil
	return m.focusRow(0)
}

func (m *SettingsModel) focusRow(row int) tea.Cmd {
	m.row = row
	if row < m.form.len() {
		return m.form.setFocus(row)
	}
	return m.form.setFocus(-1)
}

func (m *SettingsModel) savePrefs() tea.Cmd {
	if !m.form.validate() {
		return nil
	}

	prefs := *m.draft
	prefs.FullName = m.form.value(validation.FieldFullName)
	prefs.Email = m.form.value(validation.FieldEmail)
	prefs.Phone = m.form.value(validation.FieldPhone)
	prefs.Title = m.form.value(validation.FieldTitle)

	return func() tea.Msg {
		err := m.app.PreferencesService.Save(context.Background(), &prefs)
		return prefsSavedMsg{prefs: &prefs, err: err}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case prefsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.prefs = msg.prefs
		}
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.prefs = msg.prefs
		m.mode = settingsModeView
		m.form = nil
		m.draft = nil
		m.statusMsg = "Preferences saved"
		return m, nil

	case RefreshDataMsg:
		if m.mode == settingsModeView {
			m.loading = true
			return m, m.loadPrefs()
		}
		return m, nil
	}

	if m.mode == settingsModeEdit {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" && m.prefs != nil {
		return m, m.openForm()
	}
	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.mode = settingsModeView
			m.form = nil
			m.draft = nil
			m.err = nil
			return m, nil

		case "tab", "down":
			return m, m.focusRow((m.row + 1) % m.rows())

		case "shift+tab", "up":
			return m, m.focusRow((m.row - 1 + m.rows()) % m.rows())

		case "ctrl+s":
			return m, m.savePrefs()

		case "enter":
			if m.row == m.rows()-1 {
				return m, m.savePrefs()
			}
			return m, m.focusRow(m.row + 1)

		case " ":
			if m.row >= m.form.len() {
				v := notificationToggles[m.row-m.form.len()].get(m.draft)
				*v = !*v
				return m, nil
			}
		}
	}

	return m, m.form.update(msg)
}

func (m *SettingsModel) View() string {
	if m.loading {
		return "Loading preferences..."
	}
	if m.mode == settingsModeEdit {
		return m.viewForm()
	}
	return m.viewSettings()
}

func (m *SettingsModel) viewSettings() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += statusStyle.Render("  "+m.statusMsg) + "\n\n"
	}

	if m.err != nil {
		return s + errorStyle.Render("  Error: "+service.UserMessage(m.err))
	}

	labelStyle := lipgloss.NewStyle().Bold(true).Width(22)
	valueStyle := lipgloss.NewStyle().Foreground(primaryColor)
	p := m.prefs

	s += subtitleStyle.Render("  Profile") + "\n\n"
	for _, row := range []struct{ label, value string }{
		{"Full name:", p.FullName},
		{"Email:", p.Email},
		{"Phone:", p.Phone},
		{"Title:", p.Title},
	} {
		value := row.value
		if value == "" {
			value = "-"
		}
		s += fmt.Sprintf("  %s %s\n", labelStyle.Render(row.label), valueStyle.Render(value))
	}

	s += "\n" + subtitleStyle.Render("  Notifications") + "\n\n"
	for _, t := range notificationToggles {
		s += fmt.Sprintf("  %s %s\n", checkbox(*t.get(p)), t.label)
	}

	s += "\n" + helpStyle.Render("  enter: edit preferences")
	return s
}

func (m *SettingsModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Preferences") + "\n\n"
	s += m.form.view()

	for i, t := range notificationToggles {
		row := m.form.len() + i
		indicator := "  "
		style := lipgloss.NewStyle()
		if row == m.row {
			indicator = "> "
			style = focusStyle
		}
		s += indicator + style.Render(fmt.Sprintf("%s %s", checkbox(*t.get(m.draft)), t.label)) + "\n"
	}
	s += "\n"

	if m.err != nil {
		s += errorStyle.Render("  "+service.UserMessage(m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate  space: toggle  ctrl+s: save  esc: cancel")
	return s
}
