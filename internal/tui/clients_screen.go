package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/andy/salesdesk/internal/app"
	"github.com/andy/salesdesk/internal/domain"
	"github.com/andy/salesdesk/internal/search"
	"github.com/andy/salesdesk/internal/service"
	"github.com/andy/salesdesk/internal/validation"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// clientMode represents the current screen mode
type clientMode int

const (
	clientModeList clientMode = iota
	clientModeSearch
	clientModeNew
	clientModeEdit
	clientModeDuplicate
)

var clientFormFields = []fieldSpec{
	{name: validation.FieldCompanyName, label: "Company name:", placeholder: "Acme Corp", limit: 100, width: 40},
	{name: validation.FieldContactPerson, label: "Contact person:", placeholder: "Jane Doe", limit: 100, width: 40},
	{name: validation.FieldEmail, label: "Email:", placeholder: "jane@example.com", limit: 254, width: 40},
	{name: validation.FieldPhone, label: "Phone:", placeholder: "(555) 123-4567", limit: 30, width: 20},
	{name: validation.FieldAddress, label: "Address:", placeholder: "Optional", limit: 255, width: 50},
	{name: validation.FieldIndustry, label: "Industry:", placeholder: "Optional", limit: 100, width: 30},
	{name: validation.FieldNotes, label: "Notes:", placeholder: "Optional notes", limit: 1000, width: 50},
}

// ClientsModel shows the client directory with search-as-you-type and
// create/edit forms
type ClientsModel struct {
	app       *app.App
	clients   []*domain.Client
	cursor    int
	loading   bool
	err       error
	statusMsg string
	selectID  string // cursor moves here after the next load

	// Search state
	searchInput textinput.Model
	session     *search.Session
	signal      chan struct{}
	results     []*domain.Client
	searching   bool
	lastGen     uint64
	searchErr   error

	// Form state
	mode          clientMode
	form          *fieldForm
	editing       *domain.Client // nil for a new client
	duplicate     *domain.Client // match offered in the duplicate prompt
	autoNewClient bool           // open new client form after data loads
}

type clientsDataMsg struct {
	clients []*domain.Client
	err     error
}

type clientSavedMsg struct {
	outcome service.Outcome
	client  *domain.Client
	err     error
}

// NewClientsModel creates a new clients screen model
func NewClientsModel(a *app.App) *ClientsModel {
	m := &ClientsModel{
		app:     a,
		loading: true,
		signal:  make(chan struct{}, 1),
	}

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "Search by company or contact"
	m.searchInput.Prompt = "/ "
	m.searchInput.CharLimit = 100
	m.searchInput.Width = 40

	signal := m.signal
	m.session = search.New(a.ClientService,
		search.WithDelay(a.Config.Search.Debounce()),
		search.WithLogger(a.Logger),
		search.WithNotify(func(search.Snapshot) {
			select {
			case signal <- struct{}{}:
			default:
			}
		}),
	)
	return m
}

// IsCapturingInput returns true while typing in the search box or a form
func (m *ClientsModel) IsCapturingInput() bool {
	return m.mode != clientModeList
}

// Close stops the search session
func (m *ClientsModel) Close() {
	m.session.Close()
}

func (m *ClientsModel) Init() tea.Cmd {
	return tea.Batch(m.loadClients(), m.waitForSearch())
}

func (m *ClientsModel) loadClients() tea.Cmd {
	return func() tea.Msg {
		clients, err := m.app.ClientService.List(context.Background(), 0)
		return clientsDataMsg{clients: clients, err: err}
	}
}

// waitForSearch blocks until the session reports a change, then reads
// its latest state. Signals coalesce, so a burst yields one message.
func (m *ClientsModel) waitForSearch() tea.Cmd {
	signal, session := m.signal, m.session
	return func() tea.Msg {
		<-signal
		return searchUpdatedMsg{snap: session.Snapshot()}
	}
}

func (m *ClientsModel) openForm(editing *domain.Client) tea.Cmd {
	initial := map[string]string{}
	if editing != nil {
		initial = service.ValuesFromClient(editing)
		m.mode = clientModeEdit
	} else {
		m.mode = clientModeNew
	}
	m.editing = editing
	m.duplicate = nil
	m.err = nil
	m.form = newFieldForm(validation.ClientSchema(), clientFormFields, initial)
	return m.form.setFocus(0)
}

func (m *ClientsModel) saveClient(opts service.CreateOptions) tea.Cmd {
	values := m.form.values()
	editing := m.editing
	return func() tea.Msg {
		ctx := context.Background()

		if editing != nil {
			c, err := m.app.ClientService.UpdateClient(ctx, editing.ID, values)
			return clientSavedMsg{outcome: service.OutcomeUpdated, client: c, err: err}
		}

		res, err := m.app.ClientService.Submit(ctx, values, opts)
		if res == nil {
			return clientSavedMsg{outcome: service.OutcomeFailed, err: err}
		}
		return clientSavedMsg{outcome: res.Outcome, client: res.Client, err: err}
	}
}

func (m *ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case OpenNewClientFormMsg:
		if m.loading {
			m.autoNewClient = true
			return m, nil
		}
		return m, m.openForm(nil)

	case searchUpdatedMsg:
		m.applySearch(msg.snap)
		return m, m.waitForSearch()

	case clientsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.clients = msg.clients
			m.moveCursorToSelected()
		}
		if m.autoNewClient {
			m.autoNewClient = false
			return m, m.openForm(nil)
		}
		return m, nil

	case clientSavedMsg:
		return m.handleSaved(msg)

	case RefreshDataMsg:
		if m.mode == clientModeList {
			m.loading = true
			return m, m.loadClients()
		}
		return m, nil
	}

	switch m.mode {
	case clientModeSearch:
		return m.updateSearch(msg)
	case clientModeNew, clientModeEdit:
		return m.updateForm(msg)
	case clientModeDuplicate:
		return m.updateDuplicate(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.loading {
		return m, nil
	}

	m.statusMsg = ""
	m.err = nil

	switch {
	case key.Matches(keyMsg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, DefaultKeyMap.Down):
		if m.cursor < len(m.clients)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, DefaultKeyMap.New):
		return m, m.openForm(nil)
	case key.Matches(keyMsg, DefaultKeyMap.Search):
		m.mode = clientModeSearch
		m.cursor = 0
		return m, m.searchInput.Focus()
	case key.Matches(keyMsg, DefaultKeyMap.Select):
		if m.cursor < len(m.clients) {
			return m, m.openForm(m.clients[m.cursor])
		}
	}

	return m, nil
}

// applySearch takes a session snapshot, ignoring any older than one
// already shown
func (m *ClientsModel) applySearch(snap search.Snapshot) {
	if snap.Generation < m.lastGen {
		return
	}
	m.lastGen = snap.Generation
	m.searching = snap.Loading
	m.searchErr = snap.Err
	if !snap.Loading {
		m.results = snap.Results
		if m.mode == clientModeSearch && m.cursor >= len(m.results) {
			m.cursor = max(0, len(m.results)-1)
		}
	}
}

func (m *ClientsModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.mode = clientModeList
			m.searchInput.Blur()
			m.searchInput.SetValue("")
			m.session.Update("")
			m.cursor = 0
			return m, nil
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			if m.cursor < len(m.results) {
				m.searchInput.Blur()
				return m, m.openForm(m.results[m.cursor])
			}
			return m, nil
		}
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if after := m.searchInput.Value(); after != before {
		m.cursor = 0
		m.session.Update(after)
	}
	return m, cmd
}

func (m *ClientsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.closeForm()
			return m, nil

		case "tab", "down":
			return m, m.form.setFocus((m.form.focus + 1) % m.form.len())

		case "shift+tab", "up":
			return m, m.form.setFocus((m.form.focus - 1 + m.form.len()) % m.form.len())

		case "enter":
			if m.form.focus == m.form.len()-1 {
				return m, m.submit()
			}
			return m, m.form.setFocus(m.form.focus + 1)

		case "ctrl+s":
			return m, m.submit()
		}
	}

	return m, m.form.update(msg)
}

// submit validates locally and blocks duplicates so the user can choose
func (m *ClientsModel) submit() tea.Cmd {
	m.err = nil
	if !m.form.validate() {
		return nil
	}
	return m.saveClient(service.CreateOptions{})
}

func (m *ClientsModel) updateDuplicate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "u":
		m.statusMsg = fmt.Sprintf("Using existing client: %s", m.duplicate.CompanyName)
		m.selectID = m.duplicate.ID
		m.closeForm()
		m.loading = true
		return m, m.loadClients()
	case "m":
		m.mode = clientModeNew
		return m, m.saveClient(service.CreateOptions{UpdateIfExists: true})
	case "esc":
		m.mode = clientModeNew
		m.duplicate = nil
		return m, m.form.setFocus(0)
	}
	return m, nil
}

func (m *ClientsModel) handleSaved(msg clientSavedMsg) (tea.Model, tea.Cmd) {
	var derr *service.DuplicateError
	switch {
	case msg.err != nil && errors.As(msg.err, &derr) && m.editing == nil:
		m.mode = clientModeDuplicate
		m.duplicate = derr.Existing
		return m, nil
	case msg.err != nil:
		m.err = msg.err
		return m, nil
	}

	switch msg.outcome {
	case service.OutcomeCreated:
		m.statusMsg = fmt.Sprintf("Created: %s", msg.client.CompanyName)
	case service.OutcomeUpdated:
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.client.CompanyName)
	case service.OutcomeReturned:
		m.statusMsg = fmt.Sprintf("Already exists: %s", msg.client.CompanyName)
	}
	if msg.client != nil {
		m.selectID = msg.client.ID
	}

	m.closeForm()
	m.loading = true
	return m, m.loadClients()
}

// closeForm returns to search mode if that is where the form was opened from
func (m *ClientsModel) closeForm() {
	m.form = nil
	m.editing = nil
	m.duplicate = nil
	m.err = nil
	if m.searchInput.Value() != "" {
		m.mode = clientModeSearch
		m.searchInput.Focus()
		m.session.Update(m.searchInput.Value())
		return
	}
	m.mode = clientModeList
}

func (m *ClientsModel) moveCursorToSelected() {
	if m.selectID != "" {
		for i, c := range m.clients {
			if c.ID == m.selectID {
				m.cursor = i
				break
			}
		}
		m.selectID = ""
	}
	if m.cursor >= len(m.clients) {
		m.cursor = max(0, len(m.clients)-1)
	}
}

func (m *ClientsModel) View() string {
	switch m.mode {
	case clientModeNew, clientModeEdit:
		return m.viewForm()
	case clientModeDuplicate:
		return m.viewDuplicate()
	case clientModeSearch:
		return m.viewSearch()
	}
	return m.viewList()
}

func (m *ClientsModel) viewForm() string {
	var s string

	if m.mode == clientModeNew {
		if len(m.clients) == 0 {
			s += titleStyle.Render("Welcome to salesdesk!") + "\n"
			s += subtitleStyle.Render("  Add your first client to get started.") + "\n\n"
		} else {
			s += titleStyle.Render("New Client") + "\n\n"
		}
	} else {
		s += titleStyle.Render("Edit Client") + "\n\n"
	}

	s += m.form.view()

	if m.err != nil {
		s += errorStyle.Render("  "+service.UserMessage(m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")
	return s
}

func (m *ClientsModel) viewDuplicate() string {
	var s string
	s += titleStyle.Render("Possible Duplicate") + "\n\n"
	s += warningStyle.Render(fmt.Sprintf("  A client named %q already exists.", m.duplicate.CompanyName)) + "\n\n"
	s += renderClientRow(m.duplicate, true) + "\n\n"
	s += helpStyle.Render("  u: use existing  m: merge new details into it  esc: keep editing")
	return s
}

func (m *ClientsModel) viewSearch() string {
	var s string
	s += titleStyle.Render("Search Clients") + "\n\n"
	s += "  " + m.searchInput.View() + "\n\n"

	switch {
	case m.searching:
		s += subtitleStyle.Render("  Searching...") + "\n"
	case m.searchErr != nil:
		s += errorStyle.Render("  Search failed: "+service.UserMessage(m.searchErr)) + "\n"
	case m.searchInput.Value() == "":
		s += subtitleStyle.Render("  Start typing to search") + "\n"
	case len(m.results) == 0:
		s += subtitleStyle.Render("  No matching clients") + "\n"
	default:
		for i, c := range m.results {
			s += renderClientRow(c, i == m.cursor) + "\n"
		}
	}

	if m.statusMsg != "" {
		s += "\n" + statusStyle.Render("  "+m.statusMsg) + "\n"
	}

	s += "\n" + helpStyle.Render("  ↑/↓: navigate  enter: open  esc: close search")
	return s
}

func (m *ClientsModel) viewList() string {
	if m.loading {
		return "Loading clients..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %s", service.UserMessage(m.err)))
	}

	var s string
	s += titleStyle.Render("Clients") + subtitleStyle.Render("  "+plural(len(m.clients), "client")) + "\n\n"

	if m.statusMsg != "" {
		s += statusStyle.Render("  "+m.statusMsg) + "\n\n"
	}

	if len(m.clients) == 0 {
		s += subtitleStyle.Render("  No clients yet. Press 'n' to add one.") + "\n"
		return s
	}

	for i, c := range m.clients {
		s += renderClientRow(c, i == m.cursor) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  /: search  n: new  enter: edit")
	return s
}

func renderClientRow(c *domain.Client, selected bool) string {
	indicator := "  "
	nameStyle := lipgloss.NewStyle()
	if selected {
		indicator = "> "
		nameStyle = focusStyle
	}

	line1 := indicator + c.CompanyName
	if c.Industry != "" {
		line1 += subtitleStyle.Render("  · " + truncateStr(c.Industry, 20))
	}

	details := c.ContactPerson
	if c.Email != "" {
		if details != "" {
			details += "  "
		}
		details += c.Email
	}
	if details == "" {
		details = truncateStr(c.Notes, 50)
	}

	result := nameStyle.Render(line1)
	if details != "" {
		result += "\n" + subtitleStyle.Render("    "+details)
	}
	return result
}
