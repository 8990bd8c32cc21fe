package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/andy/salesdesk/internal/app"
	"github.com/andy/salesdesk/internal/domain"
	"github.com/andy/salesdesk/internal/repository"
	"github.com/andy/salesdesk/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardRecentClients = 5
	dashboardRecentLogs    = 5
	dashboardIndustries    = 5
)

// DashboardModel represents the dashboard home screen
type DashboardModel struct {
	app *app.App

	stats         *repository.ClientStats
	recentClients []*domain.Client
	recentLogs    []*domain.NotificationLog
	loadedAt      time.Time

	loading bool
	err     error
}

type dashboardDataMsg struct {
	stats         *repository.ClientStats
	recentClients []*domain.Client
	recentLogs    []*domain.NotificationLog
	err           error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(a *app.App) *DashboardModel {
	return &DashboardModel{
		app:     a,
		loading: true,
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *DashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		var msg dashboardDataMsg
		g, ctx := errgroup.WithContext(context.Background())

		g.Go(func() error {
			stats, err := m.app.ClientRepo.Stats(ctx, time.Now().AddDate(0, 0, -30))
			if err != nil {
				return fmt.Errorf("client stats: %w", err)
			}
			msg.stats = stats
			return nil
		})
		g.Go(func() error {
			clients, err := m.app.ClientService.List(ctx, dashboardRecentClients)
			if err != nil {
				return fmt.Errorf("recent clients: %w", err)
			}
			msg.recentClients = clients
			return nil
		})
		g.Go(func() error {
			logs, err := m.app.NotificationLogs.ListRecent(ctx, dashboardRecentLogs)
			if err != nil {
				return fmt.Errorf("notification log: %w", err)
			}
			msg.recentLogs = logs
			return nil
		})

		msg.err = g.Wait()
		return msg
	}
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.stats = msg.stats
		m.recentClients = msg.recentClients
		m.recentLogs = msg.recentLogs
		m.loadedAt = time.Now()
		return m, nil

	case RefreshDataMsg:
		m.loading = true
		return m, m.loadData()

	case tea.KeyMsg:
		if key.Matches(msg, DefaultKeyMap.New) {
			return m, tea.Sequence(
				func() tea.Msg { return SwitchScreenMsg{Screen: ScreenClients} },
				func() tea.Msg { return OpenNewClientFormMsg{} },
			)
		}
	}

	return m, nil
}

func (m *DashboardModel) View() string {
	if m.loading {
		return "Loading dashboard..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %s", service.UserMessage(m.err)))
	}

	var s string

	boxes := []string{
		statBox("Clients", m.stats.Total),
		statBox("Added (30 days)", m.stats.AddedSince),
		statBox("Industries", len(m.stats.Industries)),
	}
	s += lipgloss.JoinHorizontal(lipgloss.Top, boxes...) + "\n\n"

	s += m.renderIndustries() + "\n"
	s += m.renderRecentClients() + "\n"
	s += m.renderRecentLogs()

	s += "\n" + helpStyle.Render("  n: new client")
	return s
}

func statBox(label string, value int) string {
	return statBoxStyle.Render(fmt.Sprintf("%s\n%s",
		subtitleStyle.Render(label),
		statValueStyle.Render(fmt.Sprintf("%d", value)),
	))
}

func (m *DashboardModel) renderIndustries() string {
	s := "  Top Industries\n"
	if len(m.stats.Industries) == 0 {
		return s + subtitleStyle.Render("  No industries recorded") + "\n"
	}

	limit := min(dashboardIndustries, len(m.stats.Industries))
	for _, ic := range m.stats.Industries[:limit] {
		s += fmt.Sprintf("  %-24s %s\n", truncateStr(ic.Industry, 24), plural(ic.Count, "client"))
	}
	return s
}

func (m *DashboardModel) renderRecentClients() string {
	s := "  Recently Added\n"
	if len(m.recentClients) == 0 {
		return s + subtitleStyle.Render("  No clients yet. Press 'n' to add one.") + "\n"
	}

	for _, c := range m.recentClients {
		s += fmt.Sprintf("  %-10s %-30s %s\n",
			relativeDay(c.CreatedAt, m.loadedAt),
			truncateStr(c.CompanyName, 30),
			subtitleStyle.Render(truncateStr(c.ContactPerson, 24)),
		)
	}
	return s
}

func (m *DashboardModel) renderRecentLogs() string {
	s := "  Recent Notifications\n"
	if len(m.recentLogs) == 0 {
		return s + subtitleStyle.Render("  None sent yet") + "\n"
	}

	for _, l := range m.recentLogs {
		status := statusStyle.Render("sent")
		if l.Status == domain.NotificationFailed {
			status = errorStyle.Render("failed")
		}
		s += fmt.Sprintf("  %-10s %-24s %-10s %s\n",
			relativeDay(l.CreatedAt, m.loadedAt),
			truncateStr(l.CompanyName, 24),
			truncateStr(l.VisitType, 10),
			status,
		)
	}
	return s
}
