package tui

import "github.com/andy/salesdesk/internal/search"

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// OpenNewClientFormMsg tells the clients screen to open the new client form
type OpenNewClientFormMsg struct{}

// firstRunCheckMsg reports whether the database has any clients
type firstRunCheckMsg struct {
	hasClients bool
}

// searchUpdatedMsg carries the latest search session state
type searchUpdatedMsg struct {
	snap search.Snapshot
}
