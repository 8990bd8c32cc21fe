package domain

import "time"

// Preferences are a sales rep's profile and notification settings
type Preferences struct {
	UserID   string
	FullName string
	Email    string
	Phone    string
	Title    string

	EmailNotifications bool
	VisitReminders     bool
	WeeklyReports      bool
	NewLeadAlerts      bool

	UpdatedAt time.Time
}

// DefaultPreferences returns the settings used before a user saves any
func DefaultPreferences(userID string) *Preferences {
	return &Preferences{
		UserID:             userID,
		EmailNotifications: true,
		VisitReminders:     true,
		WeeklyReports:      false,
		NewLeadAlerts:      true,
	}
}
