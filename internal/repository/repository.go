package repository

import (
	"context"
	"time"

	"github.com/andy/salesdesk/internal/domain"
)

// SearchLimit caps search-as-you-type results
const SearchLimit = 10

// ClientRepository is the client directory
type ClientRepository interface {
	// Search matches company name or contact person, case-insensitive, newest first.
	// A blank term returns no results without querying.
	Search(ctx context.Context, term string) ([]*domain.Client, error)
	// FindByName returns the first client whose normalized name equals name's, or nil
	FindByName(ctx context.Context, name string) (*domain.Client, error)
	Insert(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, id string, patch domain.ClientPatch) (*domain.Client, error)
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, limit int) ([]*domain.Client, error)
	Stats(ctx context.Context, since time.Time) (*ClientStats, error)
}

// PreferencesRepository persists per-user preferences
type PreferencesRepository interface {
	Get(ctx context.Context, userID string) (*domain.Preferences, error) // Defaults if none saved
	Save(ctx context.Context, prefs *domain.Preferences) error
}

// NotificationLogRepository records notification attempts
type NotificationLogRepository interface {
	Insert(ctx context.Context, entry *domain.NotificationLog) error
	ListRecent(ctx context.Context, limit int) ([]*domain.NotificationLog, error)
}

// IndustryCount is one row of the industry breakdown
type IndustryCount struct {
	Industry string
	Count    int
}

// ClientStats summarises the directory for the dashboard
type ClientStats struct {
	Total      int
	AddedSince int
	Industries []IndustryCount // Largest first
}
