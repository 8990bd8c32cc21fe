package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/andy/salesdesk/internal/db"
	"github.com/andy/salesdesk/internal/domain"
)

// PreferencesRepo is a SQLite implementation of PreferencesRepository
type PreferencesRepo struct {
	db *db.DB
}

// NewPreferencesRepo creates a new PreferencesRepo
func NewPreferencesRepo(database *db.DB) *PreferencesRepo {
	return &PreferencesRepo{db: database}
}

// Get loads a user's preferences, falling back to defaults if none are saved
func (r *PreferencesRepo) Get(ctx context.Context, userID string) (*domain.Preferences, error) {
	query := `
		SELECT user_id, full_name, email, phone, title,
		       email_notifications, visit_reminders, weekly_reports, new_lead_alerts, updated_at
		FROM preferences
		WHERE user_id = ?
	`

	p := &domain.Preferences{}
	var updatedAt string

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&p.FullName,
		&p.Email,
		&p.Phone,
		&p.Title,
		&p.EmailNotifications,
		&p.VisitReminders,
		&p.WeeklyReports,
		&p.NewLeadAlerts,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DefaultPreferences(userID), nil
		}
		return nil, storeErr("get preferences", err)
	}

	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, storeErr("get preferences", fmt.Errorf("failed to parse updated_at: %w", err))
	}

	return p, nil
}

// Save inserts or replaces a user's preferences
func (r *PreferencesRepo) Save(ctx context.Context, p *domain.Preferences) error {
	if p.UserID == "" {
		return storeErr("save preferences", errors.New("user id is required"))
	}

	p.UpdatedAt = time.Now().UTC()

	query := `
		INSERT INTO preferences (user_id, full_name, email, phone, title,
		    email_notifications, visit_reminders, weekly_reports, new_lead_alerts, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
		    full_name = excluded.full_name,
		    email = excluded.email,
		    phone = excluded.phone,
		    title = excluded.title,
		    email_notifications = excluded.email_notifications,
		    visit_reminders = excluded.visit_reminders,
		    weekly_reports = excluded.weekly_reports,
		    new_lead_alerts = excluded.new_lead_alerts,
		    updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		p.UserID,
		p.FullName,
		p.Email,
		p.Phone,
		p.Title,
		boolToInt(p.EmailNotifications),
		boolToInt(p.VisitReminders),
		boolToInt(p.WeeklyReports),
		boolToInt(p.NewLeadAlerts),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return storeErr("save preferences", err)
	}

	return nil
}
