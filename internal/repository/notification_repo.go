package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/andy/salesdesk/internal/db"
	"github.com/andy/salesdesk/internal/domain"
	"github.com/google/uuid"
)

// NotificationLogRepo is a SQLite implementation of NotificationLogRepository
type NotificationLogRepo struct {
	db *db.DB
}

// NewNotificationLogRepo creates a new NotificationLogRepo
func NewNotificationLogRepo(database *db.DB) *NotificationLogRepo {
	return &NotificationLogRepo{db: database}
}

// Insert records a notification attempt, assigning its ID
func (r *NotificationLogRepo) Insert(ctx context.Context, entry *domain.NotificationLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	id := uuid.NewString()

	query := `
		INSERT INTO notification_logs (id, recipient, company_name, visit_type, scheduled_at, status, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		id,
		entry.Recipient,
		entry.CompanyName,
		entry.VisitType,
		formatTime(entry.ScheduledAt),
		string(entry.Status),
		entry.Error,
		formatTime(entry.CreatedAt),
	)
	if err != nil {
		return storeErr("insert notification log", err)
	}

	entry.ID = id
	return nil
}

// ListRecent returns the latest notification attempts, newest first
func (r *NotificationLogRepo) ListRecent(ctx context.Context, limit int) ([]*domain.NotificationLog, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, recipient, company_name, visit_type, scheduled_at, status, error, created_at
		FROM notification_logs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, storeErr("list notification logs", err)
	}
	defer rows.Close()

	logs := make([]*domain.NotificationLog, 0)
	for rows.Next() {
		entry := &domain.NotificationLog{}
		var status, scheduledAt, createdAt string

		if err := rows.Scan(
			&entry.ID,
			&entry.Recipient,
			&entry.CompanyName,
			&entry.VisitType,
			&scheduledAt,
			&status,
			&entry.Error,
			&createdAt,
		); err != nil {
			return nil, storeErr("list notification logs", fmt.Errorf("failed to scan log: %w", err))
		}

		entry.Status = domain.NotificationStatus(status)
		if entry.ScheduledAt, err = parseTime(scheduledAt); err != nil {
			return nil, storeErr("list notification logs", fmt.Errorf("failed to parse scheduled_at: %w", err))
		}
		if entry.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, storeErr("list notification logs", fmt.Errorf("failed to parse created_at: %w", err))
		}

		logs = append(logs, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("list notification logs", err)
	}

	return logs, nil
}
