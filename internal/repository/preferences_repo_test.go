package repository

import (
	"context"
	"testing"
	"time"

	"github.com/andy/salesdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferencesRepo_DefaultsThenRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewPreferencesRepo(openTestDB(t))

	p, err := repo.Get(ctx, "rep-1")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPreferences("rep-1"), p)

	p.FullName = "Dana Scully"
	p.Email = "dana@example.com"
	p.WeeklyReports = true
	p.VisitReminders = false
	require.NoError(t, repo.Save(ctx, p))

	got, err := repo.Get(ctx, "rep-1")
	require.NoError(t, err)
	assert.Equal(t, "Dana Scully", got.FullName)
	assert.True(t, got.WeeklyReports)
	assert.False(t, got.VisitReminders)
	assert.True(t, got.EmailNotifications)

	// Upsert overwrites
	got.FullName = "Dana K. Scully"
	require.NoError(t, repo.Save(ctx, got))
	again, err := repo.Get(ctx, "rep-1")
	require.NoError(t, err)
	assert.Equal(t, "Dana K. Scully", again.FullName)

	other, err := repo.Get(ctx, "rep-2")
	require.NoError(t, err)
	assert.Empty(t, other.FullName, "preferences are per user")
}

func TestPreferencesRepo_SaveRequiresUser(t *testing.T) {
	repo := NewPreferencesRepo(openTestDB(t))
	assert.Error(t, repo.Save(context.Background(), &domain.Preferences{}))
}

func TestNotificationLogRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationLogRepo(openTestDB(t))
	at := time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Insert(ctx, &domain.NotificationLog{
		Recipient: "a@acme.io", CompanyName: "Acme", VisitType: "demo", ScheduledAt: at,
		Status: domain.NotificationSent,
	}))
	require.NoError(t, repo.Insert(ctx, &domain.NotificationLog{
		Recipient: "b@acme.io", CompanyName: "Acme", VisitType: "follow-up", ScheduledAt: at,
		Status: domain.NotificationFailed, Error: "smtp down",
	}))

	logs, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "b@acme.io", logs[0].Recipient)
	assert.Equal(t, domain.NotificationFailed, logs[0].Status)
	assert.Equal(t, "smtp down", logs[0].Error)
	assert.True(t, at.Equal(logs[1].ScheduledAt))
}
