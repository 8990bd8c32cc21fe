package notify

import (
	"context"
	"testing"
	"time"

	"github.com/andy/salesdesk/internal/config"
	"github.com/andy/salesdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitMessage(t *testing.T) {
	msg, err := VisitMessage(domain.VisitNotification{
		Recipient:     "sam@acme.io",
		CompanyName:   "Acme Corp",
		ContactPerson: "Sam Lee",
		VisitType:     "demo",
		ScheduledAt:   time.Date(2026, 11, 3, 14, 30, 0, 0, time.UTC),
		SalesRep:      "Dana",
		Notes:         "Bring the pricing sheet",
	})
	require.NoError(t, err)

	assert.Equal(t, "sam@acme.io", msg.To)
	assert.Equal(t, "Visit scheduled: Acme Corp (demo)", msg.Subject)
	assert.Contains(t, msg.Body, "Contact:        Sam Lee")
	assert.Contains(t, msg.Body, "Tue Nov 3, 2026 at 2:30 PM UTC")
	assert.Contains(t, msg.Body, "Bring the pricing sheet")
}

func TestVisitMessage_OmitsOptionalSections(t *testing.T) {
	msg, err := VisitMessage(domain.VisitNotification{
		Recipient:   "sam@acme.io",
		CompanyName: "Acme Corp",
		VisitType:   "call",
		ScheduledAt: time.Now(),
		SalesRep:    "Dana",
	})
	require.NoError(t, err)
	assert.NotContains(t, msg.Body, "Contact:")
	assert.NotContains(t, msg.Body, "Notes:")
}

func TestSMTPMailer_NotConfigured(t *testing.T) {
	m := NewSMTPMailer(config.NotifyConfig{})
	err := m.Send(context.Background(), Message{To: "x@y.z"})
	assert.EqualError(t, err, "smtp is not configured")
}

func TestSMTPMailer_Render(t *testing.T) {
	m := NewSMTPMailer(config.NotifyConfig{From: "crm@example.com"})
	raw := string(m.render(Message{To: "sam@acme.io", Subject: "Hi", Body: "line1\nline2"}))

	assert.Contains(t, raw, "From: crm@example.com\r\n")
	assert.Contains(t, raw, "Subject: Hi\r\n")
	assert.Contains(t, raw, "\r\n\r\nline1\r\nline2")
}
