package domain

import "time"

type NotificationStatus string

const (
	NotificationSent   NotificationStatus = "sent"
	NotificationFailed NotificationStatus = "failed"
)

// VisitNotification is the payload for a scheduled client visit email
type VisitNotification struct {
	Recipient     string
	CompanyName   string
	ContactPerson string
	VisitType     string
	ScheduledAt   time.Time
	SalesRep      string
	Notes         string
}

// NotificationLog records an attempted notification
type NotificationLog struct {
	ID          string
	Recipient   string
	CompanyName string
	VisitType   string
	ScheduledAt time.Time
	Status      NotificationStatus
	Error       string
	CreatedAt   time.Time
}
