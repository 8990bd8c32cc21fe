package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/andy/salesdesk/internal/domain"
	"github.com/andy/salesdesk/internal/logging"
	"github.com/andy/salesdesk/internal/notify"
	"github.com/andy/salesdesk/internal/repository"
	"github.com/andy/salesdesk/internal/validation"
	"go.uber.org/zap"
)

// Visit notification field names
const (
	FieldRecipient   = "recipient"
	FieldVisitType   = "visit_type"
	FieldScheduledAt = "scheduled_at"
	FieldSalesRep    = "sales_rep"
)

// NotificationResult reports what happened to a send attempt.
// Status follows HTTP conventions so callers can surface it unchanged.
type NotificationResult struct {
	Success bool
	Status  int
	Error   string
	LogID   string
}

// NotificationService sends client-facing emails
type NotificationService interface {
	SendVisitNotification(ctx context.Context, n domain.VisitNotification) (*NotificationResult, error)
}

type notificationService struct {
	mailer notify.Mailer
	logs   repository.NotificationLogRepository
	logger *zap.Logger
}

// NewNotificationService creates a notification service. logs may be nil.
func NewNotificationService(mailer notify.Mailer, logs repository.NotificationLogRepository, logger *zap.Logger) NotificationService {
	return &notificationService{
		mailer: mailer,
		logs:   logs,
		logger: logging.OrNop(logger).Named("notify"),
	}
}

func visitSchema() validation.Schema {
	return validation.Schema{
		FieldRecipient:                {validation.Required().WithMessage("Recipient email is required"), validation.Email()},
		validation.FieldCompanyName:   {validation.Required().WithMessage("Company name is required")},
		validation.FieldContactPerson: {validation.MaxLength(100)},
		FieldVisitType:                {validation.Required().WithMessage("Visit type is required")},
		FieldSalesRep:                 {validation.Required().WithMessage("Sales rep name is required")},
		validation.FieldNotes:         {validation.MaxLength(1000)},
	}
}

func validateVisit(n domain.VisitNotification) error {
	errs := validation.ValidateFields(map[string]string{
		FieldRecipient:                n.Recipient,
		validation.FieldCompanyName:   n.CompanyName,
		validation.FieldContactPerson: n.ContactPerson,
		FieldVisitType:                n.VisitType,
		FieldSalesRep:                 n.SalesRep,
		validation.FieldNotes:         n.Notes,
	}, visitSchema())
	if n.ScheduledAt.IsZero() {
		errs[FieldScheduledAt] = []string{"Scheduled time is required"}
	}
	if len(errs) > 0 {
		return &validation.Error{Fields: errs}
	}
	return nil
}

func (s *notificationService) SendVisitNotification(ctx context.Context, n domain.VisitNotification) (*NotificationResult, error) {
	n.Recipient = strings.TrimSpace(n.Recipient)
	n.CompanyName = strings.TrimSpace(n.CompanyName)

	if err := validateVisit(n); err != nil {
		return &NotificationResult{Status: http.StatusBadRequest, Error: err.Error()}, err
	}

	msg, err := notify.VisitMessage(n)
	if err != nil {
		return &NotificationResult{Status: http.StatusInternalServerError, Error: err.Error()}, err
	}

	sendErr := s.mailer.Send(ctx, msg)

	entry := &domain.NotificationLog{
		Recipient:   n.Recipient,
		CompanyName: n.CompanyName,
		VisitType:   n.VisitType,
		ScheduledAt: n.ScheduledAt,
		Status:      domain.NotificationSent,
		CreatedAt:   time.Now().UTC(),
	}
	if sendErr != nil {
		entry.Status = domain.NotificationFailed
		entry.Error = sendErr.Error()
	}
	s.record(ctx, entry)

	if sendErr != nil {
		s.logger.Error("visit notification failed",
			zap.String("recipient", n.Recipient), zap.Error(sendErr))
		return &NotificationResult{
				Status: http.StatusBadGateway,
				Error:  sendErr.Error(),
				LogID:  entry.ID,
			}, &NotificationDeliveryError{
				Recipient: n.Recipient,
				Err:       sendErr,
			}
	}

	s.logger.Info("visit notification sent",
		zap.String("recipient", n.Recipient), zap.String("company", n.CompanyName))
	return &NotificationResult{Success: true, Status: http.StatusOK, LogID: entry.ID}, nil
}

// record writes the audit entry. Failures are logged only.
func (s *notificationService) record(ctx context.Context, entry *domain.NotificationLog) {
	if s.logs == nil {
		return
	}
	if err := s.logs.Insert(ctx, entry); err != nil {
		s.logger.Warn("failed to record notification", zap.String("recipient", entry.Recipient), zap.Error(err))
	}
}
