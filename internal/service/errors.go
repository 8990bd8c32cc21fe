package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/andy/salesdesk/internal/domain"
	"github.com/andy/salesdesk/internal/repository"
	"github.com/andy/salesdesk/internal/validation"
)

// DuplicateError is a policy rejection: a client with the same name exists.
// Existing lets the caller offer "use existing" instead.
type DuplicateError struct {
	Existing *domain.Client
}

func (e *DuplicateError) Error() string {
	if e.Existing == nil {
		return "a client with this company name already exists"
	}
	return fmt.Sprintf("a client named %q already exists", e.Existing.CompanyName)
}

// NotificationDeliveryError means the email itself could not be sent
type NotificationDeliveryError struct {
	Recipient string
	Err       error
}

func (e *NotificationDeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver notification to %s: %v", e.Recipient, e.Err)
}

func (e *NotificationDeliveryError) Unwrap() error {
	return e.Err
}

// UserMessage turns an error from this package into text for the user.
// Each error class gets its own wording.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var verr *validation.Error
	var derr *DuplicateError
	var nerr *NotificationDeliveryError
	var serr *repository.StoreError

	switch {
	case errors.As(err, &verr):
		fields := make([]string, 0, len(verr.Fields))
		for f := range verr.Fields {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		return "Please correct the following fields: " + strings.Join(fields, ", ")
	case errors.As(err, &derr):
		if derr.Existing != nil {
			return fmt.Sprintf("A client named %q already exists. Use the existing record or choose a different name.",
				derr.Existing.CompanyName)
		}
		return "A client with this company name already exists."
	case errors.As(err, &nerr):
		return fmt.Sprintf("The notification email to %s could not be sent: %v", nerr.Recipient, nerr.Err)
	case errors.As(err, &serr):
		return fmt.Sprintf("Database error while trying to %s: %v", serr.Op, serr.Err)
	default:
		return err.Error()
	}
}
