package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/andy/salesdesk/internal/service"
	"github.com/andy/salesdesk/internal/validation"
)

// reportError prints per-field detail for validation failures and
// returns the user-facing message as the command error
func reportError(err error) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		fields := make([]string, 0, len(verr.Fields))
		for f := range verr.Fields {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Printf("  ✗ %s: %s\n", f, strings.Join(verr.Fields[f], "; "))
		}
	}

	var derr *service.DuplicateError
	if errors.As(err, &derr) && derr.Existing != nil {
		fmt.Printf("  Existing client ID: %s\n", derr.Existing.ID)
	}

	return errors.New(service.UserMessage(err))
}
