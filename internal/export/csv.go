// Package export writes the client directory in shareable formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/andy/salesdesk/internal/config"
	"github.com/andy/salesdesk/internal/domain"
)

var now = time.Now

var header = []string{
	"company_name", "contact_person", "email", "phone",
	"address", "industry", "notes", "created_by", "created_at",
}

// WriteClientsCSV writes a branded comment header followed by one CSV row per client
func WriteClientsCSV(w io.Writer, clients []*domain.Client, brand config.BrandingConfig) error {
	if brand.Company != "" {
		if _, err := fmt.Fprintf(w, "# %s\n", brand.Company); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	if brand.ReportTitle != "" {
		if _, err := fmt.Fprintf(w, "# %s\n", brand.ReportTitle); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "# Generated %s, %d clients\n",
		now().UTC().Format("2006-01-02 15:04 MST"), len(clients)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write columns: %w", err)
	}

	for _, c := range clients {
		record := []string{
			c.CompanyName,
			c.ContactPerson,
			c.Email,
			c.Phone,
			c.Address,
			c.Industry,
			c.Notes,
			c.CreatedBy,
			c.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write client %s: %w", c.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
