package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/andy/salesdesk/internal/config"
	"github.com/andy/salesdesk/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteClientsCSV(t *testing.T) {
	now = func() time.Time { return time.Date(2026, 10, 17, 9, 5, 0, 0, time.UTC) }
	t.Cleanup(func() { now = time.Now })

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	clients := []*domain.Client{
		{ID: "1", CompanyName: "Acme Corp", ContactPerson: "Sam Lee", Notes: "likes \"quotes\", commas", CreatedBy: "rep-1", CreatedAt: created},
		{ID: "2", CompanyName: "Globex", CreatedAt: created},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteClientsCSV(&buf, clients, config.BrandingConfig{Company: "Northwind", ReportTitle: "Q4 Accounts"}))

	lines := strings.SplitN(buf.String(), "\n", 4)
	assert.Equal(t, "# Northwind", lines[0])
	assert.Equal(t, "# Q4 Accounts", lines[1])
	assert.Equal(t, "# Generated 2026-10-17 09:05 UTC, 2 clients", lines[2])

	records, err := csv.NewReader(strings.NewReader(lines[3])).ReadAll()
	require.NoError(t, err)

	want := [][]string{
		header,
		{"Acme Corp", "Sam Lee", "", "", "", "", "likes \"quotes\", commas", "rep-1", "2026-01-02T03:04:05Z"},
		{"Globex", "", "", "", "", "", "", "", "2026-01-02T03:04:05Z"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteClientsCSV_NoBranding(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteClientsCSV(&buf, nil, config.BrandingConfig{}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Generated "))
	assert.Contains(t, out, "0 clients\ncompany_name,")
}
