package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/andy/salesdesk/internal/config"
	"github.com/andy/salesdesk/internal/domain"
	"github.com/andy/salesdesk/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithConfig_PlainDatabase(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Database.Path = filepath.Join(dir, "data", "salesdesk.db")
	cfg.Database.Encrypted = false
	cfg.Log.Path = filepath.Join(dir, "logs", "salesdesk.log")
	cfg.User.ID = "rep-7"

	a, err := NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	ctx := context.Background()
	res, err := a.ClientService.CreateClientSafely(ctx,
		domain.ClientInput{CompanyName: "Acme Corp"}, service.DefaultCreateOptions())
	require.NoError(t, err)
	assert.Equal(t, "rep-7", res.Client.CreatedBy)

	prefs, err := a.PreferencesService.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rep-7", prefs.UserID)

	assert.FileExists(t, cfg.Log.Path)
}
