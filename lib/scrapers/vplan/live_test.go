package vplan

import (
	"context"
	"errors"
	devenv "leonardo-backend/dev/env"
	"leonardo-backend/lib/telemetry"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// runs against the real site when dev/.state/vplan_config.json5 exists
func TestLiveFirstPage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping live test in short mode")
	}

	cleanup := telemetry.SetupForTesting(t, "test:scrapers/vplan")
	defer cleanup()

	config, err := devenv.GetStateConfig[devenv.VplanTestConfig]("vplan_config.json5")
	if errors.Is(err, os.ErrNotExist) {
		t.Skip("dev/.state/vplan_config.json5 not found")
	}
	require.NoError(t, err)
	if config.Username == "" {
		t.Skip("vplan_config.json5 has no credentials")
	}

	client, err := NewClient(ClientOptions{
		PageUrl:  config.PageUrl,
		Username: config.Username,
		Password: config.Password,
	})
	require.NoError(t, err)

	ctx := context.Background()
	markup, err := client.FetchPage(ctx, 1)
	require.NoError(t, err)

	page, err := ParsePage(ctx, markup)
	require.NoError(t, err)
	require.NotEmpty(t, page.Token)
	require.NotEmpty(t, page.Day)

	_, err = ExpandRows(page.Rows)
	require.NoError(t, err)
}
