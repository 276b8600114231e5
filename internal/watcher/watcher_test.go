package watcher

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itemdeck/internal/catalog"
	"itemdeck/internal/config"
	"itemdeck/internal/storage"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

const payload = `[
	{"id": 1, "class_name": "upgrade_fleetfoot", "shopable": true, "shop_image": "ff.png", "cost": 500,
	 "properties": {"Speed": {"value": "2", "label": "Speed", "postfix": "m/s"}},
	 "tooltip_sections": [{"section_type": "innate", "section_attributes": [{"properties": ["Speed"]}]}]},
	{"id": 2, "class_name": "upgrade_hidden", "shopable": false}
]`

func TestRunCycle(t *testing.T) {
	tmp := t.TempDir()
	db, err := storage.Open(filepath.Join(tmp, "items.db"))
	require.NoError(t, err)
	defer db.Close()

	calls := 0
	cfg := config.Config{
		OutputDir:           filepath.Join(tmp, "out"),
		ItemsAPIBaseURL:     "https://example.test/v2",
		ItemsRateLimitRPS:   1000,
		ItemsMaxAttempts:    1,
		SnapshotMaxAgeHours: 24,
		WatchAutoExport:     true,
	}
	svc := NewService(db, cfg, nil, catalog.WithHTTPClient(&http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			calls++
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(payload)),
				Header:     make(http.Header),
			}, nil
		}),
	}))

	res, err := svc.RunCycle(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Synced)
	assert.Equal(t, 1, res.Processed)
	require.Len(t, res.Exported, 2)
	for _, path := range res.Exported {
		_, err := os.Stat(path)
		assert.NoError(t, err)
	}

	items, err := db.ListProcessedItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Fleetfoot", items[0].Name)
	assert.Equal(t, "2m/s", items[0].Stats[0].Value)

	res, err = svc.RunCycle(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Synced)
	assert.Equal(t, 1, calls)
}

func TestRunStopsOnCancel(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "items.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewService(db, config.Config{}, nil)
	assert.NoError(t, svc.Run(ctx))
}
