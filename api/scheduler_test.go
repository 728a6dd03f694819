package api_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/config-ops-hub/api"
	"github.com/warp/config-ops-hub/engine"
	"github.com/warp/config-ops-hub/engine/store"
	"github.com/warp/config-ops-hub/hub"
)

func TestScheduler_RefreshesOnStart(t *testing.T) {
	boards, err := hub.Presets()
	require.NoError(t, err)
	h := hub.New(store.NewMemory(), &stubLoader{rows: map[string][]engine.RawRow{"arc": arcRows()}}, boards)

	rs := api.NewRefreshScheduler(h)
	rs.Interval = time.Hour
	rs.Start()
	rs.Stop() // waits for the in-flight refresh

	ds, err := h.Dataset("arc")
	require.NoError(t, err)
	assert.Len(t, ds.Records, 3)

	hist, err := h.History(context.Background(), "arc", 0)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestScheduler_DisabledDoesNothing(t *testing.T) {
	boards, err := hub.Presets()
	require.NoError(t, err)
	h := hub.New(store.NewMemory(), &stubLoader{}, boards)

	rs := api.NewRefreshScheduler(h)
	rs.Enabled = false
	rs.Start()
	rs.Stop()

	_, err = h.Dataset("arc")
	assert.Error(t, err, "no refresh should have run")
}
