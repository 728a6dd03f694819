/*
scheduler.go - Automatic board refresh

PURPOSE:
  Periodically re-runs the full refresh so the boards track the source
  workbooks without anyone pressing the refresh button. Each tick reloads
  every board, replaces the persisted snapshots and swaps the datasets;
  per-board failures are logged and skipped, same as a manual RefreshAll.

DESIGN:
  - Runs a background goroutine with a configurable tick interval
  - Refreshes once immediately on Start, then on every tick
  - Enabled defaults to true; an interval of zero takes the default

SEE ALSO:
  - hub/hub.go: RefreshAll semantics (continue past failures)
  - cmd/server/main.go: wiring and the -refresh flag
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/warp/config-ops-hub/hub"
)

const defaultRefreshInterval = 15 * time.Minute

// RefreshScheduler re-runs the hub's full refresh on an interval.
type RefreshScheduler struct {
	Hub      *hub.Hub
	Interval time.Duration
	Enabled  bool

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewRefreshScheduler creates a scheduler over the hub.
func NewRefreshScheduler(h *hub.Hub) *RefreshScheduler {
	return &RefreshScheduler{
		Hub:      h,
		Interval: defaultRefreshInterval,
		Enabled:  true,
		stop:     make(chan struct{}),
	}
}

// Start begins the refresh loop.
func (rs *RefreshScheduler) Start() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}
	if rs.Interval <= 0 {
		rs.Interval = defaultRefreshInterval
	}

	rs.ticker = time.NewTicker(rs.Interval)
	rs.wg.Add(1)

	go rs.run()

	log.Printf("[Scheduler] Started with refresh interval: %v", rs.Interval)
}

// Stop stops the scheduler and waits for an in-flight refresh to finish.
func (rs *RefreshScheduler) Stop() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.ticker != nil {
		rs.ticker.Stop()
		close(rs.stop)
		rs.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

func (rs *RefreshScheduler) run() {
	defer rs.wg.Done()

	// Refresh immediately on start.
	rs.refresh()

	for {
		select {
		case <-rs.ticker.C:
			rs.refresh()
		case <-rs.stop:
			return
		}
	}
}

func (rs *RefreshScheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := rs.Hub.RefreshAll(ctx); err != nil {
		log.Printf("[Scheduler] Refresh cycle finished with errors: %v", err)
	}
}
