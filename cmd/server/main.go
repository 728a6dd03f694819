/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Config Operations Hub server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Initialize SQLite snapshot store
  3. Register the board presets
  4. Restore datasets from persisted snapshots, then refresh from source
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: hub.db)
           Use ":memory:" for an in-memory database
  -data    Directory holding the source workbooks (default: ./data)
  -mock    Force the mock data source (default: false)
  -refresh Auto-refresh interval, 0 disables (default: 15m)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run against the workbooks in ./data
  ./server -db="./data/hub.db"

  # Run fully in memory on mock rows
  ./server -db=":memory:" -mock

SEE ALSO:
  - api/server.go: Router configuration
  - hub/hub.go: Board orchestration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/config-ops-hub/api"
	"github.com/warp/config-ops-hub/hub"
	"github.com/warp/config-ops-hub/source"
	"github.com/warp/config-ops-hub/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "hub.db", "SQLite database path")
	dataDir := flag.String("data", "./data", "directory holding the source workbooks")
	mock := flag.Bool("mock", false, "force the mock data source")
	refresh := flag.Duration("refresh", 15*time.Minute, "auto-refresh interval, 0 disables")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Register boards
	boards, err := hub.Presets()
	if err != nil {
		log.Fatalf("Failed to build board presets: %v", err)
	}
	loader := &source.Resolver{Dir: *dataDir, ForceMock: *mock}
	boardHub := hub.New(store, loader, boards)

	// Persisted snapshots first so the boards come up even when every
	// source is unreachable, then a fresh load.
	ctx := context.Background()
	if err := boardHub.Restore(ctx); err != nil {
		log.Printf("Warning: snapshot restore failed: %v", err)
	}
	if err := boardHub.RefreshAll(ctx); err != nil {
		log.Printf("Warning: initial refresh incomplete: %v", err)
	}

	// Keep the boards tracking their workbooks.
	scheduler := api.NewRefreshScheduler(boardHub)
	scheduler.Interval = *refresh
	scheduler.Enabled = *refresh > 0
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	handler := api.NewHandler(boardHub)
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
