// auctiond serves the Vickrey auction engine over HTTP, publishes lifecycle
// notifications to NATS when a broker is configured, and archives every
// settlement to an embedded BoltDB file.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudx-io/vickrey/archive"
	"github.com/cloudx-io/vickrey/events"
	"github.com/cloudx-io/vickrey/registry"
	"github.com/cloudx-io/vickrey/server"
)

func main() {
	var (
		addr    = flag.String("addr", envOr("AUCTIOND_ADDR", ":8080"), "HTTP listen address")
		natsURL = flag.String("nats", envOr("AUCTIOND_NATS_URL", ""), "NATS broker URL (empty disables event publishing)")
		dbPath  = flag.String("db", envOr("AUCTIOND_DB_PATH", "auctiond.db"), "settlement archive path")
	)
	flag.Parse()

	if err := run(*addr, *natsURL, *dbPath); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}

func run(addr, natsURL, dbPath string) error {
	var pub events.Publisher = events.Discard{}
	if natsURL != "" {
		natsPub, err := events.NewNATSPublisher(natsURL)
		if err != nil {
			return err
		}
		defer natsPub.Close()
		pub = natsPub
		log.Printf("INFO: publishing events to NATS at %s", natsURL)
	} else {
		log.Printf("INFO: no NATS URL configured, events are discarded")
	}

	arc, err := archive.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := arc.Close(); err != nil {
			log.Printf("ERROR: failed to close archive: %v", err)
		}
	}()
	log.Printf("INFO: settlement archive at %s", dbPath)

	reg := registry.New(registry.DefaultConfig(), registry.SystemClock{}, pub)
	srv := server.New(reg, arc)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("INFO: auction engine listening on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Printf("INFO: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}

	return nil
}

// envOr returns the environment variable's value or the fallback when it is
// unset.
func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
