package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tickerdesk/marketview/internal/config"
	"github.com/tickerdesk/marketview/internal/dispatch"
	"github.com/tickerdesk/marketview/internal/model"
	"github.com/tickerdesk/marketview/internal/snapshot"
	"github.com/tickerdesk/marketview/internal/state"
	"github.com/tickerdesk/marketview/internal/stream"
	"github.com/tickerdesk/marketview/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/viewer.local.yaml", "path to config file")
	symbol := flag.String("symbol", "", "initial symbol (default: first configured pair)")
	flag.Parse()

	// .env is optional, config env expansion picks the values up
	godotenv.Load()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting viewer",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"rest_url", cfg.Venue.RestURL,
		"ws_url", cfg.Venue.WSURL,
		"authenticated", cfg.Venue.Token != "",
		"symbols", cfg.Symbols,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Snapshot client
	fetcher := snapshot.NewClient(
		cfg.Venue.RestURL,
		snapshot.WithLogger(logger),
		snapshot.WithTimeout(cfg.Snapshot.Timeout),
		snapshot.WithRetries(cfg.Snapshot.MaxRetries, cfg.Snapshot.RetryBackoff),
	)

	// Stream session
	session := stream.NewSession(stream.SessionConfig{
		URL:                cfg.Venue.WSURL,
		Token:              cfg.Venue.Token,
		ReconnectBaseDelay: cfg.Stream.ReconnectBaseDelay,
		ReconnectMaxDelay:  cfg.Stream.ReconnectMaxDelay,
		PingTimeout:        cfg.Stream.PingTimeout,
		WriteTimeout:       cfg.Stream.WriteTimeout,
		BufferSize:         cfg.Stream.BufferSize,
	}, logger)

	// Store, subscription, dispatcher
	store := state.NewStore()
	sub := state.NewSubscription(fetcher, session, store, logger)
	dispatcher := dispatch.NewDispatcher(session.Frames(), store, logger)

	go dispatcher.Run(ctx)
	session.Start(ctx)

	// Status server
	statusServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Status.Port),
		Handler: createStatusHandler(session, sub, store, dispatcher),
	}
	go func() {
		logger.Info("starting status server", "port", cfg.Status.Port)
		if err := statusServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("status server error", "error", err)
		}
	}()

	// Re-snapshot after every (re)connect so the view converges even
	// when frames were missed while disconnected.
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-session.Events():
				if ev.State == stream.StateOpen {
					sub.Refresh(ctx)
				} else if ev.Err != nil {
					logger.Warn("stream state", "state", ev.State, "error", ev.Err)
				}
			}
		}
	}()

	// Subscription lifecycle logging
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-sub.Events():
				switch ev.Kind {
				case state.SymbolChanged:
					logger.Info("symbol changed", "symbol", ev.Symbol)
				case state.SnapshotApplied:
					logger.Info("snapshot applied", "symbol", ev.Symbol)
				case state.SnapshotFailed:
					logger.Warn("snapshot failed, prior view stays visible",
						"symbol", ev.Symbol, "error", ev.Err)
				}
			}
		}
	}()

	// Drain chart samples; a renderer would consume these. Snapshot
	// backfills and live trades both land here.
	go func() {
		for {
			sample, ok := store.Samples().Pop()
			if !ok {
				return
			}
			logger.Debug("chart sample", "at", sample.OccurredAt, "price", sample.Price)
		}
	}()

	// Periodic stats
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				snap := store.State()
				processed, ignored := dispatcher.Stats()
				logger.Info("stats",
					"session", session.State(),
					"symbol", sub.Active(),
					"buy_levels", len(snap.Buy),
					"sell_levels", len(snap.Sell),
					"trades", len(snap.Trades),
					"applied", snap.Applied,
					"frames_processed", processed,
					"frames_ignored", ignored,
				)
			}
		}
	}()

	// Select the initial symbol
	initial := *symbol
	if initial == "" {
		initial = cfg.Symbols[0]
	}
	sub.Set(ctx, model.Symbol(initial))

	logger.Info("viewer running",
		"symbol", initial,
		"status_url", fmt.Sprintf("http://localhost:%d/status", cfg.Status.Port),
	)

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	statusServer.Shutdown(shutdownCtx)
	session.Stop(shutdownCtx)
	sub.Wait()

	logger.Info("viewer stopped")
}

// createStatusHandler creates the HTTP handler for the status endpoint.
func createStatusHandler(session *stream.Session, sub *state.Subscription, store *state.Store, dispatcher *dispatch.Dispatcher) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		snap := store.State()
		processed, ignored := dispatcher.Stats()

		status := struct {
			Session         string `json:"session"`
			Symbol          string `json:"symbol"`
			BuyLevels       int    `json:"buy_levels"`
			SellLevels      int    `json:"sell_levels"`
			Trades          int    `json:"trades"`
			Balances        int    `json:"balances"`
			Applied         uint64 `json:"applied"`
			FramesProcessed int64  `json:"frames_processed"`
			FramesIgnored   int64  `json:"frames_ignored"`
		}{
			Session:         session.State().String(),
			Symbol:          string(sub.Active()),
			BuyLevels:       len(snap.Buy),
			SellLevels:      len(snap.Sell),
			Trades:          len(snap.Trades),
			Balances:        len(snap.Balances),
			Applied:         snap.Applied,
			FramesProcessed: processed,
			FramesIgnored:   ignored,
		}

		w.Header().Set("Content-Type", "application/json")
		if session.State() != stream.StateOpen {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(status)
	})

	return mux
}
