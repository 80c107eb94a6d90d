// streamtest connects to the venue WebSocket and prints classified
// frames to the console.
// Usage: go run ./cmd/streamtest --config configs/viewer.local.yaml --symbol usd-eur
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tickerdesk/marketview/internal/config"
	"github.com/tickerdesk/marketview/internal/dispatch"
	"github.com/tickerdesk/marketview/internal/model"
	"github.com/tickerdesk/marketview/internal/stream"
)

func main() {
	configPath := flag.String("config", "configs/viewer.example.yaml", "path to config file")
	symbol := flag.String("symbol", "", "symbol to subscribe (default: first configured pair)")
	flag.Parse()

	godotenv.Load()

	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	target := *symbol
	if target == "" {
		target = cfg.Symbols[0]
	}

	session := stream.NewSession(stream.SessionConfig{
		URL:                cfg.Venue.WSURL,
		Token:              cfg.Venue.Token,
		ReconnectBaseDelay: cfg.Stream.ReconnectBaseDelay,
		ReconnectMaxDelay:  cfg.Stream.ReconnectMaxDelay,
		PingTimeout:        cfg.Stream.PingTimeout,
		WriteTimeout:       cfg.Stream.WriteTimeout,
		BufferSize:         cfg.Stream.BufferSize,
	}, logger)

	session.Subscribe(model.Symbol(target))
	session.Start(ctx)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-session.Events():
				logger.Info("session event", "state", ev.State, "error", ev.Err)
			}
		}
	}()

	logger.Info("streaming started - press Ctrl+C to stop", "symbol", target)

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			session.Stop(shutdownCtx)
			shutdownCancel()
			logger.Info("shutdown complete")
			return

		case frame := <-session.Frames():
			printAction(dispatch.Classify(frame.Data))
		}
	}
}

func printAction(action dispatch.Action) {
	switch a := action.(type) {
	case dispatch.ReplaceOrders:
		fmt.Printf("[ORDERS] buy=%d sell=%d dropped=%d\n",
			len(a.Book.Buy), len(a.Book.Sell), a.Dropped)

	case dispatch.AppendTrades:
		for _, trade := range a.Trades {
			fmt.Printf("[TRADE] price=%s qty=%s at=%s\n",
				trade.Price, trade.Qty, trade.OccurredAt)
		}

	case dispatch.SetBalance:
		fmt.Printf("[BALANCE] %s=%s\n", a.Balance.Currency, a.Balance.Amount)

	case dispatch.Ignore:
		fmt.Printf("[IGNORED] %s\n", a.Reason)
	}
}
