package state

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tickerdesk/marketview/internal/dispatch"
	"github.com/tickerdesk/marketview/internal/model"
)

// EventKind tags subscription lifecycle events.
type EventKind int

const (
	// SymbolChanged fires synchronously when Set accepts a new symbol,
	// before any fetch starts.
	SymbolChanged EventKind = iota
	// SnapshotApplied fires after a snapshot for the current symbol
	// has replaced the book and tape.
	SnapshotApplied
	// SnapshotFailed fires when the snapshot fetch failed; the prior
	// state stays visible.
	SnapshotFailed
)

// Event is one subscription lifecycle notification.
type Event struct {
	Kind   EventKind
	Symbol model.Symbol
	Err    error
}

// Fetcher loads REST snapshots for a symbol.
type Fetcher interface {
	LastOrders(ctx context.Context, symbol model.Symbol) (model.Book, error)
	LastTrades(ctx context.Context, symbol model.Symbol) ([]model.Trade, error)
}

// Subscriber registers interest in a symbol's stream channel.
type Subscriber interface {
	Subscribe(symbol model.Symbol)
}

// Subscription tracks the single active symbol. Switching symbols
// re-subscribes the stream and refreshes snapshots; a generation
// counter discards refresh results that complete after a newer switch.
type Subscription struct {
	fetcher Fetcher
	stream  Subscriber
	store   *Store
	logger  *slog.Logger

	mu     sync.Mutex
	active model.Symbol
	gen    uint64

	events chan Event
	wg     sync.WaitGroup
}

// NewSubscription creates a subscription with no active symbol.
func NewSubscription(fetcher Fetcher, stream Subscriber, store *Store, logger *slog.Logger) *Subscription {
	if logger == nil {
		logger = slog.Default()
	}
	return &Subscription{
		fetcher: fetcher,
		stream:  stream,
		store:   store,
		logger:  logger.With("component", "subscription"),
		events:  make(chan Event, 16),
	}
}

// Set switches the active symbol. Setting the current symbol is a
// no-op. Otherwise the stream is re-subscribed and the snapshot
// refreshed in the background; the store is reset only when the
// snapshot arrives, so a failed fetch leaves the prior view intact.
func (s *Subscription) Set(ctx context.Context, symbol model.Symbol) {
	s.mu.Lock()
	if symbol == s.active {
		s.mu.Unlock()
		return
	}
	s.active = symbol
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	s.notify(Event{Kind: SymbolChanged, Symbol: symbol})
	s.logger.Info("active symbol changed", "symbol", symbol)

	if symbol == model.NoSymbol {
		return
	}

	s.stream.Subscribe(symbol)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.refresh(ctx, symbol, gen)
	}()
}

// Refresh re-fetches the snapshot for the active symbol, for use after
// a reconnect. No-op without an active symbol.
func (s *Subscription) Refresh(ctx context.Context) {
	s.mu.Lock()
	symbol := s.active
	gen := s.gen
	s.mu.Unlock()

	if symbol == model.NoSymbol {
		return
	}
	s.refresh(ctx, symbol, gen)
}

// Active returns the current symbol, NoSymbol when none is selected.
func (s *Subscription) Active() model.Symbol {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Events returns subscription lifecycle notifications.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Wait blocks until in-flight refreshes finish. Test helper and
// shutdown hook.
func (s *Subscription) Wait() {
	s.wg.Wait()
}

// refresh fetches both snapshots in parallel and applies them if the
// generation still matches the latest switch.
func (s *Subscription) refresh(ctx context.Context, symbol model.Symbol, gen uint64) {
	var (
		book   model.Book
		trades []model.Trade
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		book, err = s.fetcher.LastOrders(gctx, symbol)
		return err
	})
	g.Go(func() error {
		var err error
		trades, err = s.fetcher.LastTrades(gctx, symbol)
		return err
	})

	if err := g.Wait(); err != nil {
		if s.stale(gen) {
			return
		}
		s.logger.Warn("snapshot fetch failed", "symbol", symbol, "error", err)
		s.notify(Event{Kind: SnapshotFailed, Symbol: symbol, Err: err})
		return
	}

	// The generation re-check and the apply must be one atomic step:
	// a switch that lands between them would let this stale snapshot
	// overwrite the newer symbol's view. Set bumps the generation
	// under the same mutex.
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.logger.Debug("stale snapshot discarded", "symbol", symbol)
		return
	}

	// Reset happens only now that a snapshot is in hand, so the
	// previous symbol's view stays up until the replacement exists.
	s.store.Reset()
	s.store.Apply(dispatch.ReplaceOrders{Book: book})
	s.store.Apply(dispatch.AppendTrades{Trades: trades})
	s.mu.Unlock()

	s.logger.Info("snapshot applied",
		"symbol", symbol,
		"buy_levels", len(book.Buy),
		"sell_levels", len(book.Sell),
		"trades", len(trades),
	)
	s.notify(Event{Kind: SnapshotApplied, Symbol: symbol})
}

func (s *Subscription) stale(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen != s.gen
}

func (s *Subscription) notify(ev Event) {
	select {
	case s.events <- ev:
	default:
		select {
		case <-s.events:
			s.events <- ev
		default:
		}
	}
}
