package state

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/tickerdesk/marketview/internal/dispatch"
	"github.com/tickerdesk/marketview/internal/model"
)

// ChangeKind says which part of the state an Apply touched.
type ChangeKind int

const (
	ChangeNone ChangeKind = iota
	ChangeOrders
	ChangeTrades
	ChangeBalance
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeOrders:
		return "orders"
	case ChangeTrades:
		return "trades"
	case ChangeBalance:
		return "balance"
	default:
		return "none"
	}
}

// Change is one applied transition. Applied is a monotonic counter
// over all transitions, so consumers can tell a fresh read from one
// they have already rendered.
type Change struct {
	Kind    ChangeKind
	Applied uint64
}

// Snapshot is a deep copy of the store, safe to read without locking.
type Snapshot struct {
	Buy      []model.OrderLevel
	Sell     []model.OrderLevel
	Trades   []model.Trade
	Balances []model.Balance
	Applied  uint64
}

// Store holds book, tape, and balances behind one mutex. Writers go
// through Apply; readers take State snapshots.
type Store struct {
	mu       sync.RWMutex
	buy      []model.OrderLevel
	sell     []model.OrderLevel
	trades   []model.Trade
	balances map[string]decimal.Decimal
	applied  uint64

	changes chan Change
	samples *dispatch.Ring[model.ChartSample]
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		balances: make(map[string]decimal.Decimal),
		changes:  make(chan Change, 16),
		samples:  dispatch.NewRing[model.ChartSample](64),
	}
}

// Apply executes one action. Ignore actions do not count as
// transitions and emit no change. Appended trades emit one chart
// sample each, in order, whether they came from a stream frame or a
// snapshot backfill.
func (s *Store) Apply(action dispatch.Action) {
	s.mu.Lock()

	var kind ChangeKind
	switch a := action.(type) {
	case dispatch.ReplaceOrders:
		s.buy = append([]model.OrderLevel(nil), a.Book.Buy...)
		s.sell = append([]model.OrderLevel(nil), a.Book.Sell...)
		kind = ChangeOrders

	case dispatch.AppendTrades:
		if len(a.Trades) == 0 {
			s.mu.Unlock()
			return
		}
		s.trades = append(s.trades, a.Trades...)
		for _, trade := range a.Trades {
			s.samples.Push(model.ChartSample{
				OccurredAt: trade.OccurredAt,
				Price:      trade.Price,
			})
		}
		kind = ChangeTrades

	case dispatch.SetBalance:
		s.balances[a.Balance.Currency] = a.Balance.Amount
		kind = ChangeBalance

	default:
		s.mu.Unlock()
		return
	}

	s.applied++
	change := Change{Kind: kind, Applied: s.applied}
	s.mu.Unlock()

	s.notify(change)
}

// State returns a deep copy of the current view. Balances come sorted
// by currency for stable display.
func (s *Store) State() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Buy:     append([]model.OrderLevel(nil), s.buy...),
		Sell:    append([]model.OrderLevel(nil), s.sell...),
		Trades:  append([]model.Trade(nil), s.trades...),
		Applied: s.applied,
	}

	snap.Balances = make([]model.Balance, 0, len(s.balances))
	for currency, amount := range s.balances {
		snap.Balances = append(snap.Balances, model.Balance{Currency: currency, Amount: amount})
	}
	sort.Slice(snap.Balances, func(i, j int) bool {
		return snap.Balances[i].Currency < snap.Balances[j].Currency
	})

	return snap
}

// Changes returns the change notification channel. Sends never block;
// when the consumer lags the oldest notification is dropped, the state
// itself is never lost.
func (s *Store) Changes() <-chan Change {
	return s.changes
}

// Samples returns the chart sample buffer: one sample per appended
// trade, in apply order.
func (s *Store) Samples() *dispatch.Ring[model.ChartSample] {
	return s.samples
}

// Reset clears the book and tape for a symbol switch. Balances are
// user-scoped, not symbol-scoped, and are preserved. Undelivered
// chart samples belong to the outgoing symbol and are discarded.
func (s *Store) Reset() {
	s.mu.Lock()
	s.buy = nil
	s.sell = nil
	s.trades = nil
	s.samples.Drain()
	s.applied++
	change := Change{Kind: ChangeOrders, Applied: s.applied}
	s.mu.Unlock()

	s.notify(change)
}

func (s *Store) notify(change Change) {
	select {
	case s.changes <- change:
	default:
		select {
		case <-s.changes:
			s.changes <- change
		default:
		}
	}
}
