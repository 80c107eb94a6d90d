package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNegativeRemaining marks an order level whose executed quantity
// exceeds its initial quantity.
var ErrNegativeRemaining = errors.New("negative remaining quantity")

// OrderLevelWire is an order level as the venue sends it, both in REST
// snapshots and in last_orders broadcasts.
type OrderLevelWire struct {
	Price       decimal.Decimal `json:"price"`
	InitQty     decimal.Decimal `json:"initQty"`
	ExecutedQty decimal.Decimal `json:"executedQty"`
}

// Level converts a wire level to its remaining-quantity form.
// Returns ErrNegativeRemaining when executedQty > initQty.
func (w OrderLevelWire) Level() (OrderLevel, error) {
	qty := w.InitQty.Sub(w.ExecutedQty)
	if qty.IsNegative() {
		return OrderLevel{}, ErrNegativeRemaining
	}
	return OrderLevel{Price: w.Price, Qty: qty}, nil
}

// BookWire is the {buy, sell} payload shared by the orders snapshot
// endpoint and the last_orders broadcast.
type BookWire struct {
	Buy  []OrderLevelWire `json:"buy"`
	Sell []OrderLevelWire `json:"sell"`
}

// Book converts both sides. Levels implying a negative remaining
// quantity are dropped; valid levels in the same payload are kept.
// The dropped count is returned for the caller to log.
func (w BookWire) Book() (Book, int) {
	book := Book{
		Buy:  make([]OrderLevel, 0, len(w.Buy)),
		Sell: make([]OrderLevel, 0, len(w.Sell)),
	}

	dropped := 0
	for _, lw := range w.Buy {
		level, err := lw.Level()
		if err != nil {
			dropped++
			continue
		}
		book.Buy = append(book.Buy, level)
	}
	for _, lw := range w.Sell {
		level, err := lw.Level()
		if err != nil {
			dropped++
			continue
		}
		book.Sell = append(book.Sell, level)
	}

	return book, dropped
}

// TradeWire is a trade as the venue sends it.
type TradeWire struct {
	Price     decimal.Decimal `json:"price"`
	Qty       decimal.Decimal `json:"qty"`
	CreatedAt string          `json:"createdAt"`
}

// Trade converts a wire trade; createdAt becomes OccurredAt unparsed.
func (w TradeWire) Trade() Trade {
	return Trade{Price: w.Price, Qty: w.Qty, OccurredAt: w.CreatedAt}
}

// NewTradesWire is the new_trades broadcast payload.
type NewTradesWire struct {
	NewTrades []TradeWire `json:"newTrades"`
}

// Trades converts the payload preserving arrival order.
func (w NewTradesWire) Trades() []Trade {
	trades := make([]Trade, len(w.NewTrades))
	for i, tw := range w.NewTrades {
		trades[i] = tw.Trade()
	}
	return trades
}

// BalanceWire is the balance update payload.
type BalanceWire struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// Balance converts the payload.
func (w BalanceWire) Balance() Balance {
	return Balance{Currency: w.Currency, Amount: w.Amount}
}
