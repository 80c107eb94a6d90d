package model

import "github.com/shopspring/decimal"

// Symbol identifies a tradable instrument pair (e.g. "usd-eur").
type Symbol string

// NoSymbol is the sentinel value before any pair has been selected.
const NoSymbol Symbol = ""

// OrderLevel is one price level of a book side. Qty is the remaining
// quantity (initQty - executedQty) and is never negative.
type OrderLevel struct {
	Price decimal.Decimal
	Qty   decimal.Decimal
}

// Book holds both sides of the order book for one symbol.
// The server sends buy levels descending and sell levels ascending by
// price; levels are kept in arrival order, never re-sorted here.
type Book struct {
	Buy  []OrderLevel
	Sell []OrderLevel
}

// Trade is one executed trade, immutable once received.
// OccurredAt carries the wire createdAt value opaquely.
type Trade struct {
	Price      decimal.Decimal
	Qty        decimal.Decimal
	OccurredAt string
}

// Balance is the authenticated user's holding in a single currency.
type Balance struct {
	Currency string
	Amount   decimal.Decimal
}

// ChartSample is one chart point, emitted per appended trade in
// arrival order.
type ChartSample struct {
	OccurredAt string
	Price      decimal.Decimal
}
