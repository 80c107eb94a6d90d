package dispatch

import "github.com/tickerdesk/marketview/internal/model"

// Action is the typed outcome of classifying one frame. The same
// actions carry REST snapshot results, so every state transition goes
// through one path.
type Action interface {
	isAction()
}

// ReplaceOrders replaces both book sides wholesale. Dropped counts the
// wire levels rejected for implying a negative remaining quantity.
type ReplaceOrders struct {
	Book    model.Book
	Dropped int
}

// AppendTrades appends trades to the tape in arrival order.
type AppendTrades struct {
	Trades []model.Trade
}

// SetBalance upserts the balance for one currency.
type SetBalance struct {
	Balance model.Balance
}

// Ignore is the outcome for unrecognized or malformed frames.
type Ignore struct {
	Reason string
}

func (ReplaceOrders) isAction() {}
func (AppendTrades) isAction()  {}
func (SetBalance) isAction()    {}
func (Ignore) isAction()        {}

// Applier receives classified actions. The store implements it.
type Applier interface {
	Apply(Action)
}
