package snapshot

import (
	"context"

	"github.com/tickerdesk/marketview/internal/model"
)

// LastOrders fetches the order-book snapshot for a symbol. Levels that
// imply a negative remaining quantity are dropped; the rest of the
// snapshot is still returned.
func (c *Client) LastOrders(ctx context.Context, symbol model.Symbol) (model.Book, error) {
	var wire model.BookWire
	if err := c.get(ctx, "/orders/last/"+string(symbol), symbol, &wire); err != nil {
		return model.Book{}, err
	}

	book, dropped := wire.Book()
	if dropped > 0 {
		c.logger.Warn("order snapshot contained invalid levels",
			"symbol", symbol,
			"dropped", dropped,
		)
	}

	return book, nil
}

// LastTrades fetches the recent trade tape for a symbol, oldest first.
func (c *Client) LastTrades(ctx context.Context, symbol model.Symbol) ([]model.Trade, error) {
	var wire []model.TradeWire
	if err := c.get(ctx, "/trades/last/"+string(symbol), symbol, &wire); err != nil {
		return nil, err
	}

	trades := make([]model.Trade, len(wire))
	for i, tw := range wire {
		trades[i] = tw.Trade()
	}

	return trades, nil
}
