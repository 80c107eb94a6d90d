package dispatch

import (
	"encoding/json"
	"fmt"

	"github.com/tickerdesk/marketview/internal/model"
	"github.com/tickerdesk/marketview/internal/stream"
)

// Targets the venue pushes over the stream.
const (
	TargetLastOrders = "last_orders"
	TargetNewTrades  = "new_trades"
	TargetBalance    = "balance"
)

// Classify maps one raw frame to an action. It is pure: same bytes,
// same action. Parse failures and unrecognized (type, target) pairs
// yield Ignore, never an error.
func Classify(data []byte) Action {
	var frame stream.Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		return Ignore{Reason: fmt.Sprintf("malformed frame: %v", err)}
	}

	switch {
	case frame.Type == stream.FrameBroadcast && frame.Target == TargetLastOrders:
		var wire model.BookWire
		if err := json.Unmarshal(frame.Data, &wire); err != nil {
			return Ignore{Reason: fmt.Sprintf("malformed last_orders payload: %v", err)}
		}
		book, dropped := wire.Book()
		return ReplaceOrders{Book: book, Dropped: dropped}

	case frame.Type == stream.FrameBroadcast && frame.Target == TargetNewTrades:
		var wire model.NewTradesWire
		if err := json.Unmarshal(frame.Data, &wire); err != nil {
			return Ignore{Reason: fmt.Sprintf("malformed new_trades payload: %v", err)}
		}
		return AppendTrades{Trades: wire.Trades()}

	case frame.Type == stream.FrameUpdate && frame.Target == TargetBalance:
		var wire model.BalanceWire
		if err := json.Unmarshal(frame.Data, &wire); err != nil {
			return Ignore{Reason: fmt.Sprintf("malformed balance payload: %v", err)}
		}
		return SetBalance{Balance: wire.Balance()}

	default:
		return Ignore{Reason: fmt.Sprintf("unrecognized frame type=%q target=%q", frame.Type, frame.Target)}
	}
}
