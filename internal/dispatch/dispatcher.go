package dispatch

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/tickerdesk/marketview/internal/stream"
)

// Dispatcher consumes inbound frames, classifies them, and applies the
// resulting actions to the store. It is the only writer on the live
// update path, so frames take effect strictly in arrival order.
type Dispatcher struct {
	frames  <-chan stream.RawFrame
	applier Applier
	logger  *slog.Logger

	processed atomic.Int64
	ignored   atomic.Int64
}

// NewDispatcher creates a dispatcher reading from frames and applying
// to applier.
func NewDispatcher(frames <-chan stream.RawFrame, applier Applier, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		frames:  frames,
		applier: applier,
		logger:  logger.With("component", "dispatcher"),
	}
}

// Run processes frames until ctx is cancelled or the frame channel
// closes.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case frame, ok := <-d.frames:
			if !ok {
				return
			}
			d.dispatch(frame)
		}
	}
}

// Stats returns processed and ignored frame counts.
func (d *Dispatcher) Stats() (processed, ignored int64) {
	return d.processed.Load(), d.ignored.Load()
}

func (d *Dispatcher) dispatch(frame stream.RawFrame) {
	action := Classify(frame.Data)

	switch a := action.(type) {
	case Ignore:
		d.ignored.Add(1)
		d.logger.Warn("frame ignored", "reason", a.Reason)
		return

	case ReplaceOrders:
		if a.Dropped > 0 {
			d.logger.Warn("order levels rejected",
				"dropped", a.Dropped,
				"kept", len(a.Book.Buy)+len(a.Book.Sell),
			)
		}
	}

	d.applier.Apply(action)
	d.processed.Add(1)
}
