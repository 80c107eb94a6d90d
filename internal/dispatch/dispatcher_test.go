package dispatch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/tickerdesk/marketview/internal/stream"
)

// recordingApplier collects actions for inspection.
type recordingApplier struct {
	mu      sync.Mutex
	actions []Action
}

func (r *recordingApplier) Apply(a Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, a)
}

func (r *recordingApplier) snapshot() []Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Action(nil), r.actions...)
}

func runDispatcher(t *testing.T, frames ...string) (*recordingApplier, *Dispatcher) {
	t.Helper()

	ch := make(chan stream.RawFrame, len(frames))
	for _, f := range frames {
		ch <- stream.RawFrame{Data: []byte(f), ReceivedAt: time.Now()}
	}
	close(ch)

	applier := &recordingApplier{}
	d := NewDispatcher(ch, applier, nil)
	d.Run(context.Background())
	return applier, d
}

func TestDispatcher_AppliesInArrivalOrder(t *testing.T) {
	applier, _ := runDispatcher(t,
		`{"type":"broadcast","target":"last_orders","data":{"buy":[],"sell":[]}}`,
		`{"type":"update","target":"balance","data":{"currency":"usd","amount":"10"}}`,
		`{"type":"broadcast","target":"new_trades","data":{"newTrades":[{"price":"1.11","qty":"1","createdAt":"t1"}]}}`,
	)

	actions := applier.snapshot()
	if len(actions) != 3 {
		t.Fatalf("applied %d actions, want 3", len(actions))
	}
	if _, ok := actions[0].(ReplaceOrders); !ok {
		t.Errorf("action 0 = %T, want ReplaceOrders", actions[0])
	}
	if _, ok := actions[1].(SetBalance); !ok {
		t.Errorf("action 1 = %T, want SetBalance", actions[1])
	}
	if _, ok := actions[2].(AppendTrades); !ok {
		t.Errorf("action 2 = %T, want AppendTrades", actions[2])
	}
}

func TestDispatcher_IgnoresMalformedFrames(t *testing.T) {
	applier, d := runDispatcher(t,
		`not json at all`,
		`{"type":"broadcast","target":"mystery","data":{}}`,
		`{"type":"update","target":"balance","data":{"currency":"eur","amount":"5"}}`,
	)

	if got := len(applier.snapshot()); got != 1 {
		t.Errorf("applied %d actions, want 1", got)
	}
	processed, ignored := d.Stats()
	if processed != 1 {
		t.Errorf("processed = %d, want 1", processed)
	}
	if ignored != 2 {
		t.Errorf("ignored = %d, want 2", ignored)
	}
}

func TestDispatcher_StopsOnContextCancel(t *testing.T) {
	ch := make(chan stream.RawFrame)
	d := NewDispatcher(ch, &recordingApplier{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
