// Package snapshot provides the REST client for point-in-time market
// snapshots, used to (re)initialize buffered state on a symbol change.
//
// Endpoints consumed:
//   - GET /orders/last/{symbol} -> {buy, sell} order levels
//   - GET /trades/last/{symbol} -> recent trades, oldest first
//
// Non-2xx responses surface as *SnapshotUnavailableError; callers leave
// prior state visible rather than clearing the view.
package snapshot
