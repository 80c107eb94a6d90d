// Package state holds the live market view: order-book top levels and
// the trade tape for the single active symbol, plus per-currency
// balances that survive symbol switches. The Store is the one
// transition path for both REST snapshots and stream updates; the
// Subscription drives symbol changes and snapshot refreshes around it.
package state
