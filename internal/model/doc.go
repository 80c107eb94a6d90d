// Package model defines the shared data types of the market view core.
//
// Conventions:
//   - Prices and quantities: decimal.Decimal (the venue sends JSON numbers)
//   - Trade timestamps: opaque strings, passed through to consumers as-is
//   - Symbols: lowercase pair identifiers (e.g. "usd-eur")
//
// Wire types mirror the venue's JSON payloads and carry the validated
// conversion into internal types; the REST snapshot path and the stream
// update path share these conversions.
package model
