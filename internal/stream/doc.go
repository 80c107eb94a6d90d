// Package stream implements the persistent connection to the venue.
//
// Two layers:
//   - Client: one WebSocket connection (dial, framed read/write, ping
//     keepalive, closure detection)
//   - Session: the lifecycle above it (CONNECTING -> OPEN -> CLOSED,
//     auth frame before any subscribe, reconnect with exponential
//     backoff and jitter, re-auth + re-subscribe after reconnect)
//
// Inbound frames are delivered in transport arrival order; the session
// never reorders or buffers beyond the transport.
package stream
