package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultRestURL            = "http://localhost:8000"
	DefaultWSURL              = "ws://localhost:8080/ws"
	DefaultReconnectBaseDelay = 1 * time.Second
	DefaultReconnectMaxDelay  = 60 * time.Second
	DefaultPingTimeout        = 45 * time.Second
	DefaultWriteTimeout       = 10 * time.Second
	DefaultBufferSize         = 256
	DefaultSnapshotTimeout    = 10 * time.Second
	DefaultMaxRetries         = 2
	DefaultRetryBackoff       = 250 * time.Millisecond
	DefaultStatusPort         = 8090
)

// DefaultSymbols are the venue's standard pairs, used when the config
// lists none.
var DefaultSymbols = []string{"usd-eur", "usd-gbp", "usd-jpy"}

func (c *ViewerConfig) applyDefaults() {
	if c.Venue.RestURL == "" {
		c.Venue.RestURL = DefaultRestURL
	}
	if c.Venue.WSURL == "" {
		c.Venue.WSURL = DefaultWSURL
	}

	if c.Stream.ReconnectBaseDelay == 0 {
		c.Stream.ReconnectBaseDelay = DefaultReconnectBaseDelay
	}
	if c.Stream.ReconnectMaxDelay == 0 {
		c.Stream.ReconnectMaxDelay = DefaultReconnectMaxDelay
	}
	if c.Stream.PingTimeout == 0 {
		c.Stream.PingTimeout = DefaultPingTimeout
	}
	if c.Stream.WriteTimeout == 0 {
		c.Stream.WriteTimeout = DefaultWriteTimeout
	}
	if c.Stream.BufferSize == 0 {
		c.Stream.BufferSize = DefaultBufferSize
	}

	if c.Snapshot.Timeout == 0 {
		c.Snapshot.Timeout = DefaultSnapshotTimeout
	}
	if c.Snapshot.MaxRetries == 0 {
		c.Snapshot.MaxRetries = DefaultMaxRetries
	}
	if c.Snapshot.RetryBackoff == 0 {
		c.Snapshot.RetryBackoff = DefaultRetryBackoff
	}

	if len(c.Symbols) == 0 {
		c.Symbols = append([]string(nil), DefaultSymbols...)
	}

	if c.Status.Port == 0 {
		c.Status.Port = DefaultStatusPort
	}
}
