package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *ViewerConfig) Validate() error {
	if c.Venue.RestURL == "" {
		return errors.New("venue.rest_url is required")
	}
	if c.Venue.WSURL == "" {
		return errors.New("venue.ws_url is required")
	}
	if !strings.HasPrefix(c.Venue.WSURL, "ws://") && !strings.HasPrefix(c.Venue.WSURL, "wss://") {
		return fmt.Errorf("venue.ws_url must use ws:// or wss://, got %q", c.Venue.WSURL)
	}

	if c.Stream.ReconnectBaseDelay > c.Stream.ReconnectMaxDelay {
		return fmt.Errorf("stream.reconnect_base_delay (%s) cannot exceed reconnect_max_delay (%s)",
			c.Stream.ReconnectBaseDelay, c.Stream.ReconnectMaxDelay)
	}
	if c.Stream.BufferSize < 1 {
		return errors.New("stream.buffer_size must be >= 1")
	}

	if c.Snapshot.MaxRetries < 0 {
		return errors.New("snapshot.max_retries must be >= 0")
	}

	if len(c.Symbols) == 0 {
		return errors.New("symbols must list at least one pair")
	}
	for _, s := range c.Symbols {
		if s == "" {
			return errors.New("symbols must not contain empty entries")
		}
	}

	if c.Status.Port < 1 || c.Status.Port > 65535 {
		return fmt.Errorf("status.port must be between 1 and 65535, got %d", c.Status.Port)
	}

	return nil
}
