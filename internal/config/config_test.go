package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	yaml := `
venue:
  rest_url: https://api.tickerdesk.dev
  ws_url: wss://api.tickerdesk.dev/ws
  token: abc123
symbols:
  - usd-eur
  - usd-gbp
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Venue.RestURL != "https://api.tickerdesk.dev" {
		t.Errorf("Venue.RestURL = %q, want %q", cfg.Venue.RestURL, "https://api.tickerdesk.dev")
	}
	if cfg.Venue.Token != "abc123" {
		t.Errorf("Venue.Token = %q, want %q", cfg.Venue.Token, "abc123")
	}
	if len(cfg.Symbols) != 2 || cfg.Symbols[0] != "usd-eur" {
		t.Errorf("Symbols = %v, want [usd-eur usd-gbp]", cfg.Symbols)
	}
}

func TestLoadEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_VENUE_TOKEN", "secret123")

	yaml := `
venue:
  rest_url: https://api.tickerdesk.dev
  ws_url: wss://api.tickerdesk.dev/ws
  token: ${TEST_VENUE_TOKEN}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Venue.Token != "secret123" {
		t.Errorf("Venue.Token = %q, want %q", cfg.Venue.Token, "secret123")
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeTempFile(t, "venue:\n  token: abc\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Check defaults were applied
	if cfg.Venue.RestURL != DefaultRestURL {
		t.Errorf("Venue.RestURL = %q, want default %q", cfg.Venue.RestURL, DefaultRestURL)
	}
	if cfg.Stream.ReconnectBaseDelay != DefaultReconnectBaseDelay {
		t.Errorf("Stream.ReconnectBaseDelay = %v, want default %v", cfg.Stream.ReconnectBaseDelay, DefaultReconnectBaseDelay)
	}
	if cfg.Snapshot.Timeout != DefaultSnapshotTimeout {
		t.Errorf("Snapshot.Timeout = %v, want default %v", cfg.Snapshot.Timeout, DefaultSnapshotTimeout)
	}
	if len(cfg.Symbols) != 3 || cfg.Symbols[0] != "usd-eur" {
		t.Errorf("Symbols = %v, want default pairs", cfg.Symbols)
	}
	if cfg.Status.Port != DefaultStatusPort {
		t.Errorf("Status.Port = %d, want default %d", cfg.Status.Port, DefaultStatusPort)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeTempFile(t, "venue:\n  ws_url: https://not-a-ws-url\n")

	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted a ws_url with the wrong scheme")
	}
}

func TestValidate(t *testing.T) {
	valid := func() ViewerConfig {
		return ViewerConfig{
			Venue: VenueConfig{
				RestURL: "https://api.tickerdesk.dev",
				WSURL:   "wss://api.tickerdesk.dev/ws",
			},
			Stream: StreamConfig{
				ReconnectBaseDelay: time.Second,
				ReconnectMaxDelay:  time.Minute,
				BufferSize:         256,
			},
			Symbols: []string{"usd-eur"},
			Status:  StatusConfig{Port: 8090},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*ViewerConfig)
		wantErr string
	}{
		{
			name:    "valid config",
			mutate:  func(c *ViewerConfig) {},
			wantErr: "",
		},
		{
			name:    "missing rest url",
			mutate:  func(c *ViewerConfig) { c.Venue.RestURL = "" },
			wantErr: "venue.rest_url is required",
		},
		{
			name:    "ws url wrong scheme",
			mutate:  func(c *ViewerConfig) { c.Venue.WSURL = "https://api.tickerdesk.dev/ws" },
			wantErr: `venue.ws_url must use ws:// or wss://, got "https://api.tickerdesk.dev/ws"`,
		},
		{
			name: "base delay exceeds max delay",
			mutate: func(c *ViewerConfig) {
				c.Stream.ReconnectBaseDelay = time.Minute
				c.Stream.ReconnectMaxDelay = time.Second
			},
			wantErr: "stream.reconnect_base_delay (1m0s) cannot exceed reconnect_max_delay (1s)",
		},
		{
			name:    "empty symbols",
			mutate:  func(c *ViewerConfig) { c.Symbols = nil },
			wantErr: "symbols must list at least one pair",
		},
		{
			name:    "blank symbol entry",
			mutate:  func(c *ViewerConfig) { c.Symbols = []string{"usd-eur", ""} },
			wantErr: "symbols must not contain empty entries",
		},
		{
			name:    "status port out of range",
			mutate:  func(c *ViewerConfig) { c.Status.Port = 70000 },
			wantErr: "status.port must be between 1 and 65535, got 70000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
