package config

import "time"

// ViewerConfig is the root configuration for a viewer instance.
type ViewerConfig struct {
	Venue    VenueConfig    `yaml:"venue"`
	Stream   StreamConfig   `yaml:"stream"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Symbols  []string       `yaml:"symbols"`
	Status   StatusConfig   `yaml:"status"`
}

// VenueConfig holds trading venue endpoints and credentials.
type VenueConfig struct {
	RestURL string `yaml:"rest_url"`
	WSURL   string `yaml:"ws_url"`
	Token   string `yaml:"token"` // bearer token; empty runs unauthenticated
}

// StreamConfig holds WebSocket session settings.
type StreamConfig struct {
	ReconnectBaseDelay time.Duration `yaml:"reconnect_base_delay"`
	ReconnectMaxDelay  time.Duration `yaml:"reconnect_max_delay"`
	PingTimeout        time.Duration `yaml:"ping_timeout"`
	WriteTimeout       time.Duration `yaml:"write_timeout"`
	BufferSize         int           `yaml:"buffer_size"`
}

// SnapshotConfig holds REST snapshot client settings.
type SnapshotConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

// StatusConfig holds the status HTTP endpoint settings.
type StatusConfig struct {
	Port int `yaml:"port"`
}
