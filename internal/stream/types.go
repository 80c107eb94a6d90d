package stream

import (
	"errors"
	"time"
)

// RawFrame is one inbound message with its local receive timestamp.
type RawFrame struct {
	Data       []byte
	ReceivedAt time.Time
}

// ClientConfig holds settings for a single WebSocket connection.
type ClientConfig struct {
	URL          string
	PingTimeout  time.Duration
	WriteTimeout time.Duration
	BufferSize   int
}

// State is the lifecycle phase of a stream session.
type State int

const (
	StateConnecting State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Event signals a session state transition. Err carries the close
// cause for StateClosed, nil otherwise.
type Event struct {
	State State
	Err   error
}

var (
	// ErrNotConnected is returned by Send while the session is not
	// open. The frame is dropped, not queued.
	ErrNotConnected = errors.New("stream not connected")

	// ErrAlreadyClosed is returned when connecting a closed client.
	ErrAlreadyClosed = errors.New("client already closed")

	// ErrStaleConnection is reported when no ping activity is seen
	// within the configured timeout.
	ErrStaleConnection = errors.New("stale connection: no ping received")
)
