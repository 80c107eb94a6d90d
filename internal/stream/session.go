package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jpillora/backoff"

	"github.com/tickerdesk/marketview/internal/model"
)

// SessionConfig holds stream session settings.
type SessionConfig struct {
	URL   string
	Token string // bearer token; empty means unauthenticated

	ReconnectBaseDelay time.Duration
	ReconnectMaxDelay  time.Duration
	PingTimeout        time.Duration
	WriteTimeout       time.Duration
	BufferSize         int
}

// Session owns the connection lifecycle: connect, authenticate,
// subscribe, detect closure, reconnect. The subscription for the
// active symbol is desired state: it is replayed, after auth, on every
// (re)open.
type Session struct {
	cfg    SessionConfig
	logger *slog.Logger
	id     uuid.UUID

	mu      sync.RWMutex
	state   State
	client  *Client
	desired model.Symbol

	frames chan RawFrame
	events chan Event

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSession creates a session. It does not connect until Start.
func NewSession(cfg SessionConfig, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ReconnectBaseDelay <= 0 {
		cfg.ReconnectBaseDelay = time.Second
	}
	if cfg.ReconnectMaxDelay <= 0 {
		cfg.ReconnectMaxDelay = time.Minute
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.BufferSize < 1 {
		cfg.BufferSize = 256
	}

	id := uuid.New()
	return &Session{
		cfg:    cfg,
		logger: logger.With("session", id.String()[:8]),
		id:     id,
		state:  StateConnecting,
		frames: make(chan RawFrame, cfg.BufferSize),
		events: make(chan Event, 16),
	}
}

// Start launches the connect/read/reconnect loop and returns
// immediately; the first Opened event signals a live connection.
func (s *Session) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.run()
}

// Stop shuts the session down and waits for the loop to exit.
func (s *Session) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("stream session stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Send writes a frame while the session is open. Otherwise the frame
// is dropped and ErrNotConnected returned; frames are never queued, so
// a reconnect cannot replay stale sends.
func (s *Session) Send(f Frame) error {
	s.mu.RLock()
	state := s.state
	client := s.client
	s.mu.RUnlock()

	if state != StateOpen || client == nil {
		return ErrNotConnected
	}
	return sendFrame(client, f)
}

// Subscribe records the symbol as the session's desired subscription
// and sends the subscribe frame if the session is open. When it is
// not, the frame is sent on the next open instead.
func (s *Session) Subscribe(symbol model.Symbol) {
	s.mu.Lock()
	s.desired = symbol
	s.mu.Unlock()

	if err := s.Send(SubscribeFrame(symbol)); err != nil {
		s.logger.Debug("subscribe deferred until open", "symbol", symbol)
	}
}

// Frames returns inbound frames in transport arrival order.
func (s *Session) Frames() <-chan RawFrame {
	return s.frames
}

// Events returns session state transitions.
func (s *Session) Events() <-chan Event {
	return s.events
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// run is the connect/pump/reconnect loop.
func (s *Session) run() {
	defer s.wg.Done()

	b := &backoff.Backoff{
		Min:    s.cfg.ReconnectBaseDelay,
		Max:    s.cfg.ReconnectMaxDelay,
		Jitter: true,
	}

	for {
		client, err := s.open()
		if err != nil {
			if s.ctx.Err() != nil {
				return
			}
			s.setState(StateClosed, err)
			wait := b.Duration()
			s.logger.Warn("connect failed", "error", err, "retry_in", wait)
			if !s.sleep(wait) {
				return
			}
			s.setState(StateConnecting, nil)
			continue
		}

		b.Reset()
		err = s.pump(client)
		client.Close()

		if s.ctx.Err() != nil {
			s.setState(StateClosed, nil)
			return
		}

		s.setState(StateClosed, err)
		wait := b.Duration()
		s.logger.Warn("stream disconnected", "error", err, "reconnect_in", wait)
		if !s.sleep(wait) {
			return
		}
		s.setState(StateConnecting, nil)
	}
}

// open dials one connection and brings the session to OPEN: auth frame
// first when a token is held, then the desired subscribe. The server
// must authenticate the connection before it processes subscriptions
// tied to a user.
func (s *Session) open() (*Client, error) {
	client := NewClient(ClientConfig{
		URL:          s.cfg.URL,
		PingTimeout:  s.cfg.PingTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BufferSize:   s.cfg.BufferSize,
	}, s.logger)

	if err := client.Connect(s.ctx); err != nil {
		return nil, err
	}

	if s.cfg.Token != "" {
		if err := sendFrame(client, AuthFrame(s.cfg.Token)); err != nil {
			client.Close()
			return nil, err
		}
	}

	s.mu.Lock()
	s.client = client
	s.state = StateOpen
	desired := s.desired
	s.mu.Unlock()

	if desired != model.NoSymbol {
		if err := sendFrame(client, SubscribeFrame(desired)); err != nil {
			s.logger.Warn("subscribe replay failed", "symbol", desired, "error", err)
		}
	}

	s.notify(Event{State: StateOpen})
	s.logger.Info("stream session open",
		"authenticated", s.cfg.Token != "",
		"symbol", desired,
	)

	return client, nil
}

// pump forwards frames until the connection fails or the session stops.
func (s *Session) pump(client *Client) error {
	for {
		select {
		case <-s.ctx.Done():
			return nil

		case err := <-client.Errors():
			return err

		case frame, ok := <-client.Frames():
			if !ok {
				return nil
			}
			select {
			case s.frames <- frame:
			case <-s.ctx.Done():
				return nil
			}
		}
	}
}

// setState transitions the session and emits an event.
func (s *Session) setState(state State, err error) {
	s.mu.Lock()
	s.state = state
	if state != StateOpen {
		s.client = nil
	}
	s.mu.Unlock()

	s.notify(Event{State: state, Err: err})
}

// notify sends an event without blocking, dropping the oldest when the
// consumer lags.
func (s *Session) notify(ev Event) {
	select {
	case s.events <- ev:
	default:
		select {
		case <-s.events:
			s.events <- ev
		default:
		}
	}
}

// sleep waits for the backoff interval; false means the session is
// shutting down.
func (s *Session) sleep(d time.Duration) bool {
	select {
	case <-s.ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

func sendFrame(client *Client, f Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return client.Send(data)
}
