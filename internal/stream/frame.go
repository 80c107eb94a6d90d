package stream

import (
	"encoding/json"

	"github.com/tickerdesk/marketview/internal/model"
)

// Frame types exchanged over the stream connection.
const (
	FrameAuth      = "auth"
	FrameSubscribe = "subscribe"
	FrameBroadcast = "broadcast"
	FrameUpdate    = "update"
)

// Frame is one discrete JSON message exchanged over the connection.
// Target disambiguates the payload shape within a type; Data is left
// raw for the dispatcher to decode.
type Frame struct {
	Type   string          `json:"type"`
	Target string          `json:"target,omitempty"`
	Token  string          `json:"token,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// AuthFrame builds the authentication frame. The server must see it
// before any subscribe frame so user-scoped pushes (balance) attach to
// this connection.
func AuthFrame(token string) Frame {
	return Frame{Type: FrameAuth, Token: "Bearer " + token}
}

// SubscribeFrame builds the subscription frame for a symbol.
func SubscribeFrame(symbol model.Symbol) Frame {
	return Frame{Type: FrameSubscribe, Target: string(symbol)}
}
