// Package dispatch classifies inbound stream frames into typed actions
// and applies them to the market state in arrival order. Classification
// is a pure function over the frame's (type, target) pair; unrecognized
// or malformed frames become Ignore actions and never take the
// connection down.
package dispatch
