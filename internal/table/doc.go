// Package table runs a sequence of hands for one session.
//
// A Table owns its seats, the button, an event log and per-seat statistics.
// Computer seats act synchronously inside StartHand and Act until a human
// seat must decide or the hand is over, so every call returns a complete
// Snapshot and nothing runs in the background.
//
// Manager keeps many tables apart, keyed by UUID, with one lock per session
// and idle expiry driven by an injected clock.
package table
