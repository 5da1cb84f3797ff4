// Package game implements a single hand of no-limit Texas Hold'em.
//
// A HandState owns everything that lives for one hand: the deck, the
// community cards, every seat's contribution and the betting round. Actions
// are applied one at a time with Apply; an illegal action returns an
// *ActionError and leaves the state untouched.
//
// # Lifecycle
//
//	PreFlop -> Flop -> Turn -> River -> Showdown -> HandComplete
//
// Rounds only move forward. When every seat but one folds the hand jumps to
// HandComplete. When at most one seat can still bet the remaining board is
// dealt without betting, still passing through each round so the event
// stream sees every street.
//
// # Pots
//
// Chips stay on the seats as Bet/TotalBet until settlement. BuildPots then
// splits them into tiers at every distinct contribution level of the seats
// still in the hand; each tier is awarded on its own. A tier with a single
// eligible seat is returned without evaluation, which is how uncalled bets
// come back.
//
// # Events
//
// HandState publishes HandStartEvent, BlindsPostedEvent, PlayerActionEvent,
// StreetChangeEvent, ShowdownEvent, PotAwardedEvent and HandEndEvent on the
// EventBus supplied with WithEventBus.
package game
