// Package evaluator ranks Texas Hold'em hands.
//
// Evaluate takes five to seven cards, scores every five card subset and
// returns the best one as a Hand. Hands compare by category first and then
// by a kicker sequence whose meaning depends on the category. Key packs both
// into a single integer so hands can be ordered without allocation.
package evaluator
