package evaluator

import (
	"fmt"

	"github.com/lox/holdem-engine/internal/deck"
)

// Hand is the best five card hand found by Evaluate.
type Hand struct {
	Category Category
	Cards    []deck.Card // the five cards making the hand, most significant first
	Kickers  []deck.Rank // tie-break ranks in order of significance
}

// Key packs the category and kickers into a value that orders hands: a
// larger key is a stronger hand and equal keys split.
func (h Hand) Key() uint32 {
	key := uint32(h.Category) << 20
	for i := 0; i < 5 && i < len(h.Kickers); i++ {
		key |= uint32(h.Kickers[i]) << (16 - 4*i)
	}
	return key
}

// Compare returns -1 if h is weaker than other, 0 on a split and 1 if h is stronger.
func (h Hand) Compare(other Hand) int {
	a, b := h.Key(), other.Key()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// IsRoyal reports whether the hand is an ace-high straight flush.
func (h Hand) IsRoyal() bool {
	return h.Category == StraightFlush && len(h.Kickers) > 0 && h.Kickers[0] == deck.Ace
}

// String returns a string representation of the hand
func (h Hand) String() string {
	return fmt.Sprintf("%s [%s]", h.Describe(), deck.FormatCards(h.Cards))
}

// Describe names the hand the way a dealer would, e.g.
// "Full House, Sevens over Twos" or "High Card, King".
func (h Hand) Describe() string {
	k := h.Kickers
	if len(k) == 0 {
		return h.Category.String()
	}
	switch h.Category {
	case HighCard:
		return "High Card, " + k[0].Name()
	case OnePair:
		return "Pair of " + k[0].Plural()
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", k[0].Plural(), k[1].Plural())
	case ThreeOfAKind:
		return "Three of a Kind, " + k[0].Plural()
	case Straight:
		return fmt.Sprintf("Straight, %s-high", k[0].Name())
	case Flush:
		return fmt.Sprintf("Flush, %s-high", k[0].Name())
	case FullHouse:
		return fmt.Sprintf("Full House, %s over %s", k[0].Plural(), k[1].Plural())
	case FourOfAKind:
		return "Four of a Kind, " + k[0].Plural()
	case StraightFlush:
		if h.IsRoyal() {
			return "Royal Flush"
		}
		return fmt.Sprintf("Straight Flush, %s-high", k[0].Name())
	default:
		return h.Category.String()
	}
}

// Explain compares two hands and describes why the stronger one wins.
func (h Hand) Explain(other Hand) (int, string) {
	result := h.Compare(other)
	if result == 0 {
		return 0, fmt.Sprintf("split pot, both hold %s", h.Describe())
	}

	winner, loser := h, other
	if result < 0 {
		winner, loser = other, h
	}

	if winner.Category != loser.Category {
		return result, fmt.Sprintf("%s beats %s", winner.Describe(), loser.Describe())
	}

	for i := range winner.Kickers {
		if i >= len(loser.Kickers) || winner.Kickers[i] == loser.Kickers[i] {
			continue
		}
		return result, fmt.Sprintf("%s beats %s (%s, %s vs %s)",
			winner.Describe(), loser.Describe(), kickerLabel(winner.Category, i),
			winner.Kickers[i].Name(), loser.Kickers[i].Name())
	}
	return result, fmt.Sprintf("%s beats %s", winner.Describe(), loser.Describe())
}

// kickerLabel names the i'th tie-break position of a category.
func kickerLabel(c Category, i int) string {
	switch c {
	case OnePair:
		if i == 0 {
			return "higher pair"
		}
	case TwoPair:
		switch i {
		case 0:
			return "higher top pair"
		case 1:
			return "higher bottom pair"
		}
	case ThreeOfAKind:
		if i == 0 {
			return "higher trips"
		}
	case FullHouse:
		if i == 0 {
			return "higher trips"
		}
		return "higher pair"
	case FourOfAKind:
		if i == 0 {
			return "higher quads"
		}
	case Straight, StraightFlush:
		return "higher straight"
	case Flush:
		return "higher flush card"
	}
	return "higher kicker"
}
