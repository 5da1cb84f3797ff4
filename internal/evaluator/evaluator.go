package evaluator

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/holdem-engine/internal/deck"
)

var (
	// ErrInvalidCardCount is returned when fewer than 5 or more than 7 cards are given.
	ErrInvalidCardCount = errors.New("evaluator: need between 5 and 7 cards")
	// ErrDuplicateCard is returned when the same card appears twice.
	ErrDuplicateCard = errors.New("evaluator: duplicate card")
)

// Evaluate returns the best five card hand that can be made from cards.
func Evaluate(cards []deck.Card) (Hand, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return Hand{}, fmt.Errorf("%w: got %d", ErrInvalidCardCount, len(cards))
	}
	seen := make(map[deck.Card]struct{}, len(cards))
	for _, c := range cards {
		if !c.Valid() {
			return Hand{}, fmt.Errorf("evaluator: invalid card %v", c)
		}
		if _, dup := seen[c]; dup {
			return Hand{}, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen[c] = struct{}{}
	}

	var (
		best    Hand
		bestKey uint32
		found   bool
		subset  [5]deck.Card
	)
	n := len(cards)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						subset = [5]deck.Card{cards[a], cards[b], cards[c], cards[d], cards[e]}
						h := score5(subset)
						if k := h.Key(); !found || k > bestKey {
							best, bestKey, found = h, k, true
						}
					}
				}
			}
		}
	}
	return best, nil
}

// MustEvaluate is Evaluate for input that is already known to be valid.
func MustEvaluate(cards []deck.Card) Hand {
	h, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return h
}

// score5 ranks exactly five cards.
func score5(cards [5]deck.Card) Hand {
	sorted := cards
	slices.SortFunc(sorted[:], func(a, b deck.Card) int {
		// rank descending, then suit for a stable card order
		if a.Rank != b.Rank {
			return int(b.Rank) - int(a.Rank)
		}
		return int(a.Suit) - int(b.Suit)
	})

	flush := true
	for _, c := range sorted[1:] {
		if c.Suit != sorted[0].Suit {
			flush = false
			break
		}
	}

	straightHigh, wheel := straightHighCard(sorted)

	// groups: rank counts ordered by count then rank, both descending
	type group struct {
		rank  deck.Rank
		count int
	}
	var groups []group
	for _, c := range sorted {
		if len(groups) > 0 && groups[len(groups)-1].rank == c.Rank {
			groups[len(groups)-1].count++
			continue
		}
		groups = append(groups, group{rank: c.Rank, count: 1})
	}
	slices.SortStableFunc(groups, func(a, b group) int {
		if a.count != b.count {
			return b.count - a.count
		}
		return int(b.rank) - int(a.rank)
	})

	kickers := make([]deck.Rank, len(groups))
	for i, g := range groups {
		kickers[i] = g.rank
	}

	// cards ordered by group so the made part of the hand comes first
	ordered := make([]deck.Card, 0, 5)
	for _, g := range groups {
		for _, c := range sorted {
			if c.Rank == g.rank {
				ordered = append(ordered, c)
			}
		}
	}

	switch {
	case straightHigh != 0 && flush:
		return Hand{Category: StraightFlush, Cards: straightOrder(sorted, wheel), Kickers: []deck.Rank{straightHigh}}
	case groups[0].count == 4:
		return Hand{Category: FourOfAKind, Cards: ordered, Kickers: kickers}
	case groups[0].count == 3 && groups[1].count == 2:
		return Hand{Category: FullHouse, Cards: ordered, Kickers: kickers}
	case flush:
		return Hand{Category: Flush, Cards: ordered, Kickers: kickers}
	case straightHigh != 0:
		return Hand{Category: Straight, Cards: straightOrder(sorted, wheel), Kickers: []deck.Rank{straightHigh}}
	case groups[0].count == 3:
		return Hand{Category: ThreeOfAKind, Cards: ordered, Kickers: kickers}
	case groups[0].count == 2 && groups[1].count == 2:
		return Hand{Category: TwoPair, Cards: ordered, Kickers: kickers}
	case groups[0].count == 2:
		return Hand{Category: OnePair, Cards: ordered, Kickers: kickers}
	default:
		return Hand{Category: HighCard, Cards: ordered, Kickers: kickers}
	}
}

// straightHighCard returns the high card of a straight, or zero. Cards must be
// sorted by rank descending. The wheel (A-2-3-4-5) is Five-high.
func straightHighCard(sorted [5]deck.Card) (high deck.Rank, wheel bool) {
	for i := 1; i < 5; i++ {
		if sorted[i-1].Rank != sorted[i].Rank+1 {
			if i == 1 && sorted[0].Rank == deck.Ace && sorted[1].Rank == deck.Five &&
				sorted[2].Rank == deck.Four && sorted[3].Rank == deck.Three && sorted[4].Rank == deck.Two {
				return deck.Five, true
			}
			return 0, false
		}
	}
	return sorted[0].Rank, false
}

// straightOrder moves the ace of a wheel to the bottom.
func straightOrder(sorted [5]deck.Card, wheel bool) []deck.Card {
	if !wheel {
		return sorted[:]
	}
	return append(append([]deck.Card{}, sorted[1:]...), sorted[0])
}
