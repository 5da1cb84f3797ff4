package bot

import (
	"fmt"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
)

// Strength is an estimate of how good a holding is, in [0,1].
type Strength struct {
	Value float64
	Made  string // the made hand, or the starting hand key pre-flop
	Outs  int
	Draw  string
}

func (s Strength) String() string {
	desc := s.Made
	if s.Draw != "" {
		desc += " + " + s.Draw
	}
	return fmt.Sprintf("%.2f (%s)", s.Value, desc)
}

// categoryBase is the strength of the weakest hand in each category.
var categoryBase = [...]float64{
	evaluator.HighCard:      0.08,
	evaluator.OnePair:       0.30,
	evaluator.TwoPair:       0.50,
	evaluator.ThreeOfAKind:  0.62,
	evaluator.Straight:      0.72,
	evaluator.Flush:         0.78,
	evaluator.FullHouse:     0.88,
	evaluator.FourOfAKind:   0.95,
	evaluator.StraightFlush: 0.99,
}

// kickerSpan is how much the leading rank can add inside a category.
const kickerSpan = 0.08

// HandStrength rates hole cards against the board. Pre-flop it uses the
// starting hand table; afterwards the made hand sets a base that the top
// rank refines, and draws add their chance of completing by the river.
func HandStrength(hole, community []deck.Card) Strength {
	if len(community) < 3 {
		key, ok := deck.StartingHandKey(hole)
		if !ok {
			return Strength{Made: "no cards"}
		}
		return Strength{Value: deck.StartingHandPercentile(hole), Made: key}
	}

	cards := append(append([]deck.Card{}, hole...), community...)
	hand, err := evaluator.Evaluate(cards)
	if err != nil {
		return Strength{Made: "unknown"}
	}

	value := categoryBase[hand.Category]
	if len(hand.Kickers) > 0 {
		value += kickerSpan * float64(hand.Kickers[0]-deck.Two) / float64(deck.Ace-deck.Two)
	}

	// hole cards that add nothing to a full board are worth much less
	if len(community) == 5 {
		if board, err := evaluator.Evaluate(community); err == nil && board.Compare(hand) == 0 {
			value *= 0.6
		}
	}

	s := Strength{Made: hand.Describe()}
	if toCome := 5 - len(community); toCome > 0 {
		s.Outs, s.Draw = drawOuts(hole, community, hand.Category)
		// rule of 2 and 4
		value += float64(s.Outs*2*toCome) / 100
	}
	s.Value = min(1, max(0, value))
	return s
}

// drawOuts counts outs for flush and straight draws that use at least one
// hole card. Made flushes and straights have no draw.
func drawOuts(hole, community []deck.Card, made evaluator.Category) (int, string) {
	all := append(append([]deck.Card{}, hole...), community...)
	outs := 0
	var names []string

	if made < evaluator.Flush {
		suits := map[deck.Suit]int{}
		for _, c := range all {
			suits[c.Suit]++
		}
		for _, h := range hole {
			if suits[h.Suit] == 4 {
				outs += 9
				names = append(names, "flush draw")
				break
			}
		}
	}

	if made < evaluator.Straight {
		switch straightOuts(all, hole) {
		case 0:
		case 1:
			outs += 4
			names = append(names, "gutshot")
		default:
			outs += 8
			names = append(names, "open-ended straight draw")
		}
	}

	outs = min(outs, 15)
	draw := ""
	for i, n := range names {
		if i > 0 {
			draw += ", "
		}
		draw += n
	}
	return outs, draw
}

// straightOuts returns how many distinct ranks would complete a straight
// that includes a hole card.
func straightOuts(all, hole []deck.Card) int {
	var have [15]bool // index 1 doubles as the low ace
	for _, c := range all {
		have[c.Rank] = true
		if c.Rank == deck.Ace {
			have[1] = true
		}
	}
	var holeRank [15]bool
	for _, c := range hole {
		holeRank[c.Rank] = true
		if c.Rank == deck.Ace {
			holeRank[1] = true
		}
	}

	n := 0
	for r := 2; r <= 14; r++ {
		if have[r] {
			continue
		}
		for low := 1; low <= 10; low++ {
			complete, usesHole, contains := true, false, false
			for x := low; x < low+5; x++ {
				if x == r || (r == 14 && x == 1) {
					contains = true
					continue
				}
				if !have[x] {
					complete = false
					break
				}
				usesHole = usesHole || holeRank[x]
			}
			if contains && complete && usesHole {
				n++
				break
			}
		}
	}
	return n
}
