package evaluator

import (
	"testing"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/paulhankin/poker"
	"github.com/stretchr/testify/require"
)

func toOracle(t *testing.T, c deck.Card) poker.Card {
	t.Helper()

	suits := map[deck.Suit]poker.Suit{
		deck.Clubs:    poker.Club,
		deck.Diamonds: poker.Diamond,
		deck.Hearts:   poker.Heart,
		deck.Spades:   poker.Spade,
	}
	rank := poker.Rank(c.Rank)
	if c.Rank == deck.Ace {
		rank = poker.Rank(1)
	}
	pc, err := poker.MakeCard(suits[c.Suit], rank)
	require.NoError(t, err)
	return pc
}

func oracleScore(t *testing.T, cards []deck.Card) int16 {
	t.Helper()
	var seven [7]poker.Card
	for i, c := range cards {
		seven[i] = toOracle(t, c)
	}
	return poker.Eval7(&seven)
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

// TestAgreesWithIndependentEvaluator deals random heads-up showdowns and
// checks every comparison against a second, table based evaluator.
func TestAgreesWithIndependentEvaluator(t *testing.T) {
	t.Parallel()

	// establish which way the oracle orders scores
	royal := oracleScore(t, deck.MustParseCards("As Ks Qs Js Ts 2c 3d"))
	junk := oracleScore(t, deck.MustParseCards("2s 5d 9c Jh Kd 3c 7s"))
	require.NotEqual(t, royal, junk)
	direction := sign(int(royal) - int(junk))

	rng := randutil.New(2024)
	for i := 0; i < 2000; i++ {
		d := deck.NewShuffledDeck(rng)
		cards, err := d.DrawN(9)
		require.NoError(t, err)

		a := append(append([]deck.Card{}, cards[0:2]...), cards[4:9]...)
		b := append(append([]deck.Card{}, cards[2:4]...), cards[4:9]...)

		ours := MustEvaluate(a).Compare(MustEvaluate(b))
		theirs := direction * sign(int(oracleScore(t, a))-int(oracleScore(t, b)))
		require.Equal(t, theirs, ours, "hands %v vs %v", a, b)
	}
}
