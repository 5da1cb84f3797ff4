package deck

import (
	"errors"
	rand "math/rand/v2"

	"github.com/lox/holdem-engine/internal/randutil"
)

// ErrDeckExhausted is returned when drawing from an empty deck. Table size
// bounds make this unreachable in normal play, so callers treat it as fatal.
var ErrDeckExhausted = errors.New("deck exhausted")

// Size is the number of cards in a full deck.
const Size = 52

// Deck is an ordered sequence of distinct cards; the top card is the last element.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewShuffledDeck builds all 52 cards and shuffles them with rng.
func NewShuffledDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		rng = randutil.FromSeed(nil)
	}
	d := &Deck{rng: rng}
	d.Reset()
	return d
}

// NewSeededDeck returns a deck whose shuffle is reproducible from seed.
func NewSeededDeck(seed int64) *Deck {
	return NewShuffledDeck(randutil.New(seed))
}

// NewOrderedDeck returns a deck that deals cards in the given order, first
// card first. Used to stage exact hands in tests.
func NewOrderedDeck(cards []Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	for i, c := range cards {
		d.cards[len(cards)-1-i] = c
	}
	return d
}

// Shuffle randomizes the order of remaining cards (Fisher-Yates)
func (d *Deck) Shuffle() {
	if d.rng == nil {
		d.rng = randutil.FromSeed(nil)
	}
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Reset restores the deck to all 52 cards and shuffles it
func (d *Deck) Reset() {
	d.cards = d.cards[:0]
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	d.Shuffle()
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}
	top := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return top, nil
}

// DrawN draws n cards in order.
func (d *Deck) DrawN(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, ErrDeckExhausted
	}
	cards := make([]Card, n)
	for i := range cards {
		cards[i], _ = d.Draw()
	}
	return cards, nil
}

// Burn discards the top card.
func (d *Deck) Burn() error {
	_, err := d.Draw()
	return err
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}
