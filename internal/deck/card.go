// Package deck provides the card model and a shuffled 52-card deck.
package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Suits lists every suit in deck construction order.
var Suits = [...]Suit{Spades, Hearts, Diamonds, Clubs}

// String returns the suit symbol
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Letter returns the single ASCII letter used in card notation ("s", "h", "d", "c").
func (s Suit) Letter() string {
	if s > Clubs {
		return "?"
	}
	return string("shdc"[s])
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank, 2 through 14 with the ace high.
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankSymbols = "23456789TJQKA"

var rankNames = [...]string{
	"Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Jack", "Queen", "King", "Ace",
}

// String returns the single character rank symbol ("T" for ten).
func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return string(rankSymbols[r-Two])
}

// Name returns the English rank name, e.g. "Seven".
func (r Rank) Name() string {
	if !r.Valid() {
		return "Unknown"
	}
	return rankNames[r-Two]
}

// Plural returns the plural rank name, e.g. "Sevens", "Sixes".
func (r Rank) Plural() string {
	if r == Six {
		return "Sixes"
	}
	return r.Name() + "s"
}

// Valid reports whether r lies in 2..14.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Card is an immutable playing card. Two cards are equal when rank and suit match.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the display form of a card (e.g., "A♠")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Code returns the ASCII notation of a card (e.g., "As").
func (c Card) Code() string {
	return c.Rank.String() + c.Suit.Letter()
}

// Valid reports whether the card has a legal rank and suit.
func (c Card) Valid() bool {
	return c.Rank.Valid() && c.Suit <= Clubs
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// ParseCard parses a single card such as "As", "Td", "10h" or "Q♥".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}

	rankPart := strings.ToUpper(string(runes[:len(runes)-1]))
	suitPart := runes[len(runes)-1]

	var rank Rank
	switch rankPart {
	case "10", "T":
		rank = Ten
	default:
		idx := strings.Index(rankSymbols, rankPart)
		if len(rankPart) != 1 || idx < 0 {
			return Card{}, fmt.Errorf("invalid rank %q in card %q", rankPart, s)
		}
		rank = Two + Rank(idx)
	}

	var suit Suit
	switch suitPart {
	case 's', 'S', '♠':
		suit = Spades
	case 'h', 'H', '♥':
		suit = Hearts
	case 'd', 'D', '♦':
		suit = Diamonds
	case 'c', 'C', '♣':
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid suit %q in card %q", suitPart, s)
	}

	return NewCard(rank, suit), nil
}

// ParseCards parses either a space separated list ("As Kd 10h") or a packed
// string of two-character cards ("AsKdTh").
func ParseCards(s string) ([]Card, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []Card{}, nil
	}

	var tokens []string
	if strings.ContainsAny(s, " ,") {
		tokens = strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	} else {
		runes := []rune(s)
		if len(runes)%2 != 0 {
			return nil, fmt.Errorf("invalid card string %q: odd length", s)
		}
		for i := 0; i < len(runes); i += 2 {
			tokens = append(tokens, string(runes[i:i+2]))
		}
	}

	cards := make([]Card, 0, len(tokens))
	for _, tok := range tokens {
		c, err := ParseCard(tok)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins cards with a space using their display form.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
