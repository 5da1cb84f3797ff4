package game

import (
	"slices"

	"github.com/lox/holdem-engine/internal/evaluator"
)

// Pot is one settlement tier.
type Pot struct {
	Amount   int
	Level    int   // contribution level that closes the tier
	Eligible []int // seat IDs that can win the tier
}

// BuildPots splits every seat's hand contribution into tiers at each
// distinct contribution level of the seats still in the hand. Folded chips
// fund whichever tiers they reach; anything a folded seat put in above the
// top level is added to the top tier.
func BuildPots(seats []*Seat) []Pot {
	var levels []int
	for _, s := range seats {
		if s.InHand() && s.TotalBet > 0 && !slices.Contains(levels, s.TotalBet) {
			levels = append(levels, s.TotalBet)
		}
	}
	slices.Sort(levels)

	pots := make([]Pot, 0, len(levels))
	prev := 0
	for _, level := range levels {
		pot := Pot{Level: level}
		for _, s := range seats {
			pot.Amount += max(0, min(s.TotalBet, level)-prev)
			if s.InHand() && s.TotalBet >= level {
				pot.Eligible = append(pot.Eligible, s.ID)
			}
		}
		pots = append(pots, pot)
		prev = level
	}

	if len(pots) > 0 {
		for _, s := range seats {
			pots[len(pots)-1].Amount += max(0, s.TotalBet-prev)
		}
	}
	return pots
}

// Winner is a seat's share of one tier.
type Winner struct {
	Seat   int
	Amount int
	Hand   string `json:",omitempty"`
}

// Award is the result of settling one tier.
type Award struct {
	Pot      int // tier index, main pot first
	Amount   int
	Returned bool // single eligible seat, chips returned without a showdown
	Eligible []int
	Winners  []Winner
}

// Result is a seat's net outcome for the hand.
type Result struct {
	Seat int
	Name string
	Won  int // chips received from all tiers
	Net  int // Won minus the seat's contribution
	Hand string
}

// awardPot settles one tier. hands holds the evaluated hand of every seat
// that reached showdown; it is only consulted for contested tiers. Odd chips
// go one at a time to winners in seat order starting left of the button.
func awardPot(index int, pot Pot, hands map[int]evaluator.Hand, button, numSeats int) Award {
	award := Award{Pot: index, Amount: pot.Amount, Eligible: pot.Eligible}
	if len(pot.Eligible) == 1 {
		award.Returned = true
		award.Winners = []Winner{{Seat: pot.Eligible[0], Amount: pot.Amount}}
		return award
	}

	var best uint32
	var winners []int
	for _, id := range pot.Eligible {
		key := hands[id].Key()
		switch {
		case len(winners) == 0 || key > best:
			best, winners = key, []int{id}
		case key == best:
			winners = append(winners, id)
		}
	}

	// order winners by distance from the button so the remainder goes left first
	slices.SortFunc(winners, func(a, b int) int {
		return distanceFromButton(a, button, numSeats) - distanceFromButton(b, button, numSeats)
	})

	share := pot.Amount / len(winners)
	odd := pot.Amount % len(winners)
	for i, id := range winners {
		amount := share
		if i < odd {
			amount++
		}
		award.Winners = append(award.Winners, Winner{Seat: id, Amount: amount, Hand: hands[id].Describe()})
	}
	return award
}

// distanceFromButton is 1 for the seat left of the button and numSeats for
// the button itself.
func distanceFromButton(seat, button, numSeats int) int {
	d := (seat - button + numSeats) % numSeats
	if d == 0 {
		return numSeats
	}
	return d
}
