package table

import (
	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/game"
)

// SeatView is one seat as shown to a viewer.
type SeatView struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Stack      int      `json:"stack"`
	Bet        int      `json:"bet"`
	Human      bool     `json:"human"`
	Folded     bool     `json:"folded"`
	AllIn      bool     `json:"all_in"`
	Out        bool     `json:"out"`
	Button     bool     `json:"button"`
	ToAct      bool     `json:"to_act"`
	LastAction string   `json:"last_action,omitempty"`
	Hole       []string `json:"hole,omitempty"` // hidden unless the viewer may see them
	Hand       string   `json:"hand,omitempty"`
}

// WinnerView is one share of a settled pot.
type WinnerView struct {
	Seat   int    `json:"seat"`
	Name   string `json:"name"`
	Pot    int    `json:"pot"` // 0 is the main pot
	Amount int    `json:"amount"`
	Hand   string `json:"hand,omitempty"`
}

// Snapshot is the serializable table state for one viewer.
type Snapshot struct {
	TableID    string     `json:"table_id"`
	HandID     string     `json:"hand_id,omitempty"`
	HandNumber int        `json:"hand_number"`
	Round      string     `json:"round"`
	Community  []string   `json:"community"`
	Pot        int        `json:"pot"`
	HighestBet int        `json:"highest_bet"`
	Seats      []SeatView `json:"seats"`
	Actor      int        `json:"actor"`
	Viewer     int        `json:"viewer"`

	CanCheck   bool     `json:"can_check"`
	CallAmount int      `json:"call_amount"`
	MinRaiseTo int      `json:"min_raise_to"` // zero when a raise is not allowed
	MaxRaiseTo int      `json:"max_raise_to"`
	Valid      []string `json:"valid,omitempty"`

	Complete bool         `json:"hand_complete"`
	GameOver bool         `json:"game_over"`
	Winners  []WinnerView `json:"winners,omitempty"`
	Message  string       `json:"message,omitempty"`
	Log      []string     `json:"log"`
}

// Snapshot renders the table for viewer. Pass -1 to see no hole cards
// until showdown.
func (t *Table) Snapshot(viewer int) Snapshot {
	snap := Snapshot{
		TableID:    t.id,
		HandNumber: t.handNumber,
		Round:      "waiting",
		Community:  []string{},
		Actor:      -1,
		Viewer:     viewer,
		Message:    t.message,
		Log:        t.log.tail(),
		GameOver:   t.SeatsWithChips() < 2 && (t.hand == nil || t.hand.IsComplete()),
	}

	h := t.hand
	reveal := false
	if h != nil {
		snap.HandID = h.ID
		snap.Round = h.Round.String()
		snap.Community = cardCodes(h.Community)
		snap.Pot = h.Pot()
		snap.HighestBet = h.HighestBet
		snap.Actor = h.Actor
		snap.Complete = h.IsComplete()
		reveal = snap.Complete && !h.Uncontested

		for _, a := range h.Awards {
			if a.Returned && a.Pot > 0 {
				continue // uncalled chips, not a win
			}
			for _, w := range a.Winners {
				snap.Winners = append(snap.Winners, WinnerView{
					Seat: w.Seat, Name: t.seats[w.Seat].Name, Pot: a.Pot, Amount: w.Amount, Hand: w.Hand,
				})
			}
		}
	}

	results := map[int]string{}
	if h != nil {
		for _, r := range h.Results {
			results[r.Seat] = r.Hand
		}
	}

	for _, s := range t.seats {
		sv := SeatView{
			ID:     s.ID,
			Name:   s.Name,
			Stack:  s.Stack,
			Human:  t.humans[s.ID],
			Out:    s.Out || (s.Stack == 0 && (h == nil || h.IsComplete())),
			Button: h != nil && s.ID == h.Button,
		}
		if h != nil {
			sv.Bet = s.Bet
			sv.Folded = s.Folded
			sv.AllIn = s.AllIn
			sv.ToAct = s.ID == h.Actor
			sv.LastAction = s.LastAction
			if s.ID == viewer || (reveal && s.InHand()) {
				sv.Hole = cardCodes(s.Hole)
				sv.Hand = results[s.ID]
			}
		}
		snap.Seats = append(snap.Seats, sv)
	}

	if h != nil && viewer >= 0 && viewer == h.Actor {
		v := h.View(viewer)
		snap.CallAmount = v.ToCall
		for _, o := range v.Valid {
			snap.Valid = append(snap.Valid, o.Action.String())
			switch o.Action {
			case game.Check:
				snap.CanCheck = true
			case game.Raise:
				snap.MinRaiseTo, snap.MaxRaiseTo = o.Min, o.Max
			}
		}
	}
	return snap
}

func cardCodes(cards []deck.Card) []string {
	codes := make([]string, len(cards))
	for i, c := range cards {
		codes[i] = c.Code()
	}
	return codes
}
