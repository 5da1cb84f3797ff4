package phh

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/lox/holdem-engine/internal/game"
)

// Encode writes a single hand history as TOML.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return errors.New("phh: hand history is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeSession writes hands as a PHHS session: each hand under a numbered
// table header, starting at [1].
func EncodeSession(w io.Writer, hands []*HandHistory) error {
	for i, hand := range hands {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		var buf bytes.Buffer
		if err := Encode(&buf, hand); err != nil {
			return fmt.Errorf("phh: hand %d: %w", i+1, err)
		}
		if _, err := fmt.Fprintf(w, "[%d]\n%s", i+1, buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// DecodeSession reads a PHHS session back, ordered by section number.
func DecodeSession(r io.Reader) ([]HandHistory, error) {
	sections := make(map[string]HandHistory)
	if _, err := toml.NewDecoder(r).Decode(&sections); err != nil {
		return nil, fmt.Errorf("phh: decode: %w", err)
	}

	keys := make([]string, 0, len(sections))
	for k := range sections {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareSections)

	hands := make([]HandHistory, 0, len(keys))
	for _, k := range keys {
		hand := sections[k]
		if hand.HandID == "" {
			hand.HandID = k
		}
		hands = append(hands, hand)
	}
	return hands, nil
}

func compareSections(a, b string) int {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return ai - bi
	}
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// FormatAction renders a betting action for player index p (zero based).
// roundTotal is the player's chips in for the street after the action and
// raised reports whether an all-in went above the current bet.
func FormatAction(p int, action game.Action, roundTotal int, raised bool) string {
	player := fmt.Sprintf("p%d", p+1)
	switch action {
	case game.Fold:
		return player + " f"
	case game.Check, game.Call:
		return player + " cc"
	case game.Raise:
		return fmt.Sprintf("%s cbr %d", player, roundTotal)
	case game.AllIn:
		if raised {
			return fmt.Sprintf("%s cbr %d", player, roundTotal)
		}
		return player + " cc"
	default:
		return fmt.Sprintf("# %s %s %d", player, action, roundTotal)
	}
}
