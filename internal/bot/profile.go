package bot

import (
	"fmt"
	"slices"
	"strings"
)

// Profile is a playing style. Thresholds are hand strengths in [0,1] and
// must be ordered Fold <= Call <= Raise <= AllIn.
type Profile struct {
	Name       string
	Fold       float64 // below this, give up unless checking is free
	Call       float64 // at or above this, continue regardless of price
	Raise      float64 // at or above this, raise
	AllIn      float64 // at or above this, shove when the stack is small next to the pot
	Aggression float64 // scales raise sizes and free bets
	Bluff      float64 // chance of betting a weak hand when checked to
}

var profiles = map[string]Profile{
	"tight-passive":    {Fold: 0.45, Call: 0.55, Raise: 0.82, AllIn: 0.94, Aggression: 0.25, Bluff: 0.03},
	"tight-aggressive": {Fold: 0.40, Call: 0.50, Raise: 0.65, AllIn: 0.88, Aggression: 0.70, Bluff: 0.10},
	"loose-passive":    {Fold: 0.20, Call: 0.30, Raise: 0.80, AllIn: 0.94, Aggression: 0.20, Bluff: 0.05},
	"loose-aggressive": {Fold: 0.22, Call: 0.32, Raise: 0.55, AllIn: 0.85, Aggression: 0.75, Bluff: 0.18},
	"conservative":     {Fold: 0.42, Call: 0.58, Raise: 0.78, AllIn: 0.93, Aggression: 0.20, Bluff: 0.05},
	"balanced":         {Fold: 0.30, Call: 0.45, Raise: 0.65, AllIn: 0.90, Aggression: 0.50, Bluff: 0.12},
	"maniac":           {Fold: 0.10, Call: 0.18, Raise: 0.40, AllIn: 0.75, Aggression: 0.90, Bluff: 0.30},
}

// DefaultProfile is used when a seat does not name one.
const DefaultProfile = "balanced"

// LookupProfile returns the named profile.
func LookupProfile(name string) (Profile, error) {
	p, ok := profiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q (want one of %s)", name, strings.Join(ProfileNames(), ", "))
	}
	p.Name = strings.ToLower(strings.TrimSpace(name))
	return p, nil
}

// ProfileNames lists the built-in profiles in alphabetical order.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Validate checks the threshold ordering.
func (p Profile) Validate() error {
	if !(0 <= p.Fold && p.Fold <= p.Call && p.Call <= p.Raise && p.Raise <= p.AllIn && p.AllIn <= 1) {
		return fmt.Errorf("profile %q: thresholds must satisfy 0 <= fold <= call <= raise <= allin <= 1", p.Name)
	}
	if p.Aggression < 0 || p.Aggression > 1 || p.Bluff < 0 || p.Bluff > 1 {
		return fmt.Errorf("profile %q: aggression and bluff must be in [0,1]", p.Name)
	}
	return nil
}

// shifted moves every threshold by d, keeping them inside [0,1].
func (p Profile) shifted(d float64) Profile {
	clamp := func(x float64) float64 { return min(1, max(0, x+d)) }
	p.Fold = clamp(p.Fold)
	p.Call = clamp(p.Call)
	p.Raise = clamp(p.Raise)
	p.AllIn = clamp(p.AllIn)
	return p
}
