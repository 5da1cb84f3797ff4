package bot

import (
	"fmt"
	"strings"
)

// SkillLevel controls how far thresholds wander from the profile on each decision.
type SkillLevel int

const (
	Rookie SkillLevel = iota
	Amateur
	Intermediate
	Advanced
	Expert
)

var skillNames = [...]string{"rookie", "amateur", "intermediate", "advanced", "expert"}

func (s SkillLevel) String() string {
	if s < Rookie || s > Expert {
		return "unknown"
	}
	return skillNames[s]
}

// Jitter is the largest threshold shift applied per decision.
func (s SkillLevel) Jitter() float64 {
	switch s {
	case Rookie:
		return 0.15
	case Amateur:
		return 0.10
	case Intermediate:
		return 0.06
	case Advanced:
		return 0.04
	default:
		return 0.02
	}
}

// ParseSkillLevel converts a name such as "expert" into a SkillLevel.
func ParseSkillLevel(s string) (SkillLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range skillNames {
		if name == s {
			return SkillLevel(i), nil
		}
	}
	return 0, fmt.Errorf("unknown skill level %q", s)
}
