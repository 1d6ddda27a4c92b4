package duel

import (
	"fmt"
	"time"
)

// Rules holds the externally supplied balance configuration for a match.
// The zero value is not usable; start from DefaultRules.
type Rules struct {
	MaxHP        int           // starting and maximum health
	HandSize     int           // cards drawn back up to after each turn
	DeckSize     int           // total cards dealt per participant
	AttackDamage int           // base damage of an attack card
	ShieldGain   int           // shield added by a defend card
	HealAmount   int           // health restored by a heal card
	CurseTurns   int           // turns a fresh curse persists
	CurseDrain   int           // health lost per turn while cursed
	TurnLimit    int           // maximum turns before tie-break
	TurnTimeout  time.Duration // deadline for simultaneous submissions
}

// DefaultRules returns the canonical rule set. Starting HP is 100: the
// server-side default wins over the old client display baseline of 150.
func DefaultRules() Rules {
	return Rules{
		MaxHP:        100,
		HandSize:     5,
		DeckSize:     20,
		AttackDamage: 30,
		ShieldGain:   15,
		HealAmount:   25,
		CurseTurns:   3,
		CurseDrain:   2,
		TurnLimit:    20,
		TurnTimeout:  30 * time.Second,
	}
}

// Validate checks the rule set for values the engine cannot run with.
func (r Rules) Validate() error {
	switch {
	case r.MaxHP <= 0:
		return fmt.Errorf("invalid rules: max HP must be positive, got %d", r.MaxHP)
	case r.HandSize <= 0:
		return fmt.Errorf("invalid rules: hand size must be positive, got %d", r.HandSize)
	case r.DeckSize < r.HandSize:
		return fmt.Errorf("invalid rules: deck size %d is smaller than hand size %d", r.DeckSize, r.HandSize)
	case r.AttackDamage <= 0:
		return fmt.Errorf("invalid rules: attack damage must be positive, got %d", r.AttackDamage)
	case r.TurnLimit <= 0:
		return fmt.Errorf("invalid rules: turn limit must be positive, got %d", r.TurnLimit)
	case r.TurnTimeout <= 0:
		return fmt.Errorf("invalid rules: turn timeout must be positive, got %s", r.TurnTimeout)
	}
	return nil
}
