package duel

import "fmt"

// Card is one of the four playable card kinds. Cards are value tokens, two
// attack cards are indistinguishable.
type Card int

const (
	Attack Card = iota
	Defend
	Heal
	Curse
)

// String returns the wire name of the card kind.
func (c Card) String() string {
	switch c {
	case Attack:
		return "attack"
	case Defend:
		return "defend"
	case Heal:
		return "heal"
	case Curse:
		return "curse"
	default:
		return fmt.Sprintf("card(%d)", int(c))
	}
}

// ParseCard converts a wire name back to a card kind.
func ParseCard(s string) (Card, error) {
	switch s {
	case "attack":
		return Attack, nil
	case "defend":
		return Defend, nil
	case "heal":
		return Heal, nil
	case "curse":
		return Curse, nil
	default:
		return 0, fmt.Errorf("unknown card kind: %q", s)
	}
}
