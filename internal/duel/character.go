package duel

import "fmt"

// Character is a fixed playable identity. Each character has its own deck
// shape, the card kind its once-per-match special ability attaches to, and
// the bonus that ability grants.
type Character int

const (
	Knight Character = iota
	Witch
	Cleric
	Warden
)

// String returns the wire name of the character.
func (c Character) String() string {
	switch c {
	case Knight:
		return "knight"
	case Witch:
		return "witch"
	case Cleric:
		return "cleric"
	case Warden:
		return "warden"
	default:
		return fmt.Sprintf("character(%d)", int(c))
	}
}

// ParseCharacter converts a wire name back to a character.
func ParseCharacter(s string) (Character, error) {
	switch s {
	case "knight":
		return Knight, nil
	case "witch":
		return Witch, nil
	case "cleric":
		return Cleric, nil
	case "warden":
		return Warden, nil
	default:
		return 0, fmt.Errorf("unknown character: %q", s)
	}
}

// Characters lists all playable characters in a stable order.
func Characters() []Character {
	return []Character{Knight, Witch, Cleric, Warden}
}

// DeckShape holds per-kind card counts for one deck. The four counts always
// sum to the configured deck size.
type DeckShape struct {
	Attack int
	Defend int
	Heal   int
	Curse  int
}

// Total returns the number of cards described by the shape.
func (s DeckShape) Total() int {
	return s.Attack + s.Defend + s.Heal + s.Curse
}

// baseShapes is the per-character deck composition before any difficulty
// adjustment. All shapes sum to the default deck size of 20.
var baseShapes = map[Character]DeckShape{
	Knight: {Attack: 8, Defend: 6, Heal: 4, Curse: 2},
	Witch:  {Attack: 7, Defend: 4, Heal: 4, Curse: 5},
	Cleric: {Attack: 5, Defend: 5, Heal: 7, Curse: 3},
	Warden: {Attack: 5, Defend: 8, Heal: 4, Curse: 3},
}

// specialInfo describes a character's once-per-match special ability.
type specialInfo struct {
	card  Card
	bonus int
}

var specials = map[Character]specialInfo{
	Knight: {card: Attack, bonus: 15},
	Witch:  {card: Attack, bonus: 10},
	Cleric: {card: Heal, bonus: 20},
	Warden: {card: Defend, bonus: 15},
}

// SpecialCard returns the card kind the character's special ability attaches
// to. Requesting special on any other kind is silently downgraded.
func SpecialCard(c Character) Card {
	return specials[c].card
}

// SpecialBonus returns the extra damage, shield, or healing granted when the
// character's special ability is spent.
func SpecialBonus(c Character) int {
	return specials[c].bonus
}
