package duel

import (
	"fmt"

	rand "math/rand/v2"
)

// Participant is one side of a match, human or AI controlled. All mutation
// goes through the owning Match's resolution step.
type Participant struct {
	ID        string
	Name      string
	Character Character

	HP          int
	Shield      int
	Deck        []Card
	Hand        []Card
	Discard     []Card
	SpecialUsed bool
	CurseTurns  int // remaining turns of an active curse, 0 when clear

	dealt int // cards dealt at match start, for conservation checks
	maxHP int
}

// NewParticipant creates a participant with a freshly generated, shuffled
// deck and an initial hand drawn to the configured hand size.
func NewParticipant(id, name string, c Character, d Difficulty, rules Rules, rng *rand.Rand) *Participant {
	p := &Participant{
		ID:        id,
		Name:      name,
		Character: c,
		HP:        rules.MaxHP,
		Deck:      GenerateDeck(c, d, rules, rng),
		maxHP:     rules.MaxHP,
	}
	p.dealt = len(p.Deck)
	p.DrawCards(rules.HandSize, rng)
	return p
}

// MaxHP returns the participant's health cap.
func (p *Participant) MaxHP() int { return p.maxHP }

// Alive reports whether the participant still has health.
func (p *Participant) Alive() bool { return p.HP > 0 }

// CardCount returns the number of cards across deck, hand and discard.
// Cards are conserved; this never changes after dealing.
func (p *Participant) CardCount() int {
	return len(p.Deck) + len(p.Hand) + len(p.Discard)
}

// DrawCards moves up to n cards from the deck into the hand. When the deck
// empties mid-draw the discard pile is shuffled back in before continuing.
// When both piles are empty the draw stops short; that is not an error.
// Returns the number of cards actually drawn.
func (p *Participant) DrawCards(n int, rng *rand.Rand) int {
	drawn := 0
	for drawn < n {
		if len(p.Deck) == 0 {
			if len(p.Discard) == 0 {
				break
			}
			p.Deck = p.Discard
			p.Discard = nil
			shuffle(p.Deck, rng)
		}
		last := len(p.Deck) - 1
		p.Hand = append(p.Hand, p.Deck[last])
		p.Deck = p.Deck[:last]
		drawn++
	}
	return drawn
}

// PlayCard removes the card at idx from the hand and moves it to the discard
// pile. Returns false when idx is out of range.
func (p *Participant) PlayCard(idx int) (Card, bool) {
	if idx < 0 || idx >= len(p.Hand) {
		return 0, false
	}
	card := p.Hand[idx]
	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	p.Discard = append(p.Discard, card)
	return card, true
}

// HasCard reports whether the hand contains the given kind, and at which
// index it first occurs.
func (p *Participant) HasCard(kind Card) (int, bool) {
	for i, c := range p.Hand {
		if c == kind {
			return i, true
		}
	}
	return -1, false
}

// checkConservation panics when the card-count invariant is broken. This is
// a bug guard, never normal control flow.
func (p *Participant) checkConservation() {
	if got := p.CardCount(); got != p.dealt {
		panic(fmt.Sprintf("duel: card conservation violated for %s: dealt %d, have %d", p.ID, p.dealt, got))
	}
}

// View is a copy-on-read snapshot of a participant handed to decision code.
// The hand is populated only for the participant's own view.
type View struct {
	ID          string
	Name        string
	Character   Character
	HP          int
	MaxHP       int
	Shield      int
	Hand        []Card // nil for the opponent's view
	HandSize    int
	DeckSize    int
	DiscardSize int
	SpecialUsed bool
	CurseTurns  int
}

// view builds a snapshot. When ownHand is true the hand contents are copied
// into the view; otherwise only the count is exposed.
func (p *Participant) view(ownHand bool) View {
	v := View{
		ID:          p.ID,
		Name:        p.Name,
		Character:   p.Character,
		HP:          p.HP,
		MaxHP:       p.maxHP,
		Shield:      p.Shield,
		HandSize:    len(p.Hand),
		DeckSize:    len(p.Deck),
		DiscardSize: len(p.Discard),
		SpecialUsed: p.SpecialUsed,
		CurseTurns:  p.CurseTurns,
	}
	if ownHand {
		v.Hand = append([]Card(nil), p.Hand...)
	}
	return v
}
