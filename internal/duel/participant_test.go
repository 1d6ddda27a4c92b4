package duel

import (
	"testing"

	rand "math/rand/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParticipantDealsHand(t *testing.T) {
	rules := DefaultRules()
	rng := rand.New(rand.NewPCG(1, 2))

	p := NewParticipant("p1", "Alice", Knight, Medium, rules, rng)

	assert.Equal(t, rules.MaxHP, p.HP)
	assert.Len(t, p.Hand, rules.HandSize)
	assert.Equal(t, rules.DeckSize, p.CardCount())
}

func TestDrawCardsReshufflesDiscard(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	p := &Participant{
		ID:      "p1",
		Discard: []Card{Attack, Heal, Defend},
		dealt:   3,
		maxHP:   100,
	}

	require.Equal(t, 2, p.DrawCards(2, rng))
	assert.Len(t, p.Hand, 2)
	assert.Empty(t, p.Discard)
	assert.Len(t, p.Deck, 1)
	assert.Equal(t, 3, p.CardCount(), "cards must be conserved")
}

func TestDrawCardsStopsShortWhenExhausted(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	p := &Participant{
		ID:    "p1",
		Deck:  []Card{Attack, Attack},
		dealt: 2,
		maxHP: 100,
	}

	assert.Equal(t, 2, p.DrawCards(5, rng), "short draw is not an error")
	assert.Len(t, p.Hand, 2)
	assert.Empty(t, p.Deck)
}

func TestPlayCard(t *testing.T) {
	p := &Participant{
		ID:    "p1",
		Hand:  []Card{Attack, Heal, Defend},
		dealt: 3,
		maxHP: 100,
	}

	card, ok := p.PlayCard(1)
	require.True(t, ok)
	assert.Equal(t, Heal, card)
	assert.Len(t, p.Discard, 1)
	assert.Equal(t, []Card{Attack, Defend}, p.Hand, "hand order must survive the removal")

	_, ok = p.PlayCard(2)
	assert.False(t, ok, "out-of-range play should fail")
	_, ok = p.PlayCard(-1)
	assert.False(t, ok, "negative index play should fail")
}

func TestHasCard(t *testing.T) {
	p := &Participant{Hand: []Card{Defend, Attack, Attack}}

	idx, ok := p.HasCard(Attack)
	require.True(t, ok)
	assert.Equal(t, 1, idx, "first occurrence wins")

	_, ok = p.HasCard(Curse)
	assert.False(t, ok)
}

func TestViewHidesOpponentHand(t *testing.T) {
	rules := DefaultRules()
	rng := rand.New(rand.NewPCG(7, 8))
	p := NewParticipant("p1", "Alice", Cleric, Medium, rules, rng)

	own := p.view(true)
	assert.Len(t, own.Hand, rules.HandSize)
	assert.Equal(t, rules.HandSize, own.HandSize)

	opp := p.view(false)
	assert.Nil(t, opp.Hand, "opponent view must not expose hand contents")
	assert.Equal(t, rules.HandSize, opp.HandSize)

	// The view is a copy; mutating it must not touch the participant.
	orig := p.Hand[0]
	if orig == Curse {
		own.Hand[0] = Attack
	} else {
		own.Hand[0] = Curse
	}
	assert.Equal(t, orig, p.Hand[0], "mutating a view changed the participant's hand")
}
