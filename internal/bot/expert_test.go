package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kestrelgames/duelbots/internal/duel"
)

func expertInput(self, opp duel.View) Input {
	self.MaxHP = 100
	opp.MaxHP = 100
	return Input{
		Snap: duel.Snapshot{
			Turn:     3,
			Rules:    duel.DefaultRules(),
			Self:     self,
			Opponent: opp,
		},
		History: NewHistory(0),
	}
}

func TestExpertTakesTheKill(t *testing.T) {
	s := expertStrategy{}
	in := expertInput(
		duel.View{Character: duel.Warden, HP: 100, Hand: []duel.Card{duel.Defend, duel.Heal, duel.Attack}},
		duel.View{HP: 30, Shield: 0},
	)

	d := s.Decide(in)
	assert.Equal(t, 2, d.CardIndex, "lethal attack beats every other candidate")
	assert.False(t, d.UseSpecial, "the base attack already kills")
}

func TestExpertSpendsSpecialToSecureKill(t *testing.T) {
	s := expertStrategy{}
	in := expertInput(
		duel.View{Character: duel.Knight, HP: 100, Hand: []duel.Card{duel.Attack, duel.Defend}},
		duel.View{HP: 40, Shield: 0},
	)

	d := s.Decide(in)
	assert.Equal(t, 0, d.CardIndex)
	assert.True(t, d.UseSpecial, "the +15 bonus turns a near-miss into a kill")
}

func TestExpertAccountsForShieldAbsorption(t *testing.T) {
	s := expertStrategy{}
	in := expertInput(
		duel.View{Character: duel.Cleric, HP: 100, Hand: []duel.Card{duel.Attack, duel.Curse}},
		duel.View{HP: 100, Shield: 30},
	)

	// The attack is fully absorbed; the curse's lifetime drain is not.
	d := s.Decide(in)
	assert.Equal(t, 1, d.CardIndex)
}

func TestExpertHealsWhenValuable(t *testing.T) {
	s := expertStrategy{}
	in := expertInput(
		duel.View{Character: duel.Cleric, HP: 20, Hand: []duel.Card{duel.Attack, duel.Heal}},
		duel.View{HP: 100, Shield: 30},
	)

	d := s.Decide(in)
	assert.Equal(t, 1, d.CardIndex, "a full-value heal beats an absorbed attack")
	assert.True(t, d.UseSpecial, "the cleric's boosted heal also lands in full")
}

func TestExpertTiesResolveToHandOrder(t *testing.T) {
	s := expertStrategy{}
	in := expertInput(
		duel.View{Character: duel.Warden, HP: 100, Hand: []duel.Card{duel.Attack, duel.Attack}},
		duel.View{HP: 100, Shield: 0},
	)

	d := s.Decide(in)
	assert.Equal(t, 0, d.CardIndex)
}

func TestExpertIsDeterministic(t *testing.T) {
	s := expertStrategy{}
	in := expertInput(
		duel.View{Character: duel.Witch, HP: 55, Hand: []duel.Card{duel.Heal, duel.Curse, duel.Attack, duel.Defend}},
		duel.View{HP: 70, Shield: 10},
	)

	first := s.Decide(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.Decide(in))
	}
}

func TestExpertNearMissPenalty(t *testing.T) {
	s := expertStrategy{}
	in := expertInput(
		duel.View{Character: duel.Warden, HP: 100, Hand: []duel.Card{duel.Attack}},
		duel.View{HP: 40, Shield: 0},
	)

	// Leaving the opponent at 10 HP invites a heal reset, so the raw
	// damage utility is discounted.
	near := s.utility(in, s.simulate(in.Snap, duel.Attack, false))
	assert.InDelta(t, 3.0*30-25, near, 1e-9)

	in.Snap.Opponent.HP = 80
	clean := s.utility(in, s.simulate(in.Snap, duel.Attack, false))
	assert.InDelta(t, 3.0*30, clean, 1e-9)
}
