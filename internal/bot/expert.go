package bot

import "github.com/kestrelgames/duelbots/internal/duel"

// expertStrategy enumerates every hand card crossed with spending or
// holding the special, simulates each candidate's isolated outcome against
// the opponent's current snapshot, and plays the highest-utility candidate.
// Enumeration order is hand left-to-right with "no special" before
// "special", and ties resolve to the first candidate, so the choice is
// deterministic for a given snapshot.
type expertStrategy struct{}

func (expertStrategy) Name() string { return "expert" }

// Utility weights. Hurting the opponent counts most; healing and shielding
// are kept at lower weights so the bot never turtles past a kill.
const (
	weightOppHPLoss = 3.0
	weightOwnHeal   = 1.2
	weightOwnShield = 0.8

	lethalBonus       = 500.0
	missedKillPenalty = 25.0
	nearLethalHP      = 15
)

// outcome is one simulated candidate's isolated effect.
type outcome struct {
	oppHPLoss  int
	oppHPAfter int
	ownHeal    int
	ownShield  int
}

func (s expertStrategy) Decide(in Input) Decision {
	hand := in.Snap.Self.Hand
	if len(hand) == 0 {
		return pass()
	}

	best := pass()
	bestUtility := 0.0
	first := true

	for idx, kind := range hand {
		for _, special := range []bool{false, true} {
			if special && !specialEligible(in.Snap, kind) {
				continue
			}
			u := s.utility(in, s.simulate(in.Snap, kind, special))
			if first || u > bestUtility {
				best = Decision{CardIndex: idx, UseSpecial: special}
				bestUtility = u
				first = false
			}
		}
	}
	return best
}

// simulate computes a candidate's isolated HP/shield deltas against the
// opponent's current snapshot. Nothing is mutated.
func (s expertStrategy) simulate(snap duel.Snapshot, kind duel.Card, special bool) outcome {
	rules := snap.Rules
	self, opp := snap.Self, snap.Opponent

	bonus := 0
	if special {
		bonus = duel.SpecialBonus(self.Character)
	}

	var out outcome
	out.oppHPAfter = opp.HP

	switch kind {
	case duel.Attack:
		damage := rules.AttackDamage + bonus
		absorbed := min(opp.Shield, damage)
		out.oppHPLoss = min(damage-absorbed, opp.HP)
		out.oppHPAfter = opp.HP - out.oppHPLoss
	case duel.Curse:
		// A curse is worth its total drain over the counter's lifetime.
		out.oppHPLoss = min(rules.CurseDrain*rules.CurseTurns, opp.HP)
		out.oppHPAfter = opp.HP - out.oppHPLoss
	case duel.Heal:
		out.ownHeal = min(rules.HealAmount+bonus, self.MaxHP-self.HP)
	case duel.Defend:
		out.ownShield = rules.ShieldGain + bonus
	}
	return out
}

func (s expertStrategy) utility(in Input, out outcome) float64 {
	u := weightOppHPLoss*float64(out.oppHPLoss) +
		weightOwnHeal*float64(out.ownHeal) +
		weightOwnShield*float64(out.ownShield)

	switch {
	case out.oppHPAfter <= 0:
		u += lethalBonus
	case out.oppHPAfter <= nearLethalHP:
		// Leaving the opponent barely alive invites a heal reset.
		u -= missedKillPenalty
	}
	return u
}
