package bot

import "github.com/kestrelgames/duelbots/internal/duel"

// hardStrategy keeps the medium tier's scoring skeleton but replaces each
// kind's bonus with a richer situational function, scaled by personality
// traits and the opponent-history predictor.
type hardStrategy struct{}

func (hardStrategy) Name() string { return "hard" }

func (s hardStrategy) Decide(in Input) Decision {
	hand := in.Snap.Self.Hand
	if len(hand) == 0 {
		return pass()
	}

	best, bestScore := 0, s.score(in, hand[0])
	for i := 1; i < len(hand); i++ {
		if v := s.score(in, hand[i]); v > bestScore {
			best, bestScore = i, v
		}
	}

	return Decision{
		CardIndex:  best,
		UseSpecial: hardSpecial(in, hand[best]),
	}
}

func (s hardStrategy) score(in Input, kind duel.Card) float64 {
	var v float64
	switch kind {
	case duel.Attack:
		v = s.attackValue(in)
	case duel.Heal:
		v = s.healValue(in)
	case duel.Defend:
		v = s.defendValue(in)
	case duel.Curse:
		v = s.curseValue(in)
	}
	return v + s.responseAdjust(in, kind)
}

// attackValue rewards lethal damage heavily, pressure on a weakened
// opponent, bypassing an empty shield, and late-game aggression.
func (s hardStrategy) attackValue(in Input) float64 {
	opp := in.Snap.Opponent
	damage := in.Snap.Rules.AttackDamage

	var v float64
	if damage >= opp.HP+opp.Shield {
		v += 100
	}
	if opp.HP*2 <= opp.MaxHP {
		v += 20
	}
	if opp.Shield == 0 {
		v += 15
	}
	if in.Snap.Turn >= lateTurnThreshold {
		v += 10
	}
	return v + in.Personality.Aggressiveness*5
}

// healValue rewards low-HP urgency in tiers and penalizes burning heals
// early, when the deck can still cycle them back.
func (s hardStrategy) healValue(in Input) float64 {
	self := in.Snap.Self

	var v float64
	switch {
	case self.HP*10 <= self.MaxHP*2:
		v += 80
	case self.HP*100 <= self.MaxHP*35:
		v += 50
	case self.HP*2 <= self.MaxHP:
		v += 25
	}
	if in.Snap.Turn < 4 {
		v -= 15
	}
	return v + in.Personality.HealingTendency*5
}

// defendValue rewards a low shield, weighted by how likely the opponent is
// to attack next turn.
func (s hardStrategy) defendValue(in Input) float64 {
	self := in.Snap.Self

	var v float64
	switch {
	case self.Shield == 0:
		v = 25
	case self.Shield < 10:
		v = 15
	default:
		v = 5
	}
	v *= 0.5 + in.History.PredictAttack()
	return v + in.Personality.Defensiveness*5
}

func (s hardStrategy) curseValue(in Input) float64 {
	if in.Snap.Opponent.CurseTurns > 0 {
		// Refreshing an active curse wastes the card.
		return 5
	}
	return 30 + in.Personality.Aggressiveness*3
}

// responseAdjust nudges scores with simple counter-play heuristics drawn
// from the observed action history.
func (s hardStrategy) responseAdjust(in Input, kind duel.Card) float64 {
	var v float64
	if last, ok := in.History.LastAction(); ok && last == duel.Heal {
		// A healing opponent is likely to heal again while hurt; raw
		// damage into an incoming heal is slightly discounted.
		if kind == duel.Attack && in.Snap.Opponent.HP*2 <= in.Snap.Opponent.MaxHP {
			v -= 5
		}
	}
	if kind == duel.Defend && in.History.PredictAttack() >= 0.6 {
		v += 5
	}
	if kind == duel.Attack && in.Snap.Opponent.Shield >= 20 {
		v -= 5
	}
	return v
}

// hardSpecial compares simulated bonus-adjusted effects against absolute
// thresholds.
func hardSpecial(in Input, chosen duel.Card) bool {
	if !specialEligible(in.Snap, chosen) {
		return false
	}
	rules := in.Snap.Rules
	bonus := duel.SpecialBonus(in.Snap.Self.Character)
	self, opp := in.Snap.Self, in.Snap.Opponent

	switch chosen {
	case duel.Attack:
		boosted := rules.AttackDamage + bonus
		return boosted >= opp.HP+opp.Shield || boosted >= 40
	case duel.Heal:
		// Spend the special only when nearly all of the boosted heal
		// lands inside the HP cap.
		const margin = 5
		shortfall := self.MaxHP - self.HP
		return shortfall >= rules.HealAmount+bonus-margin
	case duel.Defend:
		return in.History.PredictAttack() >= 0.6
	default:
		return false
	}
}
