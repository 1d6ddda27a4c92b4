package bot

import "github.com/kestrelgames/duelbots/internal/duel"

// mediumStrategy scores each hand card with a base-kind score plus
// situational bonuses and plays the highest. Ties break to hand order.
type mediumStrategy struct{}

func (mediumStrategy) Name() string { return "medium" }

// lateTurnThreshold is the turn after which medium and hard tiers favor
// closing the match out with attacks.
const lateTurnThreshold = 8

var mediumBaseScores = map[duel.Card]float64{
	duel.Attack: 50,
	duel.Curse:  40,
	duel.Defend: 35,
	duel.Heal:   30,
}

func (s mediumStrategy) Decide(in Input) Decision {
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
		UseSpecial: mediumSpecial(in, hand[best]),
	}
}

func (mediumStrategy) score(in Input, kind duel.Card) float64 {
	self, opp := in.Snap.Self, in.Snap.Opponent
	v := mediumBaseScores[kind]

	switch kind {
	case duel.Heal:
		if self.HP*10 <= self.MaxHP*4 {
			v += 40
		}
	case duel.Attack:
		if opp.HP*10 <= opp.MaxHP*3 {
			v += 25
		}
		if in.Snap.Turn > lateTurnThreshold {
			v += 15
		}
	case duel.Defend:
		if self.Shield < 10 {
			v += 20
		}
	}
	return v
}

// mediumSpecial is the tier's simple per-character special rule.
func mediumSpecial(in Input, chosen duel.Card) bool {
	if !specialEligible(in.Snap, chosen) {
		return false
	}
	self, opp := in.Snap.Self, in.Snap.Opponent

	switch chosen {
	case duel.Attack:
		// Attack specialists cash in on a weakened opponent late enough
		// that the match will not reset on them.
		return opp.HP <= 40 && in.Snap.Turn >= 5
	case duel.Heal:
		return self.HP*10 <= self.MaxHP*3
	case duel.Defend:
		return self.Shield == 0 && in.Snap.Turn >= 5
	default:
		return false
	}
}
