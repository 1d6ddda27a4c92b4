package bot

import (
	rand "math/rand/v2"

	"github.com/kestrelgames/duelbots/internal/duel"
)

// Decision is the decision engine's output: a hand index (or -1 for an
// empty-hand pass) and whether to spend the once-per-match special.
type Decision struct {
	CardIndex  int
	UseSpecial bool
}

// pass is the empty-hand decision.
func pass() Decision {
	return Decision{CardIndex: -1}
}

// Input carries everything a strategy may read. Strategies hold no
// per-match state of their own, so one instance serves any number of
// concurrent matches.
type Input struct {
	Snap        duel.Snapshot
	Personality Personality
	History     *History
	Rng         *rand.Rand
}

// Strategy maps match state to a decision. The four tiers are selected once
// per bot and invoked uniformly.
type Strategy interface {
	Name() string
	Decide(in Input) Decision
}

var strategies = map[duel.Difficulty]Strategy{
	duel.Easy:   easyStrategy{},
	duel.Medium: mediumStrategy{},
	duel.Hard:   hardStrategy{},
	duel.Expert: expertStrategy{},
}

// ForDifficulty returns the shared strategy instance for a tier.
func ForDifficulty(d duel.Difficulty) Strategy {
	return strategies[d]
}

// firstIndex returns the index of the first card of the given kind, or -1.
func firstIndex(hand []duel.Card, kind duel.Card) int {
	for i, c := range hand {
		if c == kind {
			return i
		}
	}
	return -1
}

// specialEligible reports whether spending the special on this card kind
// would be honored by the resolver.
func specialEligible(snap duel.Snapshot, kind duel.Card) bool {
	return !snap.Self.SpecialUsed && duel.SpecialCard(snap.Self.Character) == kind
}

// specialBonusFor returns the bonus the special would add to this card
// kind, or 0 when ineligible.
func specialBonusFor(snap duel.Snapshot, kind duel.Card) int {
	if !specialEligible(snap, kind) {
		return 0
	}
	return duel.SpecialBonus(snap.Self.Character)
}
