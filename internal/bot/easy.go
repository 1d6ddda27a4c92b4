package bot

import (
	"github.com/kestrelgames/duelbots/internal/duel"
	"github.com/kestrelgames/duelbots/internal/randutil"
)

// easyStrategy mostly plays at random, with a thin sanity rule the rest of
// the time so it does not feel completely brainless.
type easyStrategy struct{}

func (easyStrategy) Name() string { return "easy" }

func (easyStrategy) Decide(in Input) Decision {
	hand := in.Snap.Self.Hand
	if len(hand) == 0 {
		return pass()
	}

	if randutil.Chance(in.Rng, 0.7) {
		return Decision{
			CardIndex:  in.Rng.IntN(len(hand)),
			UseSpecial: randutil.Chance(in.Rng, 0.1),
		}
	}

	// Minimal rule: heal when hurt, otherwise attack, otherwise whatever
	// is first in hand.
	self := in.Snap.Self
	if self.HP*10 <= self.MaxHP*3 {
		if idx := firstIndex(hand, duel.Heal); idx >= 0 {
			return Decision{CardIndex: idx}
		}
	}
	if idx := firstIndex(hand, duel.Attack); idx >= 0 {
		return Decision{CardIndex: idx}
	}
	return Decision{CardIndex: 0}
}
