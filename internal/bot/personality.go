package bot

import (
	rand "math/rand/v2"

	"github.com/kestrelgames/duelbots/internal/duel"
)

// Personality holds the scalar traits biasing a bot's scoring. Each trait
// is in [0,1]. Traits are computed once at bot creation and never change.
type Personality struct {
	Aggressiveness  float64
	Defensiveness   float64
	HealingTendency float64
}

// basePersonalities maps each character to its trait baseline before the
// difficulty perturbation.
var basePersonalities = map[duel.Character]Personality{
	duel.Knight: {Aggressiveness: 0.8, Defensiveness: 0.5, HealingTendency: 0.3},
	duel.Witch:  {Aggressiveness: 0.7, Defensiveness: 0.3, HealingTendency: 0.4},
	duel.Cleric: {Aggressiveness: 0.4, Defensiveness: 0.5, HealingTendency: 0.8},
	duel.Warden: {Aggressiveness: 0.3, Defensiveness: 0.8, HealingTendency: 0.5},
}

// perturbation is the half-width of the random trait jitter per difficulty.
// Easier bots stray further from their character's baseline.
var perturbation = map[duel.Difficulty]float64{
	duel.Easy:   0.25,
	duel.Medium: 0.15,
	duel.Hard:   0.10,
	duel.Expert: 0.05,
}

// NewPersonality derives traits from character identity plus a
// difficulty-dependent random perturbation, clamped into [0,1].
func NewPersonality(c duel.Character, d duel.Difficulty, rng *rand.Rand) Personality {
	base := basePersonalities[c]
	eps := perturbation[d]
	return Personality{
		Aggressiveness:  clamp01(base.Aggressiveness + jitter(rng, eps)),
		Defensiveness:   clamp01(base.Defensiveness + jitter(rng, eps)),
		HealingTendency: clamp01(base.HealingTendency + jitter(rng, eps)),
	}
}

func jitter(rng *rand.Rand, eps float64) float64 {
	return (rng.Float64()*2 - 1) * eps
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
