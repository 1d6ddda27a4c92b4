package bot

import (
	"math"
	"testing"

	rand "math/rand/v2"

	"github.com/stretchr/testify/assert"

	"github.com/kestrelgames/duelbots/internal/duel"
)

func TestNewPersonalityStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, c := range duel.Characters() {
		for _, d := range duel.Difficulties() {
			for i := 0; i < 50; i++ {
				p := NewPersonality(c, d, rng)
				for name, v := range map[string]float64{
					"aggressiveness":   p.Aggressiveness,
					"defensiveness":    p.Defensiveness,
					"healing tendency": p.HealingTendency,
				} {
					assert.GreaterOrEqual(t, v, 0.0, "%s/%s %s", c, d, name)
					assert.LessOrEqual(t, v, 1.0, "%s/%s %s", c, d, name)
				}
			}
		}
	}
}

func TestNewPersonalityPerturbationShrinksWithDifficulty(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	base := basePersonalities[duel.Knight]

	for i := 0; i < 100; i++ {
		p := NewPersonality(duel.Knight, duel.Expert, rng)
		assert.LessOrEqual(t, math.Abs(p.Aggressiveness-base.Aggressiveness), 0.05+1e-9)
		assert.LessOrEqual(t, math.Abs(p.Defensiveness-base.Defensiveness), 0.05+1e-9)
		assert.LessOrEqual(t, math.Abs(p.HealingTendency-base.HealingTendency), 0.05+1e-9)
	}
}

func TestNewPersonalityIsDeterministicForSeed(t *testing.T) {
	a := NewPersonality(duel.Witch, duel.Hard, rand.New(rand.NewPCG(7, 8)))
	b := NewPersonality(duel.Witch, duel.Hard, rand.New(rand.NewPCG(7, 8)))
	assert.Equal(t, a, b)
}
