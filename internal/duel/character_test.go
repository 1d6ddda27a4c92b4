package duel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseShapesSumToDeckSize(t *testing.T) {
	for _, c := range Characters() {
		assert.Equal(t, DefaultRules().DeckSize, baseShapes[c].Total(), "%s base shape", c)
	}
}

func TestSpecialsCoverEveryCharacter(t *testing.T) {
	for _, c := range Characters() {
		assert.Positive(t, SpecialBonus(c), "%s has no special bonus", c)
	}

	// The one healer specializes in heals; the one wall in defends.
	assert.Equal(t, Heal, SpecialCard(Cleric))
	assert.Equal(t, Defend, SpecialCard(Warden))
	assert.Equal(t, Attack, SpecialCard(Knight))
	assert.Equal(t, Attack, SpecialCard(Witch))
}

func TestParseCharacterRoundTrip(t *testing.T) {
	for _, c := range Characters() {
		got, err := ParseCharacter(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCharacter("bard")
	assert.Error(t, err, "unknown character must be rejected")
}
