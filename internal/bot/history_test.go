package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kestrelgames/duelbots/internal/duel"
)

func TestPredictAttackBaseline(t *testing.T) {
	h := NewHistory(0)
	assert.Equal(t, 0.4, h.PredictAttack(), "empty history uses the baseline")
}

func TestPredictAttackWindow(t *testing.T) {
	h := NewHistory(10)
	h.RecordAction(duel.Attack)
	h.RecordAction(duel.Attack)
	h.RecordAction(duel.Defend)

	// Two attacks in a window of three.
	assert.InDelta(t, 0.6, h.PredictAttack(), 1e-9)
}

func TestPredictAttackUsesOnlyRecentActions(t *testing.T) {
	h := NewHistory(10)
	for i := 0; i < 5; i++ {
		h.RecordAction(duel.Attack)
	}
	h.RecordAction(duel.Heal)
	h.RecordAction(duel.Heal)
	h.RecordAction(duel.Heal)

	// The older attacks fall outside the prediction window.
	assert.InDelta(t, 0.2, h.PredictAttack(), 1e-9)
}

func TestPredictAttackCap(t *testing.T) {
	h := NewHistory(10)
	h.RecordAction(duel.Attack)
	h.RecordAction(duel.Attack)
	h.RecordAction(duel.Attack)

	assert.InDelta(t, 0.8, h.PredictAttack(), 1e-9, "all-attack windows cap at 0.8")
}

func TestHistoryCapacityBound(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 10; i++ {
		h.RecordAction(duel.Heal)
		h.RecordTurn(TurnSnapshot{Turn: i})
	}
	h.RecordAction(duel.Curse)

	actions := h.Actions()
	assert.Len(t, actions, 3)
	assert.Equal(t, duel.Curse, actions[2], "newest action survives the bound")
	assert.Len(t, h.turns, 3)
	assert.Equal(t, 9, h.turns[2].Turn)
}

func TestLastAction(t *testing.T) {
	h := NewHistory(5)

	_, ok := h.LastAction()
	assert.False(t, ok)

	h.RecordAction(duel.Defend)
	h.RecordAction(duel.Curse)
	last, ok := h.LastAction()
	assert.True(t, ok)
	assert.Equal(t, duel.Curse, last)
}
