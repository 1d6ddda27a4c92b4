package bot

import "github.com/kestrelgames/duelbots/internal/duel"

const (
	// historyCapacity bounds the rolling window of recorded turns.
	historyCapacity = 10
	// predictWindow is how many recent opponent actions feed the attack
	// predictor.
	predictWindow = 3
	// baselineAttackProb is returned when nothing has been observed yet.
	baselineAttackProb = 0.4
)

// TurnSnapshot records what the bot saw at decision time on one turn.
type TurnSnapshot struct {
	Turn        int
	OwnHP       int
	OwnShield   int
	OppHP       int
	OppShield   int
	OppHandSize int
}

// History is an append-only, capacity-bounded record of the bot's own turn
// snapshots and the opponent's observed card kinds. It is read-only input
// to prediction; nothing in here mutates match state.
type History struct {
	capacity int
	turns    []TurnSnapshot
	actions  []duel.Card
}

// NewHistory returns a history bounded to the given number of entries.
// A non-positive capacity falls back to the default window.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = historyCapacity
	}
	return &History{capacity: capacity}
}

// RecordTurn appends the bot's view of the current turn, dropping the
// oldest entry once the window is full.
func (h *History) RecordTurn(s TurnSnapshot) {
	h.turns = append(h.turns, s)
	if len(h.turns) > h.capacity {
		h.turns = h.turns[len(h.turns)-h.capacity:]
	}
}

// RecordAction appends an observed opponent card kind.
func (h *History) RecordAction(c duel.Card) {
	h.actions = append(h.actions, c)
	if len(h.actions) > h.capacity {
		h.actions = h.actions[len(h.actions)-h.capacity:]
	}
}

// Actions returns a copy of the recorded opponent actions, oldest first.
func (h *History) Actions() []duel.Card {
	return append([]duel.Card(nil), h.actions...)
}

// LastAction returns the most recently observed opponent card.
func (h *History) LastAction() (duel.Card, bool) {
	if len(h.actions) == 0 {
		return 0, false
	}
	return h.actions[len(h.actions)-1], true
}

// PredictAttack estimates the probability the opponent attacks next turn.
// With no history it returns the fixed baseline; otherwise the attack
// fraction over the most recent window is rescaled into [0.2, 0.8].
func (h *History) PredictAttack() float64 {
	if len(h.actions) == 0 {
		return baselineAttackProb
	}
	window := h.actions
	if len(window) > predictWindow {
		window = window[len(window)-predictWindow:]
	}
	attacks := 0
	for _, c := range window {
		if c == duel.Attack {
			attacks++
		}
	}
	p := 0.2 + float64(attacks)/float64(len(window))*0.6
	if p > 0.8 {
		p = 0.8
	}
	return p
}
