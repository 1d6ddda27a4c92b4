package bot

import (
	"io"
	"testing"

	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelgames/duelbots/internal/duel"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func botSnapshot(self, opp duel.View) duel.Snapshot {
	self.MaxHP = 100
	opp.MaxHP = 100
	return duel.Snapshot{
		Turn:     3,
		Rules:    duel.DefaultRules(),
		Self:     self,
		Opponent: opp,
	}
}

func TestBotPassesOnEmptyHand(t *testing.T) {
	b := New("b1", "Tester", duel.Knight, duel.Expert, 1, testLogger())

	sub := b.Act(botSnapshot(duel.View{ID: "b1", HP: 100}, duel.View{HP: 100}))
	assert.Equal(t, -1, sub.CardIndex)
}

func TestBotCurseOverridePlaysHeal(t *testing.T) {
	b := New("b1", "Tester", duel.Knight, duel.Expert, 1, testLogger())

	// The expert tier would attack the weakened opponent, but a cursed bot
	// holding a heal always plays it.
	snap := botSnapshot(
		duel.View{ID: "b1", Character: duel.Knight, HP: 60, CurseTurns: 2, Hand: []duel.Card{duel.Attack, duel.Heal}},
		duel.View{HP: 100, Shield: 0},
	)

	d := b.Decide(snap)
	assert.Equal(t, 1, d.CardIndex)
	assert.Equal(t, duel.Heal, snap.Self.Hand[d.CardIndex])
}

func TestBotCurseOverrideKeepsChosenHeal(t *testing.T) {
	b := New("b1", "Tester", duel.Cleric, duel.Expert, 1, testLogger())

	snap := botSnapshot(
		duel.View{ID: "b1", Character: duel.Cleric, HP: 20, CurseTurns: 1, Hand: []duel.Card{duel.Heal, duel.Attack}},
		duel.View{HP: 100, Shield: 30},
	)

	d := b.Decide(snap)
	assert.Equal(t, 0, d.CardIndex, "the strategy's own heal choice stands")
}

func TestBotObserveRecordsOpponentActions(t *testing.T) {
	b := New("b1", "Tester", duel.Witch, duel.Hard, 1, testLogger())

	attack := duel.Attack
	heal := duel.Heal
	b.Observe(duel.TurnResult{
		Outcomes: [2]duel.ActionOutcome{
			{ParticipantID: "b1", Card: &heal},
			{ParticipantID: "opp", Card: &attack},
		},
	})

	last, ok := b.History().LastAction()
	require.True(t, ok)
	assert.Equal(t, duel.Attack, last, "only the opponent's card is recorded")
	assert.Len(t, b.History().Actions(), 1)
}

func TestBotDecideRecordsTurnSnapshots(t *testing.T) {
	b := New("b1", "Tester", duel.Warden, duel.Medium, 1, testLogger())

	snap := botSnapshot(
		duel.View{ID: "b1", Character: duel.Warden, HP: 70, Hand: []duel.Card{duel.Defend}},
		duel.View{HP: 55, HandSize: 5},
	)
	b.Decide(snap)

	require.Len(t, b.history.turns, 1)
	assert.Equal(t, 70, b.history.turns[0].OwnHP)
	assert.Equal(t, 55, b.history.turns[0].OppHP)
	assert.Equal(t, 5, b.history.turns[0].OppHandSize)
}

func TestBotIsDeterministicForSeed(t *testing.T) {
	snap := botSnapshot(
		duel.View{ID: "b1", Character: duel.Witch, HP: 80, Hand: []duel.Card{duel.Attack, duel.Curse, duel.Heal}},
		duel.View{HP: 90, Shield: 5},
	)

	a := New("b1", "Tester", duel.Witch, duel.Easy, 42, testLogger())
	b := New("b1", "Tester", duel.Witch, duel.Easy, 42, testLogger())
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Decide(snap), b.Decide(snap))
	}
}

// Full bot-vs-bot duels across every tier pairing must run to a terminal
// result without touching the real clock's deadline path.
func TestBotMatchesPlayToCompletion(t *testing.T) {
	logger := testLogger()
	rng := rand.New(rand.NewPCG(7, 8))
	rules := duel.DefaultRules()

	for _, da := range duel.Difficulties() {
		for _, db := range duel.Difficulties() {
			seatA := duel.Seat{ID: "a", Name: "A", Character: duel.Knight, Difficulty: da}
			seatB := duel.Seat{ID: "b", Name: "B", Character: duel.Cleric, Difficulty: db}
			m := duel.NewMatch("m", rules, seatA, seatB, quartz.NewReal(), rng, logger)

			require.NoError(t, m.SetAgent("a", New("a", "A", duel.Knight, da, rng.Int64(), logger)))
			require.NoError(t, m.SetAgent("b", New("b", "B", duel.Cleric, db, rng.Int64(), logger)))
			require.NoError(t, m.Start())

			res := m.Result()
			require.NotNil(t, res, "%s vs %s never finished", da, db)
			assert.LessOrEqual(t, res.Turns, rules.TurnLimit)
			if !res.Draw {
				assert.Contains(t, []string{"a", "b"}, res.WinnerID)
			}
		}
	}
}
