// Package bot implements the tiered AI opponent: four difficulty
// strategies, a personality model, and an opponent-history tracker. Bots
// never mutate match state; they implement duel.Agent and only return
// submissions.
package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/kestrelgames/duelbots/internal/duel"
	"github.com/kestrelgames/duelbots/internal/randutil"
)

// Bot is one AI-controlled participant. Its ID doubles as the participant
// ID of the seat it controls.
type Bot struct {
	ID         string
	Name       string
	Character  duel.Character
	Difficulty duel.Difficulty

	personality Personality
	history     *History
	strategy    Strategy
	rng         *rand.Rand
	logger      *log.Logger
}

// New creates a bot with traits derived once from character and difficulty.
// The seed makes every random sequence the bot consumes reproducible.
func New(id, name string, c duel.Character, d duel.Difficulty, seed int64, logger *log.Logger) *Bot {
	rng := randutil.New(seed)
	return &Bot{
		ID:          id,
		Name:        name,
		Character:   c,
		Difficulty:  d,
		personality: NewPersonality(c, d, rng),
		history:     NewHistory(historyCapacity),
		strategy:    ForDifficulty(d),
		rng:         rng,
		logger:      logger.WithPrefix("bot").With("bot", id, "tier", d),
	}
}

// Personality returns the bot's immutable traits.
func (b *Bot) Personality() Personality { return b.personality }

// History returns the bot's opponent-history tracker.
func (b *Bot) History() *History { return b.history }

// Act implements duel.Agent.
func (b *Bot) Act(snap duel.Snapshot) duel.Submission {
	d := b.Decide(snap)
	return duel.Submission{CardIndex: d.CardIndex, UseSpecial: d.UseSpecial}
}

// Decide selects an action for the current snapshot. An empty hand yields
// the pass decision. The curse override runs last, after the tier strategy:
// a cursed bot holding a heal always plays it.
func (b *Bot) Decide(snap duel.Snapshot) Decision {
	b.history.RecordTurn(TurnSnapshot{
		Turn:        snap.Turn,
		OwnHP:       snap.Self.HP,
		OwnShield:   snap.Self.Shield,
		OppHP:       snap.Opponent.HP,
		OppShield:   snap.Opponent.Shield,
		OppHandSize: snap.Opponent.HandSize,
	})

	if len(snap.Self.Hand) == 0 {
		return pass()
	}

	d := b.strategy.Decide(Input{
		Snap:        snap,
		Personality: b.personality,
		History:     b.history,
		Rng:         b.rng,
	})

	if snap.Self.CurseTurns > 0 {
		if idx := firstIndex(snap.Self.Hand, duel.Heal); idx >= 0 && snap.Self.Hand[d.CardIndex] != duel.Heal {
			b.logger.Debug("curse override, playing heal", "turn", snap.Turn)
			d = Decision{
				CardIndex:  idx,
				UseSpecial: d.UseSpecial && specialEligible(snap, duel.Heal),
			}
		}
	}
	return d
}

// Observe implements duel.Observer, feeding the opponent's played card into
// the history tracker.
func (b *Bot) Observe(result duel.TurnResult) {
	for _, out := range result.Outcomes {
		if out.ParticipantID != b.ID && out.Card != nil {
			b.history.RecordAction(*out.Card)
		}
	}
}
