package server

import (
	"fmt"
	"sync"
	"time"

	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/kestrelgames/duelbots/internal/bot"
	"github.com/kestrelgames/duelbots/internal/duel"
	"github.com/kestrelgames/duelbots/internal/matchid"
	"github.com/kestrelgames/duelbots/internal/randutil"
)

// botTTL bounds how long an unreleased bot survives in the registry before
// the periodic sweep reclaims it.
const botTTL = time.Hour

// Sender delivers a message to a connected participant.
type Sender interface {
	SendToParticipant(participantID string, msg *Message) error
}

// MatchService owns all live matches and the bot registry, and routes
// submissions from the transport into the right match.
type MatchService struct {
	rules      duel.Rules
	botConfigs []BotConfig
	bots       *bot.Registry
	clock      quartz.Clock
	sender     Sender
	logger     *log.Logger

	mu      sync.Mutex
	matches map[string]*matchEntry
	seedRng *rand.Rand
}

type matchEntry struct {
	match   *duel.Match
	humanID string
	botID   string
}

// NewMatchService creates the service. The seed makes every match the
// service creates reproducible.
func NewMatchService(cfg *ServerConfig, sender Sender, clock quartz.Clock, seed int64, logger *log.Logger) *MatchService {
	return &MatchService{
		rules:      cfg.DuelRules(),
		botConfigs: cfg.Bots,
		bots:       bot.NewRegistry(clock, botTTL, logger),
		clock:      clock,
		sender:     sender,
		logger:     logger.WithPrefix("matches"),
		matches:    make(map[string]*matchEntry),
		seedRng:    randutil.New(seed),
	}
}

// Registry exposes the bot store, for the sweeper goroutine.
func (s *MatchService) Registry() *bot.Registry { return s.bots }

// BotList returns the configured stock opponents.
func (s *MatchService) BotList() BotListData {
	infos := make([]BotInfo, len(s.botConfigs))
	for i, b := range s.botConfigs {
		infos[i] = BotInfo{Name: b.Name, Character: b.Character, Difficulty: b.Difficulty}
	}
	return BotListData{Bots: infos}
}

// CreateMatch starts a duel between the connected human and a configured
// bot, and returns the opening state for the human.
func (s *MatchService) CreateMatch(humanID, playerName, character, botName string) (*MatchStartData, error) {
	ch, err := duel.ParseCharacter(character)
	if err != nil {
		return nil, err
	}
	bc, err := s.findBotConfig(botName)
	if err != nil {
		return nil, err
	}
	botCh, _ := duel.ParseCharacter(bc.Character)
	botDiff, _ := duel.ParseDifficulty(bc.Difficulty)

	s.mu.Lock()
	seed := s.seedRng.Int64()
	botSeed := s.seedRng.Int64()
	s.mu.Unlock()

	b := s.bots.Create(bc.Name, botCh, botDiff, botSeed)

	id := matchid.New()
	// Human decks use the medium shape, which is the unperturbed baseline.
	m := duel.NewMatch(id, s.rules,
		duel.Seat{ID: humanID, Name: playerName, Character: ch, Difficulty: duel.Medium},
		duel.Seat{ID: b.ID, Name: b.Name, Character: botCh, Difficulty: botDiff},
		s.clock, randutil.New(seed), s.logger)

	if err := m.SetAgent(b.ID, b); err != nil {
		return nil, err
	}

	entry := &matchEntry{match: m, humanID: humanID, botID: b.ID}
	s.mu.Lock()
	s.matches[id] = entry
	s.mu.Unlock()

	m.OnTurn(func(result duel.TurnResult) { s.sendTurnResult(entry, result) })
	m.OnEnd(func(result duel.MatchResult) { s.finishMatch(entry, result) })

	if err := m.Start(); err != nil {
		s.removeMatch(id)
		return nil, err
	}

	snap, err := m.Snapshot(humanID)
	if err != nil {
		return nil, err
	}
	start := &MatchStartData{
		MatchID:  id,
		Turn:     snap.Turn,
		Deadline: m.Deadline(),
		You:      participantState(snap.Self),
		Opponent: participantState(snap.Opponent),
	}
	s.logger.Info("match created", "match", id, "player", playerName, "bot", b.Name)
	return start, nil
}

// SubmitAction routes a human submission into its match. A nil cardIndex is
// the empty-hand pass. A non-zero turn stamps the submission for that turn
// and a stale stamp is rejected.
func (s *MatchService) SubmitAction(matchID, participantID string, turn int, cardIndex *int, useSpecial bool) error {
	entry, ok := s.lookup(matchID)
	if !ok {
		return fmt.Errorf("unknown match: %s", matchID)
	}
	idx := -1
	if cardIndex != nil {
		idx = *cardIndex
	}
	return entry.match.SubmitActionAt(participantID, turn, idx, useSpecial)
}

// Abort abandons a match on behalf of a participant, e.g. on disconnect.
func (s *MatchService) Abort(matchID string) error {
	entry, ok := s.lookup(matchID)
	if !ok {
		return fmt.Errorf("unknown match: %s", matchID)
	}
	entry.match.Abort()
	return nil
}

// AbortAllFor abandons every live match a participant is part of.
func (s *MatchService) AbortAllFor(participantID string) {
	s.mu.Lock()
	var stale []*matchEntry
	for _, e := range s.matches {
		if e.humanID == participantID {
			stale = append(stale, e)
		}
	}
	s.mu.Unlock()
	for _, e := range stale {
		e.match.Abort()
	}
}

// MatchCount returns the number of live matches.
func (s *MatchService) MatchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.matches)
}

func (s *MatchService) lookup(matchID string) (*matchEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.matches[matchID]
	return e, ok
}

func (s *MatchService) removeMatch(matchID string) {
	s.mu.Lock()
	delete(s.matches, matchID)
	s.mu.Unlock()
}

func (s *MatchService) findBotConfig(name string) (BotConfig, error) {
	if len(s.botConfigs) == 0 {
		return BotConfig{}, fmt.Errorf("no bots configured")
	}
	if name == "" {
		return s.botConfigs[0], nil
	}
	for _, b := range s.botConfigs {
		if b.Name == name {
			return b, nil
		}
	}
	return BotConfig{}, fmt.Errorf("unknown bot: %s", name)
}

// sendTurnResult forwards a resolution to the human side, revealing only
// their own refilled hand.
func (s *MatchService) sendTurnResult(entry *matchEntry, result duel.TurnResult) {
	data := TurnResultData{
		MatchID: result.MatchID,
		Turn:    result.Turn,
		Phase:   duel.PhasePlay.String(),
	}
	if result.Ended {
		data.Phase = duel.PhaseEnded.String()
	} else {
		data.NextTurn = result.NextTurn
		deadline := result.NextDeadline
		data.NextDeadline = &deadline
	}
	for i, out := range result.Outcomes {
		report := ActionReport{
			ParticipantID: out.ParticipantID,
			Special:       out.Special,
			DamageDealt:   out.DamageDealt,
			DamageTaken:   out.DamageTaken,
			Healed:        out.Healed,
			ShieldChange:  out.ShieldChange,
			CurseDrain:    out.CurseDrain,
			HP:            out.HP,
			Shield:        out.Shield,
		}
		if out.Card != nil {
			report.Card = out.Card.String()
		}
		data.Actions = append(data.Actions, report)
		if out.ParticipantID == entry.humanID {
			data.Hand = cardNames(result.Hands[i])
		}
	}

	msg, err := NewMessage(MessageTypeTurnResult, data)
	if err != nil {
		s.logger.Error("failed to build turn result message", "error", err)
		return
	}
	if err := s.sender.SendToParticipant(entry.humanID, msg); err != nil {
		s.logger.Warn("failed to send turn result", "participant", entry.humanID, "error", err)
	}
}

// finishMatch delivers the terminal record and releases the match's bot.
func (s *MatchService) finishMatch(entry *matchEntry, result duel.MatchResult) {
	data := MatchEndData{
		MatchID:  result.MatchID,
		WinnerID: result.WinnerID,
		Draw:     result.Draw,
		Reason:   string(result.Reason),
		Turns:    result.Turns,
	}
	msg, err := NewMessage(MessageTypeMatchEnd, data)
	if err != nil {
		s.logger.Error("failed to build match end message", "error", err)
	} else if err := s.sender.SendToParticipant(entry.humanID, msg); err != nil {
		s.logger.Warn("failed to send match end", "participant", entry.humanID, "error", err)
	}

	s.removeMatch(result.MatchID)
	s.bots.Remove(entry.botID)
}

func participantState(v duel.View) ParticipantState {
	return ParticipantState{
		ID:          v.ID,
		Name:        v.Name,
		Character:   v.Character.String(),
		HP:          v.HP,
		MaxHP:       v.MaxHP,
		Shield:      v.Shield,
		Hand:        cardNames(v.Hand),
		HandSize:    v.HandSize,
		SpecialUsed: v.SpecialUsed,
		CurseTurns:  v.CurseTurns,
	}
}

func cardNames(hand []duel.Card) []string {
	if hand == nil {
		return nil
	}
	names := make([]string, len(hand))
	for i, c := range hand {
		names[i] = c.String()
	}
	return names
}
