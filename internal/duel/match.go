package duel

import (
	"errors"
	"fmt"
	"sync"
	"time"

	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Phase is the match state machine position.
type Phase int

const (
	PhaseDeckbuild Phase = iota
	PhasePlay
	PhaseResolve
	PhaseEnded
)

// String returns the wire name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseDeckbuild:
		return "deckbuild"
	case PhasePlay:
		return "play"
	case PhaseResolve:
		return "resolve"
	case PhaseEnded:
		return "ended"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Submission is one participant's chosen action for the current turn.
// CardIndex -1 is an explicit pass, only valid with an empty hand.
type Submission struct {
	CardIndex  int
	UseSpecial bool
}

// PassSubmission returns the no-card submission.
func PassSubmission() Submission {
	return Submission{CardIndex: -1}
}

// Snapshot is the copy-on-read match state handed to decision code. The
// decision engine never mutates match state; it only returns a Submission.
type Snapshot struct {
	MatchID  string
	Turn     int
	Rules    Rules
	Self     View
	Opponent View
}

// Agent produces a submission for an AI-controlled seat the moment a turn
// opens. Implementations must be pure with respect to match state.
type Agent interface {
	Act(snap Snapshot) Submission
}

// Observer is an optional Agent extension. Observing agents receive each
// TurnResult before the next turn's Act call, so opponent-history tracking
// stays one step ahead of the decision.
type Observer interface {
	Observe(result TurnResult)
}

// Seat describes one side of a match before decks are built.
type Seat struct {
	ID         string
	Name       string
	Character  Character
	Difficulty Difficulty
}

// Submission rejection errors. All leave match state untouched.
var (
	ErrNotInPlay          = errors.New("match is not accepting submissions")
	ErrUnknownParticipant = errors.New("unknown participant")
	ErrAlreadySubmitted   = errors.New("participant already submitted this turn")
	ErrCardIndex          = errors.New("card index out of range")
	ErrTurnMismatch       = errors.New("submission is for a different turn")
)

// Match is the authoritative state for one duel. A Match owns both
// Participants exclusively; all mutation happens in its resolution step
// under the match lock. Turn and end handlers fire synchronously and must
// not call back into the Match.
type Match struct {
	ID string

	rules  Rules
	clock  quartz.Clock
	rng    *rand.Rand
	logger *log.Logger

	mu       sync.Mutex
	phase    Phase
	turn     int
	deadline time.Time
	timer    *quartz.Timer
	epoch    int // bumps every armed turn so stale timers become no-ops
	seats    [2]Seat
	sides    [2]*Participant
	agents   [2]Agent
	subs     map[string]Submission
	result   *MatchResult

	onTurn func(TurnResult)
	onEnd  func(MatchResult)
}

// NewMatch creates a match in the deckbuild phase. Decks and hands are
// generated when Start is called.
func NewMatch(id string, rules Rules, a, b Seat, clock quartz.Clock, rng *rand.Rand, logger *log.Logger) *Match {
	return &Match{
		ID:     id,
		rules:  rules,
		clock:  clock,
		rng:    rng,
		logger: logger.WithPrefix("match").With("match", id),
		phase:  PhaseDeckbuild,
		seats:  [2]Seat{a, b},
		subs:   make(map[string]Submission, 2),
	}
}

// SetAgent attaches an AI agent to a seat. Must be called before Start.
func (m *Match) SetAgent(participantID string, agent Agent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.seats {
		if s.ID == participantID {
			m.agents[i] = agent
			return nil
		}
	}
	return ErrUnknownParticipant
}

// OnTurn registers the handler receiving each TurnResult.
func (m *Match) OnTurn(fn func(TurnResult)) { m.onTurn = fn }

// OnEnd registers the handler receiving the terminal MatchResult.
func (m *Match) OnEnd(fn func(MatchResult)) { m.onEnd = fn }

// Start builds both decks, opens turn 1 and invokes any attached agents.
// With agents on both seats the whole match plays out before Start returns.
func (m *Match) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseDeckbuild {
		return fmt.Errorf("match %s already started (phase %s)", m.ID, m.phase)
	}

	for i, s := range m.seats {
		m.sides[i] = NewParticipant(s.ID, s.Name, s.Character, s.Difficulty, m.rules, m.rng)
	}
	m.logger.Info("match started",
		"a", m.seats[0].Name, "a_character", m.seats[0].Character,
		"b", m.seats[1].Name, "b_character", m.seats[1].Character)

	m.openTurnLocked()
	m.advanceLocked()
	return nil
}

// SubmitAction records a participant's action for the current turn. It is
// rejected without state change outside the play phase, on a duplicate
// submission, or with an out-of-range card index.
func (m *Match) SubmitAction(participantID string, cardIndex int, useSpecial bool) error {
	return m.SubmitActionAt(participantID, 0, cardIndex, useSpecial)
}

// SubmitActionAt is SubmitAction with the submission stamped for a specific
// turn. A stamped submission that arrives after its turn resolved is
// rejected instead of silently binding to the next turn's refilled hand.
// Turn 0 means unstamped and always targets the current turn.
func (m *Match) SubmitActionAt(participantID string, turn, cardIndex int, useSpecial bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhasePlay {
		return ErrNotInPlay
	}
	if turn != 0 && turn != m.turn {
		return ErrTurnMismatch
	}
	side := m.sideOf(participantID)
	if side < 0 {
		return ErrUnknownParticipant
	}
	if _, dup := m.subs[participantID]; dup {
		return ErrAlreadySubmitted
	}
	hand := m.sides[side].Hand
	if cardIndex < 0 {
		// An explicit pass is only the empty-hand fallback.
		if len(hand) > 0 {
			return ErrCardIndex
		}
		cardIndex = -1
	} else if cardIndex >= len(hand) {
		return ErrCardIndex
	}

	m.subs[participantID] = Submission{CardIndex: cardIndex, UseSpecial: useSpecial}
	m.advanceLocked()
	return nil
}

// Abort ends the match from outside, cancelling any pending deadline.
func (m *Match) Abort() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase == PhaseEnded {
		return
	}
	m.logger.Info("match aborted", "turn", m.turn)
	m.endLocked(MatchResult{MatchID: m.ID, Draw: true, Reason: EndAborted, Turns: m.turn})
}

// Phase returns the current state machine position.
func (m *Match) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Turn returns the current turn number.
func (m *Match) Turn() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.turn
}

// Deadline returns the absolute submission deadline for the open turn.
func (m *Match) Deadline() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deadline
}

// Result returns the terminal record, or nil while the match is live.
func (m *Match) Result() *MatchResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.result == nil {
		return nil
	}
	r := *m.result
	return &r
}

// Snapshot returns the copy-on-read state visible to participantID. The
// opponent's hand contents are hidden.
func (m *Match) Snapshot(participantID string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	side := m.sideOf(participantID)
	if side < 0 {
		return Snapshot{}, ErrUnknownParticipant
	}
	return m.snapshotLocked(side), nil
}

func (m *Match) snapshotLocked(side int) Snapshot {
	return Snapshot{
		MatchID:  m.ID,
		Turn:     m.turn,
		Rules:    m.rules,
		Self:     m.sides[side].view(true),
		Opponent: m.sides[1-side].view(false),
	}
}

func (m *Match) sideOf(participantID string) int {
	for i, p := range m.sides {
		if p != nil && p.ID == participantID {
			return i
		}
	}
	return -1
}

// openTurnLocked advances the turn counter, clears submissions, and arms
// the deadline timer. Arming bumps the epoch so at most one live deadline
// exists per match.
func (m *Match) openTurnLocked() {
	m.turn++
	m.phase = PhasePlay
	m.subs = make(map[string]Submission, 2)
	m.epoch++
	epoch := m.epoch

	if m.timer != nil {
		m.timer.Stop()
	}
	m.deadline = m.clock.Now().Add(m.rules.TurnTimeout)
	m.timer = m.clock.AfterFunc(m.rules.TurnTimeout, func() {
		m.deadlineElapsed(epoch)
	})

	m.logger.Debug("turn opened", "turn", m.turn, "deadline", m.deadline)

	// AI decisions are synchronous and never race the deadline.
	for i, agent := range m.agents {
		if agent == nil {
			continue
		}
		sub := agent.Act(m.snapshotLocked(i))
		m.subs[m.sides[i].ID] = m.clampLocked(i, sub)
	}
}

// clampLocked normalizes an agent submission so a buggy strategy can never
// corrupt match state.
func (m *Match) clampLocked(side int, sub Submission) Submission {
	if sub.CardIndex < 0 || sub.CardIndex >= len(m.sides[side].Hand) {
		return PassSubmission()
	}
	return sub
}

// advanceLocked resolves turns for as long as both submissions are present,
// which plays bot-vs-bot matches to completion in one call.
func (m *Match) advanceLocked() {
	for m.phase == PhasePlay && len(m.subs) == 2 {
		m.resolveLocked()
	}
}

// deadlineElapsed is the timer callback. A stale epoch or a phase change
// means resolution already won the race; the losing trigger is a no-op.
func (m *Match) deadlineElapsed(epoch int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhasePlay || epoch != m.epoch {
		return
	}
	for i, p := range m.sides {
		if _, ok := m.subs[p.ID]; !ok {
			m.subs[p.ID] = m.defaultSubmissionLocked(i)
			m.logger.Warn("deadline elapsed, default action substituted",
				"participant", p.ID, "turn", m.turn)
		}
	}
	m.advanceLocked()
}

// defaultSubmissionLocked is the documented deadline policy: play the first
// defend card in hand, otherwise pass. Defending never punishes a lagging
// participant and never wastes a heal.
func (m *Match) defaultSubmissionLocked(side int) Submission {
	if idx, ok := m.sides[side].HasCard(Defend); ok {
		return Submission{CardIndex: idx}
	}
	return PassSubmission()
}

// resolveLocked applies both submissions simultaneously, emits the
// TurnResult, and either ends the match or opens the next turn.
func (m *Match) resolveLocked() {
	m.phase = PhaseResolve
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}

	a, b := m.sides[0], m.sides[1]
	outA, outB := resolveActions(a, b, m.subs[a.ID], m.subs[b.ID], m.rules)

	result := TurnResult{
		MatchID:  m.ID,
		Turn:     m.turn,
		Outcomes: [2]ActionOutcome{outA, outB},
	}

	m.logger.Debug("turn resolved",
		"turn", m.turn,
		"a_hp", a.HP, "a_shield", a.Shield,
		"b_hp", b.HP, "b_shield", b.Shield)

	// Observing agents see the outcome before anyone acts on the next turn.
	for _, agent := range m.agents {
		if obs, ok := agent.(Observer); ok {
			obs.Observe(result)
		}
	}

	switch {
	case !a.Alive() || !b.Alive():
		result.Ended = true
		result.Hands = m.handsLocked()
		m.emitTurn(result)
		m.endLocked(m.knockoutResultLocked())
	case m.turn >= m.rules.TurnLimit:
		result.Ended = true
		result.Hands = m.handsLocked()
		m.emitTurn(result)
		m.endLocked(m.tieBreakResultLocked())
	default:
		// Hands refill to the configured size between turns.
		a.DrawCards(m.rules.HandSize-len(a.Hand), m.rng)
		b.DrawCards(m.rules.HandSize-len(b.Hand), m.rng)
		m.openTurnLocked()
		result.NextTurn = m.turn
		result.NextDeadline = m.deadline
		result.Hands = m.handsLocked()
		m.emitTurn(result)
	}
}

func (m *Match) knockoutResultLocked() MatchResult {
	a, b := m.sides[0], m.sides[1]
	res := MatchResult{MatchID: m.ID, Reason: EndKnockout, Turns: m.turn}
	switch {
	case !a.Alive() && !b.Alive():
		res.Draw = true
	case !b.Alive():
		res.WinnerID = a.ID
	default:
		res.WinnerID = b.ID
	}
	return res
}

// tieBreakResultLocked ends a turn-capped match: higher remaining HP wins,
// equal HP is a draw.
func (m *Match) tieBreakResultLocked() MatchResult {
	a, b := m.sides[0], m.sides[1]
	res := MatchResult{MatchID: m.ID, Reason: EndTurnLimit, Turns: m.turn}
	switch {
	case a.HP > b.HP:
		res.WinnerID = a.ID
	case b.HP > a.HP:
		res.WinnerID = b.ID
	default:
		res.Draw = true
	}
	return res
}

func (m *Match) endLocked(res MatchResult) {
	m.phase = PhaseEnded
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.epoch++ // invalidate any timer that already fired and is waiting on the lock
	m.result = &res
	m.logger.Info("match ended", "winner", res.WinnerID, "draw", res.Draw, "reason", res.Reason, "turns", res.Turns)
	if m.onEnd != nil {
		m.onEnd(res)
	}
}

func (m *Match) handsLocked() [2][]Card {
	return [2][]Card{
		append([]Card(nil), m.sides[0].Hand...),
		append([]Card(nil), m.sides[1].Hand...),
	}
}

func (m *Match) emitTurn(result TurnResult) {
	if m.onTurn != nil {
		m.onTurn(result)
	}
}
