package duel

import "time"

// EndReason names why a match ended.
type EndReason string

const (
	EndKnockout  EndReason = "knockout"
	EndTurnLimit EndReason = "turn_limit"
	EndAborted   EndReason = "aborted"
)

// ActionOutcome reports what one participant's action did during a
// resolution, plus their resulting totals.
type ActionOutcome struct {
	ParticipantID string
	Card          *Card // nil when the participant passed
	Special       bool  // special honored, not merely requested
	DamageDealt   int
	DamageTaken   int // health actually lost to attacks, after shield
	Absorbed      int // attack damage soaked by shield
	Healed        int // effective healing after the HP cap
	ShieldChange  int
	CurseDrain    int // health lost to an active curse this turn
	HP            int
	Shield        int
	CurseTurns    int
}

// TurnResult is the record handed to the transport layer after each
// resolution. Hands carries each side's refilled hand in outcome order;
// consumers must only reveal a hand to its own participant.
type TurnResult struct {
	MatchID      string
	Turn         int
	Outcomes     [2]ActionOutcome
	Hands        [2][]Card
	Ended        bool
	NextTurn     int       // 0 when the match ended
	NextDeadline time.Time // zero when the match ended
}

// MatchResult is the terminal record for a finished match.
type MatchResult struct {
	MatchID  string
	WinnerID string // empty on a draw
	Draw     bool
	Reason   EndReason
	Turns    int
}
