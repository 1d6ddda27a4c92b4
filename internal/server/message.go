package server

import (
	"encoding/json"
	"time"
)

// MessageType identifies the type of a WebSocket message.
type MessageType string

const (
	// Client -> Server
	MessageTypeCreateMatch  MessageType = "create_match"
	MessageTypeSubmitAction MessageType = "submit_action"
	MessageTypeAbortMatch   MessageType = "abort_match"
	MessageTypeListBots     MessageType = "list_bots"

	// Server -> Client
	MessageTypeMatchStart MessageType = "match_start"
	MessageTypeTurnResult MessageType = "turn_result"
	MessageTypeMatchEnd   MessageType = "match_end"
	MessageTypeBotList    MessageType = "bot_list"
	MessageTypeError      MessageType = "error"
)

// Message is the base WebSocket envelope.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a message with the current timestamp.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client -> Server Messages

// CreateMatchData challenges a configured bot to a duel.
type CreateMatchData struct {
	PlayerName string `json:"playerName"`
	Character  string `json:"character"`
	Bot        string `json:"bot"` // configured bot name; empty picks the first
}

// SubmitActionData is a participant's action for the current turn.
// CardIndex is null only for the empty-hand pass. Turn, when set, stamps
// the submission: if that turn already resolved, the action is rejected
// rather than applied to the next turn's hand. Zero leaves it unstamped.
type SubmitActionData struct {
	MatchID    string `json:"matchId"`
	Turn       int    `json:"turn,omitempty"`
	CardIndex  *int   `json:"cardIndex"`
	UseSpecial bool   `json:"useSpecial"`
}

// AbortMatchData abandons a running match.
type AbortMatchData struct {
	MatchID string `json:"matchId"`
}

// Server -> Client Messages

// ParticipantState is the client-visible view of one side. Hand is only
// populated for the receiving participant.
type ParticipantState struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Character   string   `json:"character"`
	HP          int      `json:"hp"`
	MaxHP       int      `json:"maxHp"`
	Shield      int      `json:"shield"`
	Hand        []string `json:"hand,omitempty"`
	HandSize    int      `json:"handSize"`
	SpecialUsed bool     `json:"specialUsed"`
	CurseTurns  int      `json:"curseTurns,omitempty"`
}

// MatchStartData announces a created match and the opening turn.
type MatchStartData struct {
	MatchID  string           `json:"matchId"`
	Turn     int              `json:"turn"`
	Deadline time.Time        `json:"deadline"`
	You      ParticipantState `json:"you"`
	Opponent ParticipantState `json:"opponent"`
}

// ActionReport describes one side's resolved action within a turn result.
type ActionReport struct {
	ParticipantID string `json:"participantId"`
	Card          string `json:"card,omitempty"` // empty when the side passed
	Special       bool   `json:"special"`
	DamageDealt   int    `json:"damageDealt"`
	DamageTaken   int    `json:"damageTaken"`
	Healed        int    `json:"healed"`
	ShieldChange  int    `json:"shieldChange"`
	CurseDrain    int    `json:"curseDrain,omitempty"`
	HP            int    `json:"hp"`
	Shield        int    `json:"shield"`
}

// TurnResultData is sent after each resolution.
type TurnResultData struct {
	MatchID      string         `json:"matchId"`
	Turn         int            `json:"turn"`
	Actions      []ActionReport `json:"actions"`
	Phase        string         `json:"phase"`
	NextTurn     int            `json:"nextTurn,omitempty"`
	NextDeadline *time.Time     `json:"nextDeadline,omitempty"`
	Hand         []string       `json:"hand"` // the receiver's refilled hand
}

// MatchEndData is the terminal record for a match.
type MatchEndData struct {
	MatchID  string `json:"matchId"`
	WinnerID string `json:"winnerId,omitempty"`
	Draw     bool   `json:"draw"`
	Reason   string `json:"reason"`
	Turns    int    `json:"turns"`
}

// BotListData enumerates the configured stock opponents.
type BotListData struct {
	Bots []BotInfo `json:"bots"`
}

// BotInfo describes one configured opponent.
type BotInfo struct {
	Name       string `json:"name"`
	Character  string `json:"character"`
	Difficulty string `json:"difficulty"`
}

// ErrorData reports a rejected request.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
