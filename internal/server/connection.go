package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/kestrelgames/duelbots/internal/matchid"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrSendBufferFull   = errors.New("send buffer full")
)

// Connection wraps one WebSocket client. Each connection controls exactly
// one participant identity, minted on connect.
type Connection struct {
	conn          *websocket.Conn
	send          chan *Message
	participantID string
	logger        *log.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	mu            sync.RWMutex
	closeOnce     sync.Once
	matchID       string
	service       *MatchService
}

// NewConnection creates a connection wrapper with a fresh participant ID.
func NewConnection(conn *websocket.Conn, service *MatchService, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	id := "player-" + matchid.New()

	return &Connection{
		conn:          conn,
		send:          make(chan *Message, 256),
		participantID: id,
		logger:        logger.WithPrefix("conn").With("participant", id),
		ctx:           ctx,
		cancel:        cancel,
		service:       service,
	}
}

// Start begins handling the connection.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// ParticipantID returns the identity minted for this connection.
func (c *Connection) ParticipantID() string {
	return c.participantID
}

// Send queues a message for delivery. Slow consumers are disconnected
// rather than allowed to block the match.
func (c *Connection) Send(msg *Message) error {
	if msg.Type == MessageTypeMatchEnd {
		c.setMatch("")
	}
	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
		c.logger.Warn("send buffer full, dropping connection")
		_ = c.Close()
		return ErrSendBufferFull
	}
}

func (c *Connection) setMatch(id string) {
	c.mu.Lock()
	c.matchID = id
	c.mu.Unlock()
}

func (c *Connection) currentMatch() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.matchID
}

// readPump reads and dispatches client messages until the socket closes.
func (c *Connection) readPump() {
	defer func() {
		_ = c.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("unexpected close", "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.sendError("bad_message", "message is not valid JSON")
			continue
		}
		c.handleMessage(&msg)
	}
}

// writePump writes queued messages and keepalive pings.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Connection) handleMessage(msg *Message) {
	switch msg.Type {
	case MessageTypeCreateMatch:
		var data CreateMatchData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("bad_message", "invalid create_match payload")
			return
		}
		c.handleCreateMatch(data)

	case MessageTypeSubmitAction:
		var data SubmitActionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("bad_message", "invalid submit_action payload")
			return
		}
		if err := c.service.SubmitAction(data.MatchID, c.participantID, data.Turn, data.CardIndex, data.UseSpecial); err != nil {
			c.sendError("rejected", err.Error())
		}

	case MessageTypeAbortMatch:
		var data AbortMatchData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("bad_message", "invalid abort_match payload")
			return
		}
		if err := c.service.Abort(data.MatchID); err != nil {
			c.sendError("rejected", err.Error())
		}

	case MessageTypeListBots:
		reply, err := NewMessage(MessageTypeBotList, c.service.BotList())
		if err == nil {
			_ = c.Send(reply)
		}

	default:
		c.sendError("bad_message", "unknown message type: "+string(msg.Type))
	}
}

func (c *Connection) handleCreateMatch(data CreateMatchData) {
	if c.currentMatch() != "" {
		c.sendError("rejected", "connection already has a live match")
		return
	}
	start, err := c.service.CreateMatch(c.participantID, data.PlayerName, data.Character, data.Bot)
	if err != nil {
		c.sendError("rejected", err.Error())
		return
	}
	c.setMatch(start.MatchID)

	reply, err := NewMessage(MessageTypeMatchStart, start)
	if err != nil {
		c.logger.Error("failed to build match start message", "error", err)
		return
	}
	_ = c.Send(reply)
}

func (c *Connection) sendError(code, message string) {
	msg, err := NewMessage(MessageTypeError, ErrorData{Code: code, Message: message})
	if err != nil {
		return
	}
	_ = c.Send(msg)
}
