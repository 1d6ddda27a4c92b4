package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// shutdownTimeout bounds how long Stop waits for in-flight HTTP traffic.
const shutdownTimeout = 2 * time.Second

// Server accepts WebSocket clients and routes match traffic between them
// and the match service.
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	service     *MatchService
	httpServer  *http.Server
}

// NewServer creates a WebSocket server listening on addr.
func NewServer(addr string, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins
				// In production, implement proper origin checking
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
		httpServer:  &http.Server{Addr: addr},
	}
}

// SetMatchService wires the match service the server dispatches to.
func (s *Server) SetMatchService(service *MatchService) {
	s.service = service
}

// Start starts the WebSocket server. It blocks until the listener fails
// or Stop shuts it down.
func (s *Server) Start() error {
	go s.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	s.httpServer.Handler = mux

	s.logger.Info("Starting WebSocket server", "addr", s.addr)
	if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the listener down, closes all connections and returns once
// in-flight HTTP traffic has drained or the shutdown timeout expires.
func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// run handles connection lifecycle.
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client connected", "participant", conn.ParticipantID(), "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			_, ok := s.connections[conn]
			if ok {
				delete(s.connections, conn)
			}
			total := len(s.connections)
			s.mu.Unlock()

			if ok {
				// Abort any match the participant still had running.
				if s.service != nil {
					s.service.AbortAllFor(conn.ParticipantID())
				}
				_ = conn.Close()
				s.logger.Info("Client disconnected", "participant", conn.ParticipantID(), "total", total)
			}

		case <-s.ctx.Done():
			return
		}
	}
}

// handleWebSocket handles WebSocket upgrade requests.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.service, s.logger)
	select {
	case s.register <- client:
	case <-s.ctx.Done():
		_ = conn.Close()
		return
	}
	client.Start()

	go func() {
		<-client.ctx.Done()
		select {
		case s.unregister <- client:
		case <-s.ctx.Done():
			// Stop closes every registered connection itself.
		}
	}()
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// SendToParticipant sends a message to a specific participant.
func (s *Server) SendToParticipant(participantID string, msg *Message) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for conn := range s.connections {
		if conn.ParticipantID() == participantID {
			return conn.Send(msg)
		}
	}

	return fmt.Errorf("participant not found: %s", participantID)
}

// ConnectedParticipants returns the IDs of all connected participants.
func (s *Server) ConnectedParticipants() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for conn := range s.connections {
		ids = append(ids, conn.ParticipantID())
	}
	return ids
}
