// Package api serves the local status endpoint and pushes accent and playback
// updates to websocket clients.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dixieflatline76/Reel/util/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// DefaultAddr is the loopback address the server listens on.
const DefaultAddr = "127.0.0.1:49453"

const writeTimeout = 5 * time.Second

// Status is the snapshot reported by /status.
type Status struct {
	State  string `json:"state"`
	Video  string `json:"video"`
	Accent string `json:"accent"`
}

// StatusProvider supplies the current application state.
type StatusProvider interface {
	Status() Status
	Thumbnail() []byte
}

// Message is a websocket frame sent to clients.
type Message struct {
	Type     string `json:"type"`
	ClientID string `json:"client_id,omitempty"`
	Color    string `json:"color,omitempty"`
	State    string `json:"state,omitempty"`
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}

// Server represents the local REST/WebSocket server.
type Server struct {
	addr       string
	listener   net.Listener
	httpServer *http.Server
	mux        *http.ServeMux
	upgrader   websocket.Upgrader
	status     StatusProvider

	// WebSocket management
	clients   map[*websocket.Conn]*client
	clientsMu sync.Mutex
}

// NewServer creates a new API server on DefaultAddr reporting the state from status.
func NewServer(status StatusProvider) *Server {
	return NewServerAt(DefaultAddr, status)
}

// NewServerAt is NewServer bound to addr.
func NewServerAt(addr string, status StatusProvider) *Server {
	s := &Server{
		addr:   addr,
		mux:    http.NewServeMux(),
		status: status,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*websocket.Conn]*client),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/health", s.enableCORS(s.handleHealth))
	s.mux.HandleFunc("/status", s.enableCORS(s.handleStatus))
	s.mux.HandleFunc("/thumbnail", s.enableCORS(s.handleThumbnail))
	s.mux.HandleFunc("/ws", s.handleWebSocket)
}

// enableCORS adds CORS headers to the handler.
func (s *Server) enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Listen binds the server address without serving. A Stop after Listen
// releases the address even if Serve never runs.
func (s *Server) Listen() error {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if s.httpServer != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("binding accent API: %w", err)
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("Accent API listening on %s", ln.Addr())
	return nil
}

// Serve accepts connections on the bound address. It blocks until Stop is called
// and returns nil if the server was stopped or never bound.
func (s *Server) Serve() error {
	s.clientsMu.Lock()
	srv, ln := s.httpServer, s.listener
	s.clientsMu.Unlock()
	if srv == nil {
		return nil
	}

	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) || errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// Start binds and serves. It blocks until Stop is called.
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Addr returns the bound address, or the configured one before Listen.
func (s *Server) Addr() string {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Stop shuts the server down and disconnects every websocket client.
func (s *Server) Stop(ctx context.Context) error {
	s.clientsMu.Lock()
	srv, ln := s.httpServer, s.listener
	s.httpServer, s.listener = nil, nil
	for conn := range s.clients {
		conn.Close()
		delete(s.clients, conn)
	}
	s.clientsMu.Unlock()

	if srv == nil {
		return nil
	}
	// Shutdown only closes listeners that Serve has already picked up.
	if err := ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Debugf("Closing accent API listener: %v", err)
	}
	return srv.Shutdown(ctx)
}

// ClientCount returns the number of connected websocket clients.
func (s *Server) ClientCount() int {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	return len(s.clients)
}

// BroadcastAccent sends an "accent" message with the hex color to all clients.
func (s *Server) BroadcastAccent(hex string) {
	s.broadcast(Message{Type: "accent", Color: hex})
}

// BroadcastState sends a "state" message to all clients.
func (s *Server) BroadcastState(state string) {
	s.broadcast(Message{Type: "state", State: state})
}

func (s *Server) broadcast(msg Message) {
	s.clientsMu.Lock()
	targets := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		targets = append(targets, c)
	}
	s.clientsMu.Unlock()

	for _, c := range targets {
		if err := c.send(msg); err != nil {
			log.Printf("Failed to broadcast to client %s: %v", c.id, err)
			s.drop(c)
		}
	}
}

func (s *Server) drop(c *client) {
	s.clientsMu.Lock()
	delete(s.clients, c.conn)
	s.clientsMu.Unlock()
	c.conn.Close()
}
