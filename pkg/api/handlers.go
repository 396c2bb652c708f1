package api

import (
	"encoding/json"
	"net/http"

	"github.com/dixieflatline76/Reel/config"
	"github.com/dixieflatline76/Reel/util/log"
	"github.com/google/uuid"
)

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "running",
		"version": config.AppVersion,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleStatus returns the playback state, video path and accent color.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.status.Status()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleThumbnail serves the PNG thumbnail of the current video.
func (s *Server) handleThumbnail(w http.ResponseWriter, r *http.Request) {
	thumb := s.status.Thumbnail()
	if len(thumb) == 0 {
		http.Error(w, "No thumbnail", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(thumb)
}

// handleWebSocket upgrades the connection, greets the client with its id and the
// current state, then serves pings until the client goes away.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	c := &client{id: uuid.New(), conn: conn}

	st := s.status.Status()
	for _, msg := range []Message{
		{Type: "hello", ClientID: c.id.String()},
		{Type: "state", State: st.State},
		{Type: "accent", Color: st.Accent},
	} {
		if err := c.send(msg); err != nil {
			conn.Close()
			return
		}
	}

	s.clientsMu.Lock()
	s.clients[conn] = c
	s.clientsMu.Unlock()
	log.Debugf("WebSocket client %s connected", c.id)

	defer func() {
		s.drop(c)
		log.Debugf("WebSocket client %s disconnected", c.id)
	}()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type == "ping" {
			if err := c.send(Message{Type: "pong", ClientID: c.id.String()}); err != nil {
				return
			}
		}
	}
}
