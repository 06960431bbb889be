package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/kurobon/gitbttf/internal/console"
)

// defaultSessionID is used when a client does not send one.
const defaultSessionID = "user-session-1"

type Server struct {
	Sessions *console.Manager
	Mux      *http.ServeMux
	logger   *log.Logger
	upgrader websocket.Upgrader
}

func NewServer(m *console.Manager) *Server {
	s := &Server{
		Sessions: m,
		Mux:      http.NewServeMux(),
		logger:   m.Logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Mux.HandleFunc("/ping", s.handlePing)
	s.Mux.HandleFunc("/api/session/init", s.handleInitSession)
	s.Mux.HandleFunc("/api/session/reset", s.handleResetSession)
	s.Mux.HandleFunc("/api/session/demo", s.handleLoadDemo)
	s.Mux.HandleFunc("/api/command", s.handleExecCommand)
	s.Mux.HandleFunc("/api/state", s.handleGetState)
	s.Mux.HandleFunc("/api/ws", s.handleWebSocket)
	s.Mux.HandleFunc("/api/exercises", s.handleListExercises)
	s.Mux.HandleFunc("/api/exercises/start", s.handleStartExercises)
	s.Mux.HandleFunc("/api/exercises/hint", s.handleHint)
	s.Mux.HandleFunc("/api/progress", s.handleProgress)
	s.Mux.HandleFunc("/api/achievements", s.handleAchievements)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Mux.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// session returns the session for id, recreating it when the server forgot
// it (a restart, typically).
func (s *Server) session(id string) (*console.Session, error) {
	if id == "" {
		id = defaultSessionID
	}
	if sess, ok := s.Sessions.GetSession(id); ok {
		return sess, nil
	}
	s.logger.Info("session not found, recreating", "session", id)
	return s.Sessions.GetOrCreate(id)
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "pong",
		"system":  "gitbttf",
	})
}

func (s *Server) handleInitSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess, err := s.Sessions.CreateSession()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "session created",
		"sessionId": sess.ID,
	})
}

type SessionRequest struct {
	SessionID string `json:"sessionId"`
}

func (s *Server) decodeSession(w http.ResponseWriter, r *http.Request) (*console.Session, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}
	var req SessionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return nil, false
		}
	}
	sess, err := s.session(req.SessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return sess, true
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.decodeSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Reset(r.Context()))
}

func (s *Server) handleLoadDemo(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.decodeSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.LoadDemo(r.Context()))
}
