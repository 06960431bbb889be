package server

import (
	"encoding/json"
	"net/http"
)

type CommandRequest struct {
	SessionID string `json:"sessionId"`
	Command   string `json:"command"`
}

func (s *Server) handleExecCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, err := s.session(req.SessionID)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"error": "failed to restore session: " + err.Error()})
		return
	}

	s.logger.Info("command received", "session", sess.ID, "cmd", req.Command)
	writeJSON(w, http.StatusOK, sess.Execute(r.Context(), req.Command))
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, err := s.session(r.URL.Query().Get("sessionId"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}
