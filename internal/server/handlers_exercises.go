package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kurobon/gitbttf/internal/achievement"
	"github.com/kurobon/gitbttf/internal/console"
	"github.com/kurobon/gitbttf/internal/exercise"
	"github.com/kurobon/gitbttf/internal/progress"
)

// ScreenInfo is a screen plus its navigation status.
type ScreenInfo struct {
	exercise.Screen
	Locked    bool `json:"locked"`
	Completed bool `json:"completed"`
}

type StartExercisesRequest struct {
	SessionID string `json:"sessionId"`
	ScreenID  int    `json:"screenId"`
}

type ProgressResponse struct {
	Levels     []progress.Level `json:"levels"`
	Percentage int              `json:"percentage"`
}

type AchievementsResponse struct {
	Achievements []achievement.Achievement `json:"achievements"`
	Summary      achievement.Summary       `json:"summary"`
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := make(map[int]progress.Level)
	if levels := s.Sessions.Levels(); levels != nil {
		for _, l := range levels.Levels() {
			status[l.ID] = l
		}
	}

	screens := s.Sessions.Catalog().Screens()
	out := make([]ScreenInfo, len(screens))
	for i, sc := range screens {
		out[i] = ScreenInfo{Screen: sc}
		if l, ok := status[sc.ID]; ok {
			out[i].Locked, out[i].Completed = l.Locked, l.Completed
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStartExercises(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req StartExercisesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	sess, err := s.session(req.SessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp, err := sess.StartScreen(req.ScreenID)
	switch {
	case errors.Is(err, console.ErrScreenNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, console.ErrScreenLocked):
		http.Error(w, "🔒 Esta pantalla está bloqueada. Completa la pantalla anterior primero.", http.StatusForbidden)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.decodeSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Execute(r.Context(), "hint"))
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	levels := s.Sessions.Levels()
	if levels == nil {
		http.Error(w, "progress tracking disabled", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
	case http.MethodDelete:
		if err := levels.Reset(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, ProgressResponse{Levels: levels.Levels(), Percentage: levels.Percentage()})
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	tracker := s.Sessions.Achievements()
	if tracker == nil {
		http.Error(w, "achievements disabled", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
	case http.MethodDelete:
		if err := tracker.ResetAll(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, AchievementsResponse{Achievements: tracker.All(), Summary: tracker.Summary()})
}
