// Package console ties an interpreter, its graph, the exercise validator and
// the achievement tracker into one user session with a transcript.
package console

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kurobon/gitbttf/internal/achievement"
	"github.com/kurobon/gitbttf/internal/exercise"
	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/graph"
	"github.com/kurobon/gitbttf/internal/progress"
	"github.com/kurobon/gitbttf/internal/state"
)

var (
	ErrScreenNotFound = errors.New("screen not found")
	ErrScreenLocked   = errors.New("screen is locked")
)

// neutralKinds never produce exercise feedback: they inspect or prepare
// without being an answer.
var neutralKinds = map[git.Kind]bool{
	git.KindStatus: true,
	git.KindAdd:    true,
	git.KindLog:    true,
	git.KindHelp:   true,
	git.KindHint:   true,
	git.KindClear:  true,
}

// Response is what a single interaction adds to the transcript.
type Response struct {
	Lines []git.Line `json:"lines"`
	// Clear means the transcript was emptied before Lines were added.
	Clear    bool                      `json:"clear,omitempty"`
	Verdict  *exercise.Verdict         `json:"verdict,omitempty"`
	Advance  *exercise.Advance         `json:"advance,omitempty"`
	Unlocked []achievement.Achievement `json:"unlocked,omitempty"`
	Err      error                     `json:"-"`
}

// ExerciseStatus describes the active screen, if any.
type ExerciseStatus struct {
	ScreenID int                `json:"screenId"`
	Title    string             `json:"title"`
	Current  *exercise.Exercise `json:"current,omitempty"`
	Progress exercise.Progress  `json:"progress"`
}

// Snapshot is the full view of a session for the frontend.
type Snapshot struct {
	ID         string          `json:"id"`
	Repository state.Snapshot  `json:"repository"`
	Graph      *graph.State    `json:"graph"`
	Exercise   *ExerciseStatus `json:"exercise,omitempty"`
	Transcript []git.Line      `json:"transcript"`
}

// Session holds one user's console. Methods lock the session; callers do
// not need to.
type Session struct {
	ID        string
	CreatedAt time.Time

	interp    *git.Interpreter
	graph     *graph.Graph
	validator *exercise.Validator

	catalog      *exercise.Catalog
	levels       *progress.Tracker
	achievements *achievement.Tracker

	screen        *exercise.Screen
	screenStarted time.Time
	transcript    []git.Line

	now    func() time.Time
	logger *log.Logger
	mu     sync.Mutex
}

func (s *Session) echo(input string) git.Line {
	return git.Line{Text: "$ " + strings.TrimSpace(input), Severity: git.SeverityCommand}
}

func (s *Session) appendLocked(resp *Response) {
	if resp.Clear {
		s.transcript = nil
	}
	s.transcript = append(s.transcript, resp.Lines...)
}

// Execute runs one input line and returns the lines it added.
func (s *Session) Execute(ctx context.Context, input string) *Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(input) == "" {
		return &Response{}
	}

	res := s.interp.Execute(ctx, input)
	resp := &Response{Clear: res.ClearTranscript, Err: res.Err}
	if !res.ClearTranscript {
		resp.Lines = append(resp.Lines, s.echo(input))
	}
	resp.Lines = append(resp.Lines, res.Lines...)

	if s.achievements != nil {
		unlocked, err := s.achievements.ObserveCommand(res)
		if err != nil {
			s.logger.Warn("achievement store failed", "session", s.ID, "err", err)
		}
		s.announce(resp, unlocked)
	}
	if res.Err == nil && !neutralKinds[res.Kind] {
		s.checkExercise(input, resp)
	}

	s.appendLocked(resp)
	return resp
}

func (s *Session) announce(resp *Response, unlocked []achievement.Achievement) {
	for _, a := range unlocked {
		resp.Lines = append(resp.Lines, git.Line{
			Text:     fmt.Sprintf("🏆 ¡Logro desbloqueado! %s %s", a.Icon, a.Name),
			Severity: git.SeveritySuccess,
		})
	}
	resp.Unlocked = append(resp.Unlocked, unlocked...)
}

func (s *Session) checkExercise(input string, resp *Response) {
	ex, ok := s.validator.Current()
	if s.screen == nil || !ok {
		return
	}

	verdict := s.validator.Validate(input)
	resp.Verdict = &verdict
	if !verdict.Valid {
		resp.Lines = append(resp.Lines, git.Line{Text: verdict.Message, Severity: git.SeverityWarning})
		if verdict.Suggestion != "" {
			resp.Lines = append(resp.Lines, git.Line{Text: verdict.Suggestion, Severity: git.SeverityInfo})
		}
		return
	}

	report := exercise.ValidateRepoState(s.interp.Repository().Snapshot(), ex.Validation)
	if !report.Valid {
		resp.Verdict.Valid = false
		resp.Lines = append(resp.Lines, git.Line{Text: report.Message, Severity: git.SeverityWarning})
		return
	}

	resp.Lines = append(resp.Lines, git.Line{Text: "✅ " + verdict.Message, Severity: git.SeveritySuccess})
	adv := s.validator.Next()
	resp.Advance = &adv
	if !adv.Completed {
		resp.Lines = append(resp.Lines,
			git.Line{Text: adv.Message, Severity: git.SeverityInfo},
			git.Line{Text: adv.Exercise.Title + ": " + adv.Exercise.Description, Severity: git.SeverityDefault},
		)
		return
	}

	resp.Lines = append(resp.Lines, git.Line{Text: adv.Message, Severity: git.SeveritySuccess})
	s.completeScreen(resp)
}

func (s *Session) completeScreen(resp *Response) {
	id := s.screen.ID
	if s.levels != nil {
		if err := s.levels.Complete(id); err != nil {
			s.logger.Warn("level progress not saved", "session", s.ID, "screen", id, "err", err)
		}
	}
	if s.achievements != nil {
		unlocked, err := s.achievements.ObserveScreen(id, s.now().Sub(s.screenStarted), s.validator.HintsUsed())
		if err != nil {
			s.logger.Warn("achievement store failed", "session", s.ID, "err", err)
		}
		s.announce(resp, unlocked)
	}
	s.logger.Info("screen completed", "session", s.ID, "screen", id)
}

// StartScreen activates the exercises of a screen. The repository is left
// as it is.
func (s *Session) StartScreen(id int) (*Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	screen, ok := s.catalog.Screen(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrScreenNotFound, id)
	}
	if s.levels != nil && !s.levels.IsUnlocked(id) {
		return nil, fmt.Errorf("%w: %d", ErrScreenLocked, id)
	}

	s.screen = &screen
	s.screenStarted = s.now()
	s.validator.SetExercises(screen.Exercises)

	resp := &Response{}
	resp.Lines = append(resp.Lines, git.Line{Text: "🎬 " + screen.Title, Severity: git.SeveritySuccess})
	if ex, ok := s.validator.Current(); ok {
		resp.Lines = append(resp.Lines,
			git.Line{Text: fmt.Sprintf("📝 Ejercicio 1/%d", len(screen.Exercises)), Severity: git.SeverityInfo},
			git.Line{Text: ex.Title + ": " + ex.Description, Severity: git.SeverityDefault},
		)
	}
	s.appendLocked(resp)
	return resp, nil
}

// StopScreen leaves guided mode.
func (s *Session) StopScreen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = nil
	s.validator.SetExercises(nil)
}

// Reset replaces the repository, clears the graph and the transcript and
// restarts the active screen.
func (s *Session) Reset(ctx context.Context) *Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.interp.Reset(ctx)
	s.validator.Reset()
	if s.screen != nil {
		s.screenStarted = s.now()
	}
	resp := &Response{Lines: res.Lines, Clear: true}
	s.appendLocked(resp)
	return resp
}

// LoadDemo swaps in the demo timelines.
func (s *Session) LoadDemo(ctx context.Context) *Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.interp.LoadDemo(ctx)
	resp := &Response{Lines: res.Lines, Clear: true}
	s.appendLocked(resp)
	return resp
}

func (s *Session) Transcript() []git.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]git.Line(nil), s.transcript...)
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:         s.ID,
		Repository: s.interp.Repository().Snapshot(),
		Graph:      s.graph.State(),
		Transcript: append([]git.Line{}, s.transcript...),
	}
	if s.screen != nil {
		st := &ExerciseStatus{
			ScreenID: s.screen.ID,
			Title:    s.screen.Title,
			Progress: s.validator.Progress(),
		}
		if ex, ok := s.validator.Current(); ok {
			st.Current = &ex
		}
		snap.Exercise = st
	}
	return snap
}
