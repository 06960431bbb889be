package console

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurobon/gitbttf/internal/achievement"
	"github.com/kurobon/gitbttf/internal/config"
	"github.com/kurobon/gitbttf/internal/exercise"
	"github.com/kurobon/gitbttf/internal/git"
	"github.com/kurobon/gitbttf/internal/progress"
	"github.com/kurobon/gitbttf/internal/state"
)

var epoch = time.Date(1985, time.October, 26, 1, 20, 0, 0, time.UTC)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	store := progress.NewMemoryStore()
	levels, err := progress.NewTracker(store)
	require.NoError(t, err)
	achievements, err := achievement.NewTracker(store)
	require.NoError(t, err)
	catalog, err := exercise.LoadCatalog("")
	require.NoError(t, err)

	return NewManager(Deps{
		Config:       config.DefaultConfig(),
		Catalog:      catalog,
		Levels:       levels,
		Achievements: achievements,
		Logger:       log.New(io.Discard),
		Random:       func() state.Random { return state.NewSeededRandom(88) },
		Now:          func() time.Time { return epoch },
		BackOff:      func() backoff.BackOff { return &backoff.ZeroBackOff{} },
	})
}

func newTestSession(t *testing.T) (*Manager, *Session) {
	t.Helper()
	m := newTestManager(t)
	s, err := m.CreateSession()
	require.NoError(t, err)
	return m, s
}

func texts(lines []git.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestExecuteEchoesCommand(t *testing.T) {
	_, s := newTestSession(t)
	ctx := context.Background()

	resp := s.Execute(ctx, "  git init ")
	require.NoError(t, resp.Err)
	assert.Equal(t, git.Line{Text: "$ git init", Severity: git.SeverityCommand}, resp.Lines[0])
	assert.Equal(t, resp.Lines, s.Transcript())

	assert.Empty(t, s.Execute(ctx, "   ").Lines)
	assert.Len(t, s.Transcript(), len(resp.Lines))
}

func TestFailedCommandKeepsTaxonomyError(t *testing.T) {
	_, s := newTestSession(t)
	resp := s.Execute(context.Background(), "git status")
	assert.ErrorIs(t, resp.Err, state.ErrNotARepository)
	assert.Equal(t, []string{"$ git status", "fatal: not a git repository"}, texts(resp.Lines))
}

func TestClearEmptiesTranscript(t *testing.T) {
	_, s := newTestSession(t)
	ctx := context.Background()
	s.Execute(ctx, "git init")
	s.Execute(ctx, "git add .")

	resp := s.Execute(ctx, "clear")
	assert.True(t, resp.Clear)
	assert.Equal(t, resp.Lines, s.Transcript())
	assert.NotContains(t, texts(s.Transcript()), "$ clear")
	assert.True(t, s.Snapshot().Repository.Initialized)
}

func TestResetAndDemo(t *testing.T) {
	_, s := newTestSession(t)
	ctx := context.Background()
	s.Execute(ctx, "git init")
	s.Execute(ctx, "git add .")
	s.Execute(ctx, `git commit -m "1985"`)

	resp := s.Reset(ctx)
	assert.True(t, resp.Clear)
	snap := s.Snapshot()
	assert.False(t, snap.Repository.Initialized)
	assert.False(t, snap.Graph.Initialized)
	assert.Equal(t, resp.Lines, snap.Transcript)

	s.LoadDemo(ctx)
	snap = s.Snapshot()
	assert.Equal(t, append([]string{"main"}, git.DemoBranches...), snap.Repository.Branches)
	assert.Equal(t, snap.Repository.Branches, snap.Graph.BranchOrder)
}

func TestGuidedScreenOne(t *testing.T) {
	m, s := newTestSession(t)
	ctx := context.Background()

	resp, err := s.StartScreen(1)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"🎬 Origin (1985 → 1955)",
		"📝 Ejercicio 1/4",
		"Inicializar repositorio: Crea un nuevo repositorio Git para comenzar tu viaje temporal",
	}, texts(resp.Lines))

	resp = s.Execute(ctx, "git init")
	require.NotNil(t, resp.Verdict)
	assert.True(t, resp.Verdict.Valid)
	assert.Contains(t, texts(resp.Lines), "✅ ¡Has creado la máquina del tiempo (repositorio Git)!")
	assert.Contains(t, texts(resp.Lines), "📝 Ejercicio 2/4")

	resp = s.Execute(ctx, "git add .")
	assert.Nil(t, resp.Verdict, "add is a preparation step")

	resp = s.Execute(ctx, `git commit -m "Punto de partida"`)
	require.NotNil(t, resp.Advance)
	assert.Equal(t, "📝 Ejercicio 3/4", resp.Advance.Message)
	assert.Contains(t, texts(resp.Lines), "🏆 ¡Logro desbloqueado! ✨ 📝 Primer Commit")

	s.Execute(ctx, "git branch 1955")
	resp = s.Execute(ctx, "git checkout 1955")
	require.NotNil(t, resp.Advance)
	assert.True(t, resp.Advance.Completed)
	assert.Contains(t, texts(resp.Lines), "🎉 ¡Felicidades! Has completado todos los ejercicios de esta pantalla.")

	assert.True(t, m.Levels().IsUnlocked(2))
	tracker := m.Achievements()
	for _, id := range []achievement.ID{achievement.FirstCommit, achievement.BranchMaster, achievement.TimeTraveler, achievement.Perfectionist} {
		assert.True(t, tracker.IsUnlocked(id), id)
	}
	assert.False(t, tracker.IsUnlocked(achievement.Speedrunner), "no time elapsed on the fixed clock")

	status := s.Snapshot().Exercise
	require.NotNil(t, status)
	assert.Nil(t, status.Current)
	assert.Equal(t, 100, status.Progress.Percentage)
}

func TestExerciseFeedback(t *testing.T) {
	_, s := newTestSession(t)
	ctx := context.Background()
	_, err := s.StartScreen(1)
	require.NoError(t, err)

	resp := s.Execute(ctx, "git status")
	assert.Nil(t, resp.Verdict, "failed commands are not graded")

	s.Execute(ctx, "git init")
	resp = s.Execute(ctx, "git branch 1955")
	require.NotNil(t, resp.Verdict)
	assert.False(t, resp.Verdict.Valid)
	assert.Contains(t, texts(resp.Lines), `❌ Se esperaba el comando "commit"`)

	resp = s.Execute(ctx, "pista")
	assert.Equal(t, "💡 Pista 1/3: Primero debes preparar archivos con \"git add .\"", resp.Lines[1].Text)
}

func TestRepoStateMustMatch(t *testing.T) {
	m, s := newTestSession(t)
	ctx := context.Background()
	m.Catalog().Merge([]*exercise.Screen{{
		ID:    1,
		Title: "Rama y viaje",
		Exercises: []exercise.Exercise{{
			Title:           "Crear y viajar",
			ExpectedCommand: "git branch 1955",
			SuccessMessage:  "listo",
			Validation:      exercise.Validation{CurrentBranch: "1955"},
		}},
	}})
	s.Execute(ctx, "git init")
	_, err := s.StartScreen(1)
	require.NoError(t, err)

	resp := s.Execute(ctx, "git branch 1955")
	require.NotNil(t, resp.Verdict)
	assert.False(t, resp.Verdict.Valid)
	assert.Nil(t, resp.Advance)
	assert.Contains(t, texts(resp.Lines), "❌ Verificaciones fallidas: Rama actual")

	status := s.Snapshot().Exercise
	require.NotNil(t, status.Current)
	assert.Equal(t, 0, status.Progress.Current)
}

func TestStartScreenErrors(t *testing.T) {
	_, s := newTestSession(t)

	_, err := s.StartScreen(2)
	assert.ErrorIs(t, err, ErrScreenLocked)
	_, err = s.StartScreen(42)
	assert.ErrorIs(t, err, ErrScreenNotFound)

	_, err = s.StartScreen(1)
	require.NoError(t, err)
	s.StopScreen()
	assert.Nil(t, s.Snapshot().Exercise)

	resp := s.Execute(context.Background(), "hint")
	assert.Equal(t, "💡 Este modo no tiene ejercicios guiados", resp.Lines[1].Text)
}

func TestConcurrentExecute(t *testing.T) {
	_, s := newTestSession(t)
	ctx := context.Background()
	s.Execute(ctx, "git init")

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Execute(ctx, "git add f"+strings.Repeat("x", i)+".txt")
			s.Snapshot()
		}(i)
	}
	wg.Wait()
	assert.Len(t, s.Snapshot().Repository.Staged, 8)
}
