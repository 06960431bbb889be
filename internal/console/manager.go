package console

import (
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/kurobon/gitbttf/internal/achievement"
	"github.com/kurobon/gitbttf/internal/config"
	"github.com/kurobon/gitbttf/internal/exercise"
	"github.com/kurobon/gitbttf/internal/git"
	_ "github.com/kurobon/gitbttf/internal/git/commands" // Register commands
	"github.com/kurobon/gitbttf/internal/graph"
	"github.com/kurobon/gitbttf/internal/progress"
	"github.com/kurobon/gitbttf/internal/state"
)

// Deps are shared by every session of a manager.
type Deps struct {
	Config       *config.Config
	Catalog      *exercise.Catalog
	Levels       *progress.Tracker
	Achievements *achievement.Tracker
	Logger       *log.Logger

	// Random and Now are overridden in tests.
	Random  func() state.Random
	Now     func() time.Time
	BackOff func() backoff.BackOff
}

// Manager handles concurrent access to sessions.
type Manager struct {
	sessions map[string]*Session
	deps     Deps
	mu       sync.RWMutex
}

func NewManager(deps Deps) *Manager {
	if deps.Config == nil {
		deps.Config = config.Global
	}
	if deps.Catalog == nil {
		deps.Catalog = exercise.NewCatalog()
	}
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if deps.Random == nil {
		deps.Random = state.NewRandom
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Manager{
		sessions: make(map[string]*Session),
		deps:     deps,
	}
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	return b
}

// NewSessionID returns a short random session id.
func NewSessionID() string {
	return "session-" + uuid.NewString()[:8]
}

// CreateSession starts a session under a fresh id.
func (m *Manager) CreateSession() (*Session, error) {
	for range 3 {
		id := NewSessionID()
		m.mu.RLock()
		_, taken := m.sessions[id]
		m.mu.RUnlock()
		if !taken {
			return m.GetOrCreate(id)
		}
	}
	return nil, fmt.Errorf("could not allocate a session id")
}

// GetOrCreate returns the session with id, creating it if needed.
func (m *Manager) GetOrCreate(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, exists := m.sessions[id]; exists {
		return s, nil
	}
	s := m.newSession(id)
	m.sessions[id] = s
	m.deps.Logger.Debug("session created", "session", id)
	return s, nil
}

func (m *Manager) newSession(id string) *Session {
	cfg := m.deps.Config
	g := graph.New()
	validator := exercise.NewValidator(nil, exercise.WithStrictMessages(cfg.StrictCommitMessages))
	logger := m.deps.Logger.With("session", id)

	opts := []git.Option{
		git.WithGraph(g),
		git.WithRandom(m.deps.Random()),
		git.WithHints(validator),
		git.WithPullChance(cfg.PullChance),
		git.WithLogger(logger),
	}
	newBackOff := m.deps.BackOff
	if newBackOff == nil {
		newBackOff = defaultBackOff
	}
	opts = append(opts, git.WithGraphRetry(newBackOff, cfg.GraphRetries))

	return &Session{
		ID:           id,
		CreatedAt:    m.deps.Now(),
		interp:       git.NewInterpreter(opts...),
		graph:        g,
		validator:    validator,
		catalog:      m.deps.Catalog,
		levels:       m.deps.Levels,
		achievements: m.deps.Achievements,
		now:          m.deps.Now,
		logger:       logger,
	}
}

// GetSession retrieves a session by ID.
func (m *Manager) GetSession(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *Manager) RemoveSession(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) Catalog() *exercise.Catalog         { return m.deps.Catalog }
func (m *Manager) Levels() *progress.Tracker          { return m.deps.Levels }
func (m *Manager) Achievements() *achievement.Tracker { return m.deps.Achievements }
func (m *Manager) Logger() *log.Logger                { return m.deps.Logger }
