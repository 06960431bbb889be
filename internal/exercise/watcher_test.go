package exercise

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsChangedScreens(t *testing.T) {
	dir := t.TempDir()
	catalog, err := LoadCatalog(dir)
	require.NoError(t, err)

	reloaded := make(chan int, 4)
	w, err := NewWatcher(dir, catalog, log.New(io.Discard),
		WithDebounce(20*time.Millisecond),
		OnReload(func(n int) { reloaded <- n }),
	)
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	screen := "id: 1\ntitle: Reescrita\nexercises:\n  - expected_command: git status\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "origin.yaml"), []byte(screen), 0o644))

	select {
	case n := <-reloaded:
		assert.Equal(t, 1, n)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a reload after writing a screen file")
	}

	s, ok := catalog.Screen(1)
	require.True(t, ok)
	assert.Equal(t, "Reescrita", s.Title)
	assert.Equal(t, "git status", s.Exercises[0].ExpectedCommand)
	assert.Len(t, catalog.Screens(), 4)
}

func TestWatcherKeepsCatalogOnBadFile(t *testing.T) {
	dir := t.TempDir()
	catalog, err := LoadCatalog(dir)
	require.NoError(t, err)

	reloaded := make(chan int, 1)
	w, err := NewWatcher(dir, catalog, log.New(io.Discard),
		WithDebounce(20*time.Millisecond),
		OnReload(func(n int) { reloaded <- n }),
	)
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("id: ["), 0o644))

	select {
	case <-reloaded:
		t.Fatal("a broken file must not be merged")
	case <-time.After(300 * time.Millisecond):
	}
	s, _ := catalog.Screen(1)
	assert.Equal(t, "origin", s.Name)
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope"), NewCatalog(), log.New(io.Discard))
	assert.Error(t, err)
}

func TestWatcherDropsDeletedScreens(t *testing.T) {
	dir := t.TempDir()
	override := filepath.Join(dir, "origin.yaml")
	extra := filepath.Join(dir, "extra.yaml")
	require.NoError(t, os.WriteFile(override, []byte("id: 1\ntitle: Reescrita\nexercises:\n  - expected_command: git status\n"), 0o644))
	require.NoError(t, os.WriteFile(extra, []byte("id: 7\ntitle: Extra\nexercises:\n  - expected_command: git log\n"), 0o644))

	catalog, err := LoadCatalog(dir)
	require.NoError(t, err)
	require.Len(t, catalog.Screens(), 5)
	s, _ := catalog.Screen(1)
	require.Equal(t, "Reescrita", s.Title)

	w, err := NewWatcher(dir, catalog, log.New(io.Discard), WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	require.NoError(t, os.Remove(extra))
	require.Eventually(t, func() bool {
		_, ok := catalog.Screen(7)
		return !ok
	}, 2*time.Second, 20*time.Millisecond, "a removed file takes its screen with it")

	require.NoError(t, os.Remove(override))
	require.Eventually(t, func() bool {
		s, _ := catalog.Screen(1)
		return s.Title == "Origin (1985 → 1955)"
	}, 2*time.Second, 20*time.Millisecond, "the builtin screen comes back")
	assert.Len(t, catalog.Screens(), 4)
}

func TestReplaceOverlayKeepsBase(t *testing.T) {
	base := &Screen{ID: 1, Name: "base"}
	c := NewCatalog(base)

	c.ReplaceOverlay([]*Screen{{ID: 1, Name: "nueva"}, {ID: 2, Name: "dos"}})
	s, _ := c.Screen(1)
	assert.Equal(t, "nueva", s.Name)
	assert.Len(t, c.Screens(), 2)

	c.ReplaceOverlay(nil)
	s, _ = c.Screen(1)
	assert.Equal(t, "base", s.Name)
	_, ok := c.Screen(2)
	assert.False(t, ok)
}
