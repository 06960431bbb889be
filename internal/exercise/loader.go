package exercise

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed screens/*.yaml
var builtin embed.FS

// Loader reads screen files from a filesystem.
type Loader struct {
	fsys fs.FS
}

func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// DirLoader reads screens from a directory on disk.
func DirLoader(dir string) *Loader {
	return NewLoader(os.DirFS(dir))
}

// Builtin returns a loader over the screens shipped with the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtin, "screens")
	if err != nil {
		panic(err)
	}
	return NewLoader(sub)
}

// LoadScreen loads a single screen by name (filename without extension).
func (l *Loader) LoadScreen(name string) (*Screen, error) {
	data, err := fs.ReadFile(l.fsys, name+".yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read screen file: %w", err)
	}

	var s Screen
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse screen %s: %w", name, err)
	}
	if s.Name == "" {
		s.Name = name
	}
	if s.ID <= 0 {
		return nil, fmt.Errorf("screen %s: id must be positive", name)
	}
	for i, ex := range s.Exercises {
		if strings.TrimSpace(ex.ExpectedCommand) == "" {
			return nil, fmt.Errorf("screen %s: exercise %d has no expected_command", name, i+1)
		}
	}
	return &s, nil
}

// ListScreens loads every *.yaml at the root of the filesystem, ordered by id.
func (l *Loader) ListScreens() ([]*Screen, error) {
	files, err := fs.Glob(l.fsys, "*.yaml")
	if err != nil {
		return nil, err
	}

	var screens []*Screen
	for _, f := range files {
		s, err := l.LoadScreen(strings.TrimSuffix(path.Base(f), ".yaml"))
		if err != nil {
			return nil, err
		}
		screens = append(screens, s)
	}
	sort.Slice(screens, func(i, j int) bool { return screens[i].ID < screens[j].ID })
	return screens, nil
}

// Catalog is the set of screens available to sessions. It is safe for
// concurrent use; the watcher swaps screens in while sessions read them.
type Catalog struct {
	mu sync.RWMutex
	// base is what the catalog was created with; overlays sit on top of it.
	base    []*Screen
	screens map[int]*Screen
}

func NewCatalog(screens ...*Screen) *Catalog {
	c := &Catalog{base: screens, screens: make(map[int]*Screen)}
	c.Merge(screens)
	return c
}

// LoadCatalog returns the builtin screens overlaid with the ones in dir.
// An empty dir means builtin only.
func LoadCatalog(dir string) (*Catalog, error) {
	defaults, err := Builtin().ListScreens()
	if err != nil {
		return nil, fmt.Errorf("builtin screens: %w", err)
	}
	c := NewCatalog(defaults...)
	if dir == "" {
		return c, nil
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("exercises dir: %w", err)
	}
	custom, err := DirLoader(dir).ListScreens()
	if err != nil {
		return nil, fmt.Errorf("exercises dir %s: %w", dir, err)
	}
	c.ReplaceOverlay(custom)
	return c, nil
}

// ReplaceOverlay rebuilds the catalog from its base screens with overlay on
// top. Screens from an earlier overlay or Merge that overlay no longer
// carries are dropped.
func (c *Catalog) ReplaceOverlay(overlay []*Screen) {
	screens := make(map[int]*Screen, len(c.base)+len(overlay))
	for _, s := range c.base {
		screens[s.ID] = s
	}
	for _, s := range overlay {
		screens[s.ID] = s
	}
	c.mu.Lock()
	c.screens = screens
	c.mu.Unlock()
}

// Merge adds screens, replacing any with the same id.
func (c *Catalog) Merge(screens []*Screen) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range screens {
		c.screens[s.ID] = s
	}
}

// Screen returns a copy of the screen so callers can keep it across reloads.
func (c *Catalog) Screen(id int) (Screen, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.screens[id]
	if !ok {
		return Screen{}, false
	}
	cp := *s
	cp.Exercises = append([]Exercise(nil), s.Exercises...)
	return cp, true
}

// Screens lists every screen ordered by id.
func (c *Catalog) Screens() []Screen {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Screen, 0, len(c.screens))
	for _, s := range c.screens {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
