package tree

import (
	"fmt"
	"slices"
	"sync"

	"github.com/treeline-dev/treeline/internal/clipboard"
	"github.com/treeline-dev/treeline/internal/config"
	"github.com/treeline-dev/treeline/internal/surface"
)

// Manager owns every tree instance and the clipboard they share. One
// exclusive lock guards the collection: exactly one action runs against
// one tree at a time, and a long scan holds the lock for its full
// duration. That is a deliberate trade; edits are user paced.
type Manager struct {
	mu     sync.Mutex
	clip   *clipboard.Service
	trees  map[int]*Tree
	order  []int // least recently used first
	nextID int
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{
		clip:  clipboard.New(),
		trees: make(map[int]*Tree),
	}
}

// Clipboard exposes the shared clipboard service.
func (m *Manager) Clipboard() *clipboard.Service { return m.clip }

// NewTree creates a tree bound to surf, roots it at path and returns its
// handle id.
func (m *Manager) NewTree(path string, surf surface.Surface, cfg config.Config) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := New(surf, m.clip, cfg)
	if err := t.ChangeRoot(path); err != nil {
		t.Close()
		return 0, err
	}
	id := m.nextID
	m.nextID++
	m.trees[id] = t
	m.order = append(m.order, id)
	return id, nil
}

// Tree returns the tree for id.
func (m *Manager) Tree(id int) (*Tree, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookup(id)
}

func (m *Manager) lookup(id int) (*Tree, error) {
	t, ok := m.trees[id]
	if !ok {
		return nil, &ArgError{Msg: fmt.Sprintf("unknown tree %d", id)}
	}
	return t, nil
}

func (m *Manager) touch(id int) {
	if i := slices.Index(m.order, id); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
	m.order = append(m.order, id)
}

// Recent returns the id of the tree an action last touched. ok is false
// while no tree exists.
func (m *Manager) Recent() (id int, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.order) == 0 {
		return 0, false
	}
	return m.order[len(m.order)-1], true
}

// Action runs one named action against one tree under the collection lock.
func (m *Manager) Action(id int, name string, cursor int, args []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.lookup(id)
	if err != nil {
		return err
	}
	m.touch(id)
	return t.Action(name, cursor, args)
}

// GetContext describes the row at cursor for the transport layer.
func (m *Manager) GetContext(id, cursor int) (Context, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.lookup(id)
	if err != nil {
		return Context{}, err
	}
	return t.GetContext(cursor)
}

// UpdateConfig applies a dynamic configuration map to a tree and re-lays
// out every row under the new settings.
func (m *Manager) UpdateConfig(id int, cfgMap map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.lookup(id)
	if err != nil {
		return err
	}
	if err := t.Config.Update(cfgMap); err != nil {
		return err
	}
	return t.ChangeRoot(t.Root())
}

// CloseTree drops a tree and releases its render queue.
func (m *Manager) CloseTree(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.trees[id]; ok {
		t.Close()
		delete(m.trees, id)
		if i := slices.Index(m.order, id); i >= 0 {
			m.order = slices.Delete(m.order, i, i+1)
		}
	}
}

// CloseAll shuts down every tree.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.trees {
		t.Close()
		delete(m.trees, id)
	}
	m.order = nil
}
