package tree

import (
	"io/fs"
	"time"

	"github.com/treeline-dev/treeline/internal/fsutil"
)

// nodeID addresses a node slot in the arena. Slots are stable for the
// lifetime of a node; the flattened list is a slice of nodeIDs, so a
// node's position (its id in the rendering sense) is always derived from
// that slice and never stored on the node itself.
type nodeID int

const noParent nodeID = -1

// Node is one filesystem entry with its tree metadata.
type Node struct {
	Path    string
	Name    string
	IsDir   bool
	IsLink  bool
	Size    int64
	ModTime time.Time
	Mode    fs.FileMode

	Level  int  // depth from the current root, root = 0
	Last   bool // final sibling in its parent's listing
	Opened bool // expanded directory

	parent nodeID
}

// ReadOnly reports whether the entry carries no write permission bits.
func (n *Node) ReadOnly() bool {
	return n.Mode.Perm()&0o222 == 0
}

func nodeFromEntry(e fsutil.Entry, parent nodeID, level int, last bool) Node {
	return Node{
		Path:    e.Path,
		Name:    e.Name,
		IsDir:   e.IsDir(),
		IsLink:  e.IsLink,
		Size:    e.Info.Size(),
		ModTime: e.Info.ModTime(),
		Mode:    e.Info.Mode(),
		Level:   level,
		Last:    last,
		parent:  parent,
	}
}

// arena owns every live node. Slots are reused through a free list so
// parent links held by descendants stay valid across list splices.
type arena struct {
	slots []Node
	free  []nodeID
}

func (a *arena) alloc(n Node) nodeID {
	if len(a.free) > 0 {
		id := a.free[len(a.free)-1]
		a.free = a.free[:len(a.free)-1]
		a.slots[id] = n
		return id
	}
	a.slots = append(a.slots, n)
	return nodeID(len(a.slots) - 1)
}

func (a *arena) release(id nodeID) {
	a.slots[id] = Node{parent: noParent}
	a.free = append(a.free, id)
}

func (a *arena) node(id nodeID) *Node {
	return &a.slots[id]
}

func (a *arena) reset() {
	a.slots = a.slots[:0]
	a.free = a.free[:0]
}
