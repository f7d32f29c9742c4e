// Package tree implements the flattened-tree state engine: a node arena,
// the positionally indexed view backing line-oriented rendering, the
// per-column cell layout kept in lockstep with that view, and the action
// engine mutating both. Every structural edit is a localized splice of
// view, cells and selection, never a full rebuild.
package tree

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/treeline-dev/treeline/internal/clipboard"
	"github.com/treeline-dev/treeline/internal/column"
	"github.com/treeline-dev/treeline/internal/config"
	"github.com/treeline-dev/treeline/internal/fsutil"
	"github.com/treeline-dev/treeline/internal/git"
	"github.com/treeline-dev/treeline/internal/selection"
	"github.com/treeline-dev/treeline/internal/surface"
)

// Tree is one sidebar instance: the flattened node view over a root
// directory plus everything needed to render it.
type Tree struct {
	Config config.Config

	// OnOpenFile is invoked when drop lands on a file; the host decides
	// what opening a file means.
	OnOpenFile func(path string)
	// OnPasteConflict resolves a paste destination that already exists.
	// It returns the destination to use (possibly the same path, meaning
	// overwrite) or an error to abort the paste. When nil, a conflict
	// aborts with *ConflictError.
	OnPasteConflict func(src, dst string) (string, error)

	surf  surface.Surface
	queue *surface.Queue
	clip  *clipboard.Service

	arena arena
	view  []nodeID
	cells map[column.Kind][]column.Cell

	expand     map[string]bool
	sel        *selection.Set
	cursorHist map[string]int
	overlay    *git.Overlay
	root       string
}

// New returns a tree bound to a surface and the shared clipboard. It has
// no root until ChangeRoot is called.
func New(surf surface.Surface, clip *clipboard.Service, cfg config.Config) *Tree {
	t := &Tree{
		Config:     cfg,
		surf:       surf,
		queue:      surface.NewQueue(surf),
		clip:       clip,
		expand:     make(map[string]bool),
		sel:        selection.New(),
		cursorHist: make(map[string]int),
	}
	return t
}

// Close releases the render queue.
func (t *Tree) Close() {
	t.queue.Close()
}

// Root returns the current root path.
func (t *Tree) Root() string { return t.root }

// Len returns the number of nodes in the flattened view.
func (t *Tree) Len() int { return len(t.view) }

// NodeAt returns a copy of the node at position i.
func (t *Tree) NodeAt(i int) (Node, error) {
	if i < 0 || i >= len(t.view) {
		return Node{}, ErrIndexOutOfRange
	}
	return *t.arena.node(t.view[i]), nil
}

// Selection exposes the selection set.
func (t *Tree) Selection() *selection.Set { return t.sel }

// Flush waits for queued highlight batches; used by tests and shutdown.
func (t *Tree) Flush() { t.queue.Flush() }

// Context is what the transport layer needs to know about a row to build
// its menus.
type Context struct {
	IsDir  bool
	Opened bool
	Level  int
}

// GetContext describes the node at cursor.
func (t *Tree) GetContext(cursor int) (Context, error) {
	n, err := t.NodeAt(cursor)
	if err != nil {
		return Context{}, err
	}
	return Context{IsDir: n.IsDir, Opened: n.Opened, Level: n.Level}, nil
}

func (t *Tree) nodeAt(i int) *Node {
	return t.arena.node(t.view[i])
}

// ChangeRoot discards all nodes and cells, rescans path and renders the
// whole view. Directories marked expanded in the expand store reappear
// open. The cursor last seen under this root is restored, clamped to the
// new list length.
func (t *Tree) ChangeRoot(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	st, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return &ArgError{Msg: "change root target is not a directory: " + abs}
	}

	if t.root != "" {
		if cur, err := t.surf.Cursor(); err == nil {
			t.cursorHist[t.root] = cur
		}
	}

	t.arena.reset()
	t.view = t.view[:0]
	t.sel.Clear()
	t.expand[abs] = true

	rootID := t.arena.alloc(Node{
		Path:    abs,
		Name:    filepath.Base(abs),
		IsDir:   true,
		Size:    st.Size(),
		ModTime: st.ModTime(),
		Mode:    st.Mode(),
		Opened:  true,
		parent:  noParent,
	})
	var acc []nodeID
	if err := t.buildChildren(rootID, &acc, 0); err != nil {
		return err
	}
	t.view = append(t.view, rootID)
	t.view = append(t.view, acc...)
	t.root = abs

	t.overlay = nil
	if o, err := git.Discover(abs); err != nil {
		slog.Warn("git discover failed", "root", abs, "err", err)
	} else if o != nil {
		if err := o.Refresh(); err != nil {
			slog.Warn("git status failed", "root", abs, "err", err)
		} else {
			t.overlay = o
		}
	}

	if t.Config.AutoCd {
		if err := os.Chdir(abs); err != nil {
			slog.Warn("auto_cd failed", "root", abs, "err", err)
		}
	}

	t.layoutAll()
	if err := t.surf.SetLines(0, -1, t.makeLines(0, len(t.view))); err != nil {
		return err
	}
	if last, ok := t.cursorHist[abs]; ok {
		if last >= len(t.view) {
			last = len(t.view) - 1
		}
		if err := t.surf.SetCursor(last); err != nil {
			return err
		}
	}
	t.enqueueHighlights(0, len(t.view))
	return nil
}

// Open builds the child subtree of the closed directory at idx, inserts it
// immediately after idx and marks the directory expanded. Opening the root
// or a non-directory is a no-op; only an out-of-range idx is an error.
func (t *Tree) Open(idx int) error {
	if idx < 0 || idx >= len(t.view) {
		return ErrIndexOutOfRange
	}
	if idx == 0 {
		return nil
	}
	if n := t.nodeAt(idx); !n.IsDir || n.Opened {
		return nil
	}

	id := t.view[idx]
	var acc []nodeID
	if err := t.buildChildren(id, &acc, t.Config.AutoRecursiveLevel); err != nil {
		for _, cid := range acc {
			t.arena.release(cid)
		}
		return err
	}

	t.arena.node(id).Opened = true
	t.expand[t.arena.node(id).Path] = true
	t.insertRows(idx+1, acc)
	t.updateRowCells(idx)
	if err := t.surf.SetLines(idx, idx+1, t.makeLines(idx, idx+1+len(acc))); err != nil {
		return err
	}
	t.enqueueHighlights(idx, idx+1+len(acc))
	return nil
}

// CloseDir removes the descendant run of the expanded directory at idx and
// unmarks its expansion. Selection entries inside the removed range are
// dropped; entries after it shift down.
func (t *Tree) CloseDir(idx int) error {
	if idx < 0 || idx >= len(t.view) {
		return ErrIndexOutOfRange
	}
	if idx == 0 {
		return nil
	}
	n := t.nodeAt(idx)
	if !n.IsDir || !n.Opened {
		return nil
	}

	end := t.descendantEnd(idx)
	t.removeRows(idx+1, end-idx-1)
	n = t.nodeAt(idx)
	n.Opened = false
	t.expand[n.Path] = false

	t.updateRowCells(idx)
	if err := t.surf.SetLines(idx, end, t.makeLines(idx, idx+1)); err != nil {
		return err
	}
	t.enqueueHighlights(idx, idx+1)
	return nil
}

// RedrawSubtree re-renders the node at idx and its descendants. With force
// set, the descendant range is discarded and rebuilt from the filesystem
// (and the git overlay refreshed), exactly as Open would build it; without
// force only cell contents are recomputed, leaving node identity untouched.
func (t *Tree) RedrawSubtree(idx int, force bool) error {
	if idx < 0 || idx >= len(t.view) {
		return ErrIndexOutOfRange
	}
	if !force {
		t.refreshRows(idx, t.descendantEnd(idx))
		return nil
	}

	t.refreshGit()

	id := t.view[idx]
	n := t.nodeAt(idx)
	if st, err := os.Lstat(n.Path); err != nil {
		return err
	} else {
		n.Size = st.Size()
		n.ModTime = st.ModTime()
		n.Mode = st.Mode()
	}

	if !n.IsDir || !n.Opened {
		t.refreshRows(idx, idx+1)
		return nil
	}

	var acc []nodeID
	if err := t.buildChildren(id, &acc, 0); err != nil {
		for _, cid := range acc {
			t.arena.release(cid)
		}
		return err
	}
	end := t.descendantEnd(idx)
	t.removeRows(idx+1, end-idx-1)
	t.insertRows(idx+1, acc)
	t.updateRowCells(idx)
	if err := t.surf.SetLines(idx, end, t.makeLines(idx, idx+1+len(acc))); err != nil {
		return err
	}
	t.enqueueHighlights(idx, idx+1+len(acc))
	return nil
}

// buildChildren scans the directory node id and appends the flattened
// subtree to acc in depth-first order, recursing into every directory the
// expand store marks open. autoDepth > 0 additionally opens a sole
// directory child, so a chain of single-directory levels unfolds in one
// action.
func (t *Tree) buildChildren(id nodeID, acc *[]nodeID, autoDepth int) error {
	parent := t.arena.node(id)
	dir, level := parent.Path, parent.Level+1
	entries, err := fsutil.Scan(dir, t.Config.ShowIgnoredFiles, t.Config.Sort)
	if err != nil {
		return err
	}
	soleDir := len(entries) == 1 && entries[0].IsDir()

	for i, e := range entries {
		n := nodeFromEntry(e, id, level, i == len(entries)-1)
		open := n.IsDir && (t.expand[n.Path] || (soleDir && autoDepth > 0))
		n.Opened = open
		childID := t.arena.alloc(n)
		*acc = append(*acc, childID)
		if open {
			t.expand[n.Path] = true
			if err := t.buildChildren(childID, acc, autoDepth-1); err != nil {
				return err
			}
		}
	}
	return nil
}

// descendantEnd returns one past the contiguous run of descendants of the
// node at idx: all subsequent nodes with a strictly greater level.
func (t *Tree) descendantEnd(idx int) int {
	level := t.nodeAt(idx).Level
	end := idx + 1
	for end < len(t.view) && t.nodeAt(end).Level > level {
		end++
	}
	return end
}

// parentPos returns the view position of idx's parent, or 0 when the
// parent is the root (or not visible, which cannot happen for a well
// formed view).
func (t *Tree) parentPos(idx int) int {
	pid := t.nodeAt(idx).parent
	for i := idx - 1; i >= 0; i-- {
		if t.view[i] == pid {
			return i
		}
	}
	return 0
}

func (t *Tree) layout() *column.Layout {
	return &column.Layout{Kinds: t.Config.Columns, RootMarker: t.Config.RootMarker}
}

func (t *Tree) rowForID(id nodeID, selected bool) column.Row {
	n := t.arena.node(id)
	row := column.Row{
		Path:     n.Path,
		Name:     n.Name,
		IsDir:    n.IsDir,
		IsLink:   n.IsLink,
		ReadOnly: n.ReadOnly(),
		Opened:   n.Opened,
		Selected: selected,
		Last:     n.Last,
		Level:    n.Level,
		Git:      t.overlay.Status(n.Path),
		Size:     n.Size,
		ModTime:  n.ModTime,
	}
	if n.Level > 1 {
		anc := make([]bool, 0, n.Level-1)
		for pid := n.parent; pid != noParent; pid = t.arena.node(pid).parent {
			p := t.arena.node(pid)
			if p.Level == 0 {
				break
			}
			anc = append(anc, p.Last)
		}
		slices.Reverse(anc)
		row.AncestorLast = anc
	}
	return row
}

func (t *Tree) rowAt(i int) column.Row {
	return t.rowForID(t.view[i], t.sel.Contains(i))
}

// layoutAll recomputes every cell from scratch.
func (t *Tree) layoutAll() {
	rows := make([]column.Row, len(t.view))
	for i := range t.view {
		rows[i] = t.rowAt(i)
	}
	t.cells = t.layout().CellsBatch(rows, true)
}

// insertRows splices freshly built nodes (and their cells) into the view
// at pos and remaps the selection set.
func (t *Tree) insertRows(pos int, ids []nodeID) {
	if len(ids) == 0 {
		return
	}
	rows := make([]column.Row, len(ids))
	for i, id := range ids {
		rows[i] = t.rowForID(id, false)
	}
	batch := t.layout().CellsBatch(rows, false)
	t.view = slices.Insert(t.view, pos, ids...)
	for _, k := range t.Config.Columns {
		t.cells[k] = slices.Insert(t.cells[k], pos, batch[k]...)
	}
	t.sel.ShiftInsert(pos, len(ids))
}

// removeRows drops n rows starting at pos, releasing their arena slots.
func (t *Tree) removeRows(pos, n int) {
	if n == 0 {
		return
	}
	for _, id := range t.view[pos : pos+n] {
		t.arena.release(id)
	}
	t.view = slices.Delete(t.view, pos, pos+n)
	for _, k := range t.Config.Columns {
		t.cells[k] = slices.Delete(t.cells[k], pos, pos+n)
	}
	t.sel.ShiftRemove(pos, n)
}

// updateRowCells recomputes the cells of a single existing row in place,
// using the same layout path as the batch form.
func (t *Tree) updateRowCells(i int) {
	cells := t.layout().RowCells(t.rowAt(i), i == 0)
	for j, k := range t.Config.Columns {
		t.cells[k][i] = cells[j]
	}
}

// refreshRows recomputes cells for [from, to), rewrites those lines and
// enqueues their highlights. Node identity is untouched.
func (t *Tree) refreshRows(from, to int) {
	rows := make([]column.Row, to-from)
	for i := from; i < to; i++ {
		rows[i-from] = t.rowAt(i)
	}
	batch := t.layout().CellsBatch(rows, from == 0)
	for _, k := range t.Config.Columns {
		copy(t.cells[k][from:to], batch[k])
	}
	if err := t.surf.SetLines(from, to, t.makeLines(from, to)); err != nil {
		slog.Warn("set lines failed", "from", from, "to", to, "err", err)
		return
	}
	t.enqueueHighlights(from, to)
}

func (t *Tree) cellsAt(i int) []column.Cell {
	cells := make([]column.Cell, len(t.Config.Columns))
	for j, k := range t.Config.Columns {
		cells[j] = t.cells[k][i]
	}
	return cells
}

func (t *Tree) makeLines(from, to int) []string {
	lines := make([]string, to-from)
	for i := from; i < to; i++ {
		lines[i-from] = column.MakeLine(t.cellsAt(i))
	}
	return lines
}

// enqueueHighlights hands the highlight spans of [from, to) to the render
// queue. Application happens outside this mutation's critical section; the
// surface tolerates stale batches.
func (t *Tree) enqueueHighlights(from, to int) {
	rows := make(map[int][]surface.Span)
	for i := from; i < to; i++ {
		for _, c := range t.cellsAt(i) {
			if c.Group == "" || c.Text == "" {
				continue
			}
			rows[i] = append(rows[i], surface.Span{
				ByteStart: c.ByteStart,
				ByteEnd:   c.ByteStart + len(c.Text),
				Group:     c.Group,
			})
		}
	}
	if len(rows) > 0 {
		t.queue.Enqueue(rows)
	}
}

// refreshGit rebuilds the overlay map. Failures degrade to no overlay.
func (t *Tree) refreshGit() {
	if t.overlay == nil {
		o, err := git.Discover(t.root)
		if err != nil || o == nil {
			return
		}
		t.overlay = o
	}
	if err := t.overlay.Refresh(); err != nil {
		slog.Warn("git status failed", "root", t.root, "err", err)
		t.overlay = nil
	}
}
