package tree

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	sysclip "github.com/atotto/clipboard"

	"github.com/treeline-dev/treeline/internal/clipboard"
	"github.com/treeline-dev/treeline/internal/fsutil"
)

// Action dispatches a named action against the tree. cursor is the
// caller's current row; every action resolves its target node from it and
// an out-of-range cursor aborts with ErrIndexOutOfRange before any
// mutation happens.
func (t *Tree) Action(name string, cursor int, args []string) error {
	slog.Debug("action", "name", name, "cursor", cursor, "args", args)
	switch name {
	case "drop":
		return t.drop(cursor)
	case "cd":
		return t.cd(cursor, args)
	case "open_tree":
		return t.Open(cursor)
	case "close_tree":
		return t.CloseDir(cursor)
	case "open_or_close_tree":
		return t.toggleTree(cursor)
	case "open_directory":
		return t.openDirectory(cursor)
	case "rename":
		return t.rename(cursor, args)
	case "new_file":
		return t.newFile(cursor, args)
	case "remove":
		return t.remove(cursor)
	case "toggle_select":
		return t.toggleSelect(cursor)
	case "clear_select_all":
		return t.clearSelectAll(cursor)
	case "toggle_select_all":
		return t.toggleSelectAll(cursor)
	case "yank_path":
		return t.yankPath(cursor)
	case "toggle_ignored_files":
		return t.toggleIgnoredFiles()
	case "copy":
		return t.stageClipboard(cursor, clipboard.ModeCopy)
	case "move":
		return t.stageClipboard(cursor, clipboard.ModeMove)
	case "paste":
		return t.paste(cursor)
	case "redraw":
		return t.RedrawSubtree(0, true)
	case "update_git_map":
		return t.updateGitMap()
	}
	return &ArgError{Msg: fmt.Sprintf("unknown action %q", name)}
}

// drop re-roots into the cursor directory, or hands a file to the host.
func (t *Tree) drop(cursor int) error {
	n, err := t.NodeAt(cursor)
	if err != nil {
		return err
	}
	if n.IsDir {
		return t.ChangeRoot(n.Path)
	}
	if t.OnOpenFile != nil {
		t.OnOpenFile(n.Path)
	}
	return nil
}

// cd changes the root: ".." to the parent of the current root, "." rescans
// the current root, anything else is taken as a path.
func (t *Tree) cd(cursor int, args []string) error {
	if _, err := t.NodeAt(cursor); err != nil {
		return err
	}
	if len(args) == 0 || args[0] == "" {
		return &ArgError{Msg: "cd requires a path"}
	}
	switch args[0] {
	case ".":
		return t.ChangeRoot(t.root)
	case "..":
		return t.ChangeRoot(filepath.Dir(t.root))
	default:
		return t.ChangeRoot(args[0])
	}
}

func (t *Tree) toggleTree(cursor int) error {
	n, err := t.NodeAt(cursor)
	if err != nil {
		return err
	}
	if !n.IsDir {
		return nil
	}
	if n.Opened {
		return t.CloseDir(cursor)
	}
	return t.Open(cursor)
}

// openDirectory re-roots into the cursor directory, or the directory
// containing the cursor file.
func (t *Tree) openDirectory(cursor int) error {
	n, err := t.NodeAt(cursor)
	if err != nil {
		return err
	}
	if n.IsDir {
		return t.ChangeRoot(n.Path)
	}
	return t.ChangeRoot(filepath.Dir(n.Path))
}

// rename moves the cursor entry to a new name in its own directory (or an
// absolute path). An existing destination is a ConflictError; nothing is
// touched in that case.
func (t *Tree) rename(cursor int, args []string) error {
	n, err := t.NodeAt(cursor)
	if err != nil {
		return err
	}
	if len(args) == 0 || args[0] == "" {
		return &ArgError{Msg: "rename requires a new name"}
	}
	if cursor == 0 {
		return &ArgError{Msg: "cannot rename the root"}
	}
	dst := args[0]
	if !filepath.IsAbs(dst) {
		dst = filepath.Join(filepath.Dir(n.Path), dst)
	}
	if _, err := os.Lstat(dst); err == nil {
		return &ConflictError{Path: dst}
	}
	if err := os.Rename(n.Path, dst); err != nil {
		return err
	}
	if t.expand[n.Path] {
		t.expand[dst] = true
		delete(t.expand, n.Path)
	}
	return t.RedrawSubtree(t.parentPos(cursor), true)
}

// newFile creates a file, or a directory when the name ends with a path
// separator, inside the cursor directory (the cursor's parent directory
// for file rows).
func (t *Tree) newFile(cursor int, args []string) error {
	n, err := t.NodeAt(cursor)
	if err != nil {
		return err
	}
	if len(args) == 0 || args[0] == "" {
		return &ArgError{Msg: "new_file requires a name"}
	}
	name := args[0]

	dirPos := cursor
	dir := n.Path
	if !n.IsDir {
		dirPos = t.parentPos(cursor)
		dir = filepath.Dir(n.Path)
	}

	isDir := strings.HasSuffix(name, "/") || strings.HasSuffix(name, string(filepath.Separator))
	dst := filepath.Join(dir, strings.TrimRight(name, "/"+string(filepath.Separator)))
	if _, err := os.Lstat(dst); err == nil {
		return &ConflictError{Path: dst}
	}
	if isDir {
		if err := os.MkdirAll(dst, 0o755); err != nil {
			return err
		}
	} else {
		f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return t.RedrawSubtree(dirPos, true)
}

// remove deletes the cursor entry recursively and redraws its parent.
// Confirmation is the caller's concern; the engine does not second-guess.
func (t *Tree) remove(cursor int) error {
	n, err := t.NodeAt(cursor)
	if err != nil {
		return err
	}
	if cursor == 0 {
		return &ArgError{Msg: "cannot remove the root"}
	}
	if err := os.RemoveAll(n.Path); err != nil {
		return err
	}
	delete(t.expand, n.Path)
	return t.RedrawSubtree(t.parentPos(cursor), true)
}

func (t *Tree) toggleSelect(cursor int) error {
	if _, err := t.NodeAt(cursor); err != nil {
		return err
	}
	t.sel.Toggle(cursor)
	t.refreshRows(cursor, cursor+1)
	return nil
}

func (t *Tree) clearSelectAll(cursor int) error {
	if _, err := t.NodeAt(cursor); err != nil {
		return err
	}
	t.sel.Clear()
	return t.RedrawSubtree(0, false)
}

func (t *Tree) toggleSelectAll(cursor int) error {
	if _, err := t.NodeAt(cursor); err != nil {
		return err
	}
	t.sel.ToggleAll(len(t.view))
	return t.RedrawSubtree(0, false)
}

// yankPath writes the selected paths (or the cursor path) to the system
// clipboard, one per line.
func (t *Tree) yankPath(cursor int) error {
	paths, err := t.targetPaths(cursor)
	if err != nil {
		return err
	}
	if err := sysclip.WriteAll(strings.Join(paths, "\n")); err != nil {
		return fmt.Errorf("yank: %w", err)
	}
	return nil
}

func (t *Tree) toggleIgnoredFiles() error {
	t.Config.ShowIgnoredFiles = !t.Config.ShowIgnoredFiles
	return t.ChangeRoot(t.root)
}

// stageClipboard snapshots the selection (or cursor path) into the shared
// clipboard with the given mode.
func (t *Tree) stageClipboard(cursor int, mode clipboard.Mode) error {
	paths, err := t.targetPaths(cursor)
	if err != nil {
		return err
	}
	t.clip.Set(paths, mode)
	return nil
}

// targetPaths resolves an action's subjects: the selected rows when the
// selection is non-empty, the cursor row otherwise.
func (t *Tree) targetPaths(cursor int) ([]string, error) {
	if _, err := t.NodeAt(cursor); err != nil {
		return nil, err
	}
	if t.sel.Len() > 0 {
		positions := t.sel.Positions()
		paths := make([]string, 0, len(positions))
		for _, p := range positions {
			if p < len(t.view) {
				paths = append(paths, t.nodeAt(p).Path)
			}
		}
		return paths, nil
	}
	return []string{t.nodeAt(cursor).Path}, nil
}

// paste consumes the clipboard into the cursor directory. Mode read,
// contents read and the filesystem work all happen inside the clipboard's
// critical section. An existing destination defers to OnPasteConflict; a
// nil resolver aborts with ConflictError.
func (t *Tree) paste(cursor int) error {
	n, err := t.NodeAt(cursor)
	if err != nil {
		return err
	}
	dirPos := cursor
	dir := n.Path
	if !n.IsDir {
		dirPos = t.parentPos(cursor)
		dir = filepath.Dir(n.Path)
	}

	err = t.clip.Do(func(paths []string, mode clipboard.Mode) error {
		if mode == clipboard.ModeNone || len(paths) == 0 {
			return &ArgError{Msg: "clipboard is empty"}
		}
		for _, src := range paths {
			dst := filepath.Join(dir, filepath.Base(src))
			if _, err := os.Lstat(dst); err == nil {
				if t.OnPasteConflict == nil {
					return &ConflictError{Path: dst}
				}
				resolved, err := t.OnPasteConflict(src, dst)
				if err != nil {
					return err
				}
				if resolved == dst {
					if err := os.RemoveAll(dst); err != nil {
						return err
					}
				}
				dst = resolved
			}
			switch mode {
			case clipboard.ModeCopy:
				if err := fsutil.CopyRecursive(src, dst); err != nil {
					return err
				}
			case clipboard.ModeMove:
				if err := os.Rename(src, dst); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return t.RedrawSubtree(dirPos, true)
}

// updateGitMap refreshes the overlay and re-renders every row's cells
// without touching node identity.
func (t *Tree) updateGitMap() error {
	t.refreshGit()
	if len(t.view) > 0 {
		return t.RedrawSubtree(0, false)
	}
	return nil
}
