package column

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/treeline-dev/treeline/internal/git"
)

// Row carries everything the layout needs to know about one flattened
// node. The tree builds it; this package stays free of tree internals.
type Row struct {
	Path     string
	Name     string
	IsDir    bool
	IsLink   bool
	ReadOnly bool
	Opened   bool // expanded directory
	Selected bool
	Last     bool // final sibling in its parent's listing
	Level    int

	// AncestorLast holds, root-first, the Last flag of each ancestor
	// strictly between the root and this node. It drives the
	// continuation markers of the indent column.
	AncestorLast []bool

	Git     git.Status
	Size    int64
	ModTime time.Time
}

// Layout computes cells for a configured column list.
type Layout struct {
	Kinds      []Kind
	RootMarker string
}

// RowCells lays out a single row, one cell per configured column in order.
// Cells are placed left to right with a one-column separator, except that
// no separator follows the indent column. The filename cell is padded to
// AlignStop display columns so later columns align across rows.
//
// CellsBatch is defined in terms of this function, so the single-row and
// batch forms are identical by construction.
func (l *Layout) RowCells(row Row, isRoot bool) []Cell {
	cells := make([]Cell, 0, len(l.Kinds))
	col, byteAt := 0, 0
	for _, k := range l.Kinds {
		text, group := l.render(k, row, isRoot)
		c := Cell{
			Kind:      k,
			Text:      text,
			Group:     group,
			ColStart:  col,
			ColEnd:    col + runewidth.StringWidth(text),
			ByteStart: byteAt,
			ByteEnd:   byteAt + len(text),
		}
		if k == KindFilename {
			if pad := AlignStop - c.ColEnd; pad > 0 {
				c.ColEnd += pad
				c.ByteEnd += pad
			}
		}
		sep := 1
		if k == KindIndent {
			sep = 0
		}
		col = c.ColEnd + sep
		byteAt = c.ByteEnd + sep
		cells = append(cells, c)
	}
	return cells
}

// CellsBatch lays out a run of rows. When firstIsRoot is set the first row
// renders as the tree root (marker plus absolute path, no indent).
func (l *Layout) CellsBatch(rows []Row, firstIsRoot bool) map[Kind][]Cell {
	out := make(map[Kind][]Cell, len(l.Kinds))
	for _, k := range l.Kinds {
		out[k] = make([]Cell, 0, len(rows))
	}
	for i, row := range rows {
		cells := l.RowCells(row, firstIsRoot && i == 0)
		for j, k := range l.Kinds {
			out[k] = append(out[k], cells[j])
		}
	}
	return out
}

func (l *Layout) render(k Kind, row Row, isRoot bool) (string, string) {
	switch k {
	case KindMark:
		switch {
		case row.ReadOnly:
			return MarkReadOnly, GroupReadOnly
		case row.Selected:
			return MarkSelected, GroupSelected
		}
		return "", ""

	case KindIndent:
		if isRoot {
			return "", ""
		}
		var b strings.Builder
		for _, last := range row.AncestorLast {
			if last {
				b.WriteString(IndentBlank)
			} else {
				b.WriteString(IndentBar)
			}
		}
		if row.Last {
			b.WriteString(IndentLast)
		} else {
			b.WriteString(IndentBranch)
		}
		return b.String(), ""

	case KindGit:
		return GitGlyphFor(row.Git)

	case KindIcon:
		if row.IsDir {
			switch {
			case row.IsLink:
				return IconDirSymlink, GroupSymlink
			case row.Opened:
				return IconDirOpen, GroupDirectory
			default:
				return IconDirClosed, GroupDirectory
			}
		}
		if row.IsLink {
			return IconFileLink, GroupSymlink
		}
		return FileIconFor(strings.ToLower(filepath.Ext(row.Name)))

	case KindFilename:
		if isRoot {
			return l.RootMarker + row.Path, GroupRoot
		}
		if row.IsDir {
			return row.Name + string(filepath.Separator), GroupDirectory
		}
		if row.IsLink {
			return row.Name, GroupSymlink
		}
		return row.Name, ""

	case KindSize:
		if row.IsDir {
			return "", ""
		}
		return fmt.Sprintf("%9s", humanize.Bytes(uint64(row.Size))), GroupSize

	case KindTime:
		return row.ModTime.Format("2006-01-02 15:04"), GroupTime
	}
	return "", ""
}
