// Package column turns flattened tree rows into per-column cells: the
// rendered text fragment of one (row, column) pair together with its
// display-column and byte extents, so a line can be assembled and
// highlight spans addressed without re-measuring anything.
package column

import (
	"fmt"
	"strings"
)

// Kind identifies one configured display column.
type Kind uint8

const (
	KindMark Kind = iota
	KindIndent
	KindGit
	KindIcon
	KindFilename
	KindSize
	KindTime
)

var kindNames = map[Kind]string{
	KindMark:     "mark",
	KindIndent:   "indent",
	KindGit:      "git",
	KindIcon:     "icon",
	KindFilename: "filename",
	KindSize:     "size",
	KindTime:     "time",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", k)
}

// ParseKind maps a column name to its Kind. Unknown names are an error,
// never silently defaulted.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown column kind %q", s)
}

// ParseKinds parses a colon-separated column list such as
// "mark:indent:git:icon:filename".
func ParseKinds(s string) ([]Kind, error) {
	parts := strings.Split(s, ":")
	kinds := make([]Kind, 0, len(parts))
	for _, p := range parts {
		k, err := ParseKind(p)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// AlignStop is the minimum display width reserved for the filename column,
// so columns placed after it line up across rows regardless of name or
// glyph width.
const AlignStop = 90

// Cell is the rendered fragment of one (row, column) pair. Col extents are
// Unicode display columns; byte extents address highlight spans in the
// assembled line.
type Cell struct {
	Kind      Kind
	ColStart  int
	ColEnd    int
	ByteStart int
	ByteEnd   int
	Text      string
	Group     string // highlight group, empty for plain text
}

// Highlight groups attached to cells. The consumer maps them to whatever
// styling its display supports.
const (
	GroupDirectory = "directory"
	GroupSymlink   = "symlink"
	GroupRoot      = "root"
	GroupSelected  = "selected"
	GroupReadOnly  = "readonly"
	GroupSize      = "size"
	GroupTime      = "time"
)

// MakeLine assembles the literal text of one row from its cells, in column
// order. Gaps between extents become spaces, including the padding a cell
// carries between its text length and its byte width.
func MakeLine(cells []Cell) string {
	var b strings.Builder
	col := 0
	for _, c := range cells {
		if gap := c.ColStart - col; gap > 0 {
			b.WriteString(strings.Repeat(" ", gap))
		}
		b.WriteString(c.Text)
		if pad := c.ByteEnd - c.ByteStart - len(c.Text); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		col = c.ColEnd
	}
	return b.String()
}
