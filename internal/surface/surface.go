// Package surface defines the text surface the tree engine renders into:
// a line buffer with byte-addressed highlight spans and a cursor. The
// engine only ever talks to the Surface interface; Buffer is the in-memory
// implementation used by tests and the bundled TUI.
package surface

import (
	"fmt"
	"sync"
)

// Span is one highlight region inside a line, addressed in bytes.
type Span struct {
	ByteStart int
	ByteEnd   int
	Group     string
}

// Surface is the consumed text-surface collaborator. Implementations must
// tolerate highlight spans arriving out of order relative to line updates;
// re-application is idempotent.
type Surface interface {
	// SetLines replaces rows [start, end) with the replacement lines.
	// end == -1 addresses the end of the buffer.
	SetLines(start, end int, lines []string) error
	// ApplyHighlight attaches a highlight group to a byte range of row.
	ApplyHighlight(row, byteStart, byteEnd int, group string) error
	// Cursor returns the current cursor row.
	Cursor() (int, error)
	// SetCursor moves the cursor to row, clamped to the line range.
	SetCursor(row int) error
}

// Buffer is a thread-safe in-memory Surface.
type Buffer struct {
	mu     sync.Mutex
	lines  []string
	spans  map[int][]Span
	cursor int
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{spans: make(map[int][]Span)}
}

// SetLines implements Surface. Replacing a row discards its old spans;
// rows that shift keep their spans attached to their new position.
func (b *Buffer) SetLines(start, end int, lines []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if end == -1 {
		end = len(b.lines)
	}
	if start < 0 || start > len(b.lines) || end < start || end > len(b.lines) {
		return fmt.Errorf("surface: line range [%d,%d) out of bounds (%d lines)", start, end, len(b.lines))
	}

	delta := len(lines) - (end - start)
	next := make(map[int][]Span, len(b.spans))
	for row, spans := range b.spans {
		switch {
		case row < start:
			next[row] = spans
		case row < end:
			// replaced, spans dropped
		default:
			next[row+delta] = spans
		}
	}
	b.spans = next

	replaced := make([]string, 0, len(b.lines)+delta)
	replaced = append(replaced, b.lines[:start]...)
	replaced = append(replaced, lines...)
	replaced = append(replaced, b.lines[end:]...)
	b.lines = replaced

	if b.cursor >= len(b.lines) {
		b.cursor = len(b.lines) - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
	return nil
}

// ApplyHighlight implements Surface. Stale rows are ignored rather than
// rejected; a duplicate span replaces its earlier application.
func (b *Buffer) ApplyHighlight(row, byteStart, byteEnd int, group string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if row < 0 || row >= len(b.lines) {
		return nil
	}
	for i, s := range b.spans[row] {
		if s.ByteStart == byteStart && s.ByteEnd == byteEnd {
			b.spans[row][i].Group = group
			return nil
		}
	}
	b.spans[row] = append(b.spans[row], Span{ByteStart: byteStart, ByteEnd: byteEnd, Group: group})
	return nil
}

// Cursor implements Surface.
func (b *Buffer) Cursor() (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor, nil
}

// SetCursor implements Surface.
func (b *Buffer) SetCursor(row int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if row < 0 {
		row = 0
	}
	if row >= len(b.lines) && len(b.lines) > 0 {
		row = len(b.lines) - 1
	}
	b.cursor = row
	return nil
}

// Lines returns a copy of the buffer contents.
func (b *Buffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.lines...)
}

// Line returns row's text, or the empty string when out of range.
func (b *Buffer) Line(row int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return b.lines[row]
}

// Len returns the number of lines.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}

// Spans returns a copy of row's highlight spans.
func (b *Buffer) Spans(row int) []Span {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Span(nil), b.spans[row]...)
}
