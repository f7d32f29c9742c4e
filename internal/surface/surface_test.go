package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLinesAppend(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.SetLines(0, 0, []string{"a", "b"}))
	assert.Equal(t, []string{"a", "b"}, b.Lines())
	assert.Equal(t, 2, b.Len())
}

func TestSetLinesReplaceAll(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.SetLines(0, 0, []string{"a", "b", "c"}))
	require.NoError(t, b.SetLines(0, -1, []string{"x"}))
	assert.Equal(t, []string{"x"}, b.Lines())
}

func TestSetLinesSplice(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.SetLines(0, 0, []string{"a", "b", "c"}))
	require.NoError(t, b.SetLines(1, 2, []string{"b1", "b2"}))
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, b.Lines())
}

func TestSetLinesOutOfRange(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.SetLines(0, 0, []string{"a"}))
	assert.Error(t, b.SetLines(0, 5, nil))
	assert.Error(t, b.SetLines(-1, 0, nil))
	assert.Error(t, b.SetLines(2, 2, nil))
}

func TestSpansShiftWithLines(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.SetLines(0, 0, []string{"a", "b", "c"}))
	require.NoError(t, b.ApplyHighlight(2, 0, 1, "directory"))

	// Inserting above row 2 shifts its spans down with it.
	require.NoError(t, b.SetLines(1, 1, []string{"new"}))
	assert.Empty(t, b.Spans(2))
	assert.Equal(t, []Span{{ByteStart: 0, ByteEnd: 1, Group: "directory"}}, b.Spans(3))
}

func TestSpansDroppedOnReplace(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.SetLines(0, 0, []string{"a", "b"}))
	require.NoError(t, b.ApplyHighlight(1, 0, 1, "x"))
	require.NoError(t, b.SetLines(1, 2, []string{"b2"}))
	assert.Empty(t, b.Spans(1))
}

func TestApplyHighlightStaleRowIgnored(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.SetLines(0, 0, []string{"a"}))
	// A batch for rows that no longer exist must not fail.
	assert.NoError(t, b.ApplyHighlight(7, 0, 1, "x"))
	assert.Empty(t, b.Spans(7))
}

func TestApplyHighlightIdempotent(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.SetLines(0, 0, []string{"abc"}))
	require.NoError(t, b.ApplyHighlight(0, 0, 2, "x"))
	require.NoError(t, b.ApplyHighlight(0, 0, 2, "y"))

	spans := b.Spans(0)
	require.Len(t, spans, 1)
	assert.Equal(t, "y", spans[0].Group)
}

func TestCursorClamped(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.SetLines(0, 0, []string{"a", "b", "c"}))
	require.NoError(t, b.SetCursor(10))
	cur, err := b.Cursor()
	require.NoError(t, err)
	assert.Equal(t, 2, cur)

	// Shrinking the buffer pulls the cursor back in range.
	require.NoError(t, b.SetLines(1, 3, nil))
	cur, err = b.Cursor()
	require.NoError(t, err)
	assert.Equal(t, 0, cur)
}

func TestLineAccessor(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.SetLines(0, 0, []string{"a"}))
	assert.Equal(t, "a", b.Line(0))
	assert.Equal(t, "", b.Line(5))
}
