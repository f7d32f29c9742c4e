package tree

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treeline-dev/treeline/internal/config"
	"github.com/treeline-dev/treeline/internal/surface"
)

func TestManagerNewTree(t *testing.T) {
	root := fixture(t)
	m := NewManager()
	t.Cleanup(m.CloseAll)

	id, err := m.NewTree(root, surface.NewBuffer(), config.Default())
	require.NoError(t, err)

	tr, err := m.Tree(id)
	require.NoError(t, err)
	assert.Equal(t, root, tr.Root())
	assert.Equal(t, 3, tr.Len())
}

func TestManagerNewTreeBadRoot(t *testing.T) {
	m := NewManager()
	t.Cleanup(m.CloseAll)

	_, err := m.NewTree(filepath.Join(t.TempDir(), "missing"), surface.NewBuffer(), config.Default())
	assert.Error(t, err)
}

func TestManagerUnknownTree(t *testing.T) {
	m := NewManager()
	t.Cleanup(m.CloseAll)

	var argErr *ArgError
	_, err := m.Tree(7)
	assert.ErrorAs(t, err, &argErr)
	assert.ErrorAs(t, m.Action(7, "redraw", 0, nil), &argErr)
	_, err = m.GetContext(7, 0)
	assert.ErrorAs(t, err, &argErr)
}

func TestManagerAction(t *testing.T) {
	root := fixture(t)
	m := NewManager()
	t.Cleanup(m.CloseAll)

	id, err := m.NewTree(root, surface.NewBuffer(), config.Default())
	require.NoError(t, err)

	require.NoError(t, m.Action(id, "open_tree", 1, nil))
	tr, err := m.Tree(id)
	require.NoError(t, err)
	assert.Equal(t, 4, tr.Len())
}

func TestManagerGetContext(t *testing.T) {
	m := NewManager()
	t.Cleanup(m.CloseAll)

	id, err := m.NewTree(fixture(t), surface.NewBuffer(), config.Default())
	require.NoError(t, err)

	ctx, err := m.GetContext(id, 1)
	require.NoError(t, err)
	assert.True(t, ctx.IsDir)
}

func TestManagerUpdateConfig(t *testing.T) {
	m := NewManager()
	t.Cleanup(m.CloseAll)

	buf := surface.NewBuffer()
	id, err := m.NewTree(fixture(t), buf, config.Default())
	require.NoError(t, err)

	require.NoError(t, m.UpdateConfig(id, map[string]any{"show_ignored_files": true}))
	tr, err := m.Tree(id)
	require.NoError(t, err)
	assert.True(t, tr.Config.ShowIgnoredFiles)

	// A bad key is rejected before any re-layout.
	var argErr *config.ArgumentError
	assert.ErrorAs(t, m.UpdateConfig(id, map[string]any{"bogus": 1}), &argErr)
}

func TestManagerCloseTree(t *testing.T) {
	m := NewManager()
	t.Cleanup(m.CloseAll)

	id, err := m.NewTree(fixture(t), surface.NewBuffer(), config.Default())
	require.NoError(t, err)

	m.CloseTree(id)
	_, err = m.Tree(id)
	assert.Error(t, err)

	// Closing twice is harmless.
	m.CloseTree(id)
}

func TestManagerRecent(t *testing.T) {
	m := NewManager()
	t.Cleanup(m.CloseAll)

	_, ok := m.Recent()
	assert.False(t, ok)

	idA, err := m.NewTree(fixture(t), surface.NewBuffer(), config.Default())
	require.NoError(t, err)
	idB, err := m.NewTree(fixture(t), surface.NewBuffer(), config.Default())
	require.NoError(t, err)

	recent, ok := m.Recent()
	require.True(t, ok)
	assert.Equal(t, idB, recent)

	// Acting on a tree makes it the recent one.
	require.NoError(t, m.Action(idA, "redraw", 0, nil))
	recent, ok = m.Recent()
	require.True(t, ok)
	assert.Equal(t, idA, recent)
}

func TestManagerMultipleTrees(t *testing.T) {
	m := NewManager()
	t.Cleanup(m.CloseAll)

	idA, err := m.NewTree(fixture(t), surface.NewBuffer(), config.Default())
	require.NoError(t, err)
	idB, err := m.NewTree(fixture(t), surface.NewBuffer(), config.Default())
	require.NoError(t, err)
	assert.NotEqual(t, idA, idB)

	// Actions address exactly one tree.
	require.NoError(t, m.Action(idA, "open_tree", 1, nil))
	trA, err := m.Tree(idA)
	require.NoError(t, err)
	trB, err := m.Tree(idB)
	require.NoError(t, err)
	assert.Equal(t, 4, trA.Len())
	assert.Equal(t, 3, trB.Len())
}
