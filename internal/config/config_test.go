package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treeline-dev/treeline/internal/column"
	"github.com/treeline-dev/treeline/internal/fsutil"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "[in]: ", cfg.RootMarker)
	assert.False(t, cfg.ShowIgnoredFiles)
	assert.Equal(t, fsutil.SortByName, cfg.Sort)
	assert.Equal(t, column.KindMark, cfg.Columns[0])
	assert.Equal(t, column.KindTime, cfg.Columns[len(cfg.Columns)-1])
}

func TestUpdateColumns(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Update(map[string]any{"columns": "indent:icon:filename"}))
	assert.Equal(t, []column.Kind{column.KindIndent, column.KindIcon, column.KindFilename}, cfg.Columns)
}

func TestUpdateColumnsBad(t *testing.T) {
	cfg := Default()
	err := cfg.Update(map[string]any{"columns": "indent:wat"})
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "columns", argErr.Key)
}

func TestUpdateUnknownKey(t *testing.T) {
	cfg := Default()
	err := cfg.Update(map[string]any{"no_such_key": true})
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "no_such_key", argErr.Key)
}

func TestUpdateBoolForms(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Update(map[string]any{"show_ignored_files": true}))
	assert.True(t, cfg.ShowIgnoredFiles)

	// Legacy transports send booleans as strings.
	require.NoError(t, cfg.Update(map[string]any{"show_ignored_files": "false"}))
	assert.False(t, cfg.ShowIgnoredFiles)

	assert.Error(t, cfg.Update(map[string]any{"show_ignored_files": "maybe"}))
	assert.Error(t, cfg.Update(map[string]any{"show_ignored_files": 3}))
}

func TestUpdateIntForms(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Update(map[string]any{"auto_recursive_level": 2}))
	assert.Equal(t, 2, cfg.AutoRecursiveLevel)

	require.NoError(t, cfg.Update(map[string]any{"auto_recursive_level": "4"}))
	assert.Equal(t, 4, cfg.AutoRecursiveLevel)

	assert.Error(t, cfg.Update(map[string]any{"auto_recursive_level": -1}))
	assert.Error(t, cfg.Update(map[string]any{"auto_recursive_level": "nope"}))
}

func TestUpdateSort(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Update(map[string]any{"sort": "time"}))
	assert.Equal(t, fsutil.SortByTime, cfg.Sort)

	assert.Error(t, cfg.Update(map[string]any{"sort": "colour"}))
}

func TestUpdateRootMarker(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Update(map[string]any{"root_marker": "> "}))
	assert.Equal(t, "> ", cfg.RootMarker)
}

func TestParseSort(t *testing.T) {
	p, err := ParseSort("")
	require.NoError(t, err)
	assert.Equal(t, fsutil.SortByName, p)

	p, err = ParseSort("size")
	require.NoError(t, err)
	assert.Equal(t, fsutil.SortBySize, p)

	_, err = ParseSort("alphabetic")
	assert.Error(t, err)
}
