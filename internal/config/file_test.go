package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treeline-dev/treeline/internal/column"
	"github.com/treeline-dev/treeline/internal/fsutil"
)

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
columns: indent:icon:filename
show_ignored_files: true
root_marker: "> "
sort: size
auto_recursive_level: 3
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []column.Kind{column.KindIndent, column.KindIcon, column.KindFilename}, cfg.Columns)
	assert.True(t, cfg.ShowIgnoredFiles)
	assert.Equal(t, "> ", cfg.RootMarker)
	assert.Equal(t, fsutil.SortBySize, cfg.Sort)
	assert.Equal(t, 3, cfg.AutoRecursiveLevel)
}

func TestLoadFilePartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sort: time\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fsutil.SortByTime, cfg.Sort)
	// Unset keys keep their defaults.
	assert.Equal(t, Default().Columns, cfg.Columns)
	assert.Equal(t, Default().RootMarker, cfg.RootMarker)
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns: [not\n"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileBadValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns: indent:wat\n"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("treeline", "config.yaml"), filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)))
}
