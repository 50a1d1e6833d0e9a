package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoned-ape/shuffleplay/internal/app/filter"
	"github.com/stoned-ape/shuffleplay/internal/infra/config"
	"github.com/stoned-ape/shuffleplay/internal/infra/oserr"
)

func makeLibrary(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"b.mp3", "a.mp3", ".hidden", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "live"), 0o755))
	return dir
}

func TestLister_List(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := makeLibrary(t)

	p, err := NewLister(nil).List(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{".hidden", "a.mp3", "b.mp3", "live", "notes.txt"}, p.Names())
	assert.Equal(t, dir, p.Dir)

	wd, err := os.Getwd()
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(wd)
	require.NoError(t, err)
	assert.Equal(t, want, got, "List must change into the library directory")

	live, ok := p.At(3)
	require.True(t, ok)
	assert.True(t, live.IsDir)
}

func TestLister_ListFiltered(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := makeLibrary(t)

	chain, err := filter.NewChainFromConfig(map[string]config.FilterConfig{
		"hidden_entry_filter": {Enabled: true},
		"directory_filter":    {Enabled: true},
		"extension_filter": {
			Enabled:  true,
			Settings: map[string]any{"extensions": []any{"mp3"}},
		},
	})
	require.NoError(t, err)

	p, err := NewLister(chain).List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.mp3", "b.mp3"}, p.Names())
}

func TestLister_ListEmpty(t *testing.T) {
	t.Chdir(t.TempDir())

	p, err := NewLister(nil).List(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, p.Len())
}

func TestLister_ListMissingDirectory(t *testing.T) {
	t.Chdir(t.TempDir())

	p, err := NewLister(nil).List(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Nil(t, p)
	assert.True(t, errors.Is(err, ErrDirectory))
	assert.True(t, oserr.IsSyscall(err))
	assert.Contains(t, oserr.Diagnostic(err), "no such file or directory")
}
