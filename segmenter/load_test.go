package segmenter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teatak/wordlattice/config"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	core := filepath.Join(dir, "dict_core.txt")
	user := filepath.Join(dir, "dict_user.txt")
	require.NoError(t, os.WriteFile(core, []byte("南京市 100 ns\n长江 10\n"), 0o644))
	require.NoError(t, os.WriteFile(user, []byte("长江大桥 100\n"), 0o644))

	cfg := config.Defaults()
	cfg.Dictionaries = []string{core, user}
	cfg.Punctuation = []string{"~~"}
	cfg.Heuristic = "zero"
	cfg.CacheSize = 0

	seg, dict, err := Load(cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, dict.Len())
	assert.True(t, dict.IsPunctuation("~~"))
	assert.Equal(t, 0, seg.Options().CacheSize)

	got, err := seg.Cut("南京市~~长江大桥")
	require.NoError(t, err)
	assert.Equal(t, []string{"南京市", "~~", "长江大桥"}, got)
}

func TestLoad_Errors(t *testing.T) {
	cfg := config.Defaults()
	cfg.Heuristic = "astar"
	_, _, err := Load(cfg)
	assert.Error(t, err)

	cfg = config.Defaults()
	cfg.Dictionaries = []string{filepath.Join(t.TempDir(), "missing.txt")}
	_, _, err = Load(cfg)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
