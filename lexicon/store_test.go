package lexicon

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "lexicon.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_ImportAndLoad(t *testing.T) {
	s := newTestStore(t)

	b, err := s.Import("core", []WordEntry{
		{Word: "南京", Entry: Entry{Freq: 10, Tag: "ns"}},
		{Word: "长江大桥", Entry: Entry{Freq: 100}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, 2, b.Entries)

	_, err = s.ImportReader("user", strings.NewReader("南京 30\n市长 5 n\n"))
	require.NoError(t, err)
	require.NoError(t, s.AddPunctuation("~~"))

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	d := NewDictionary()
	require.NoError(t, s.LoadInto(d))
	assert.True(t, d.Loaded)
	assert.Equal(t, Entry{Freq: 30}, d.Words["南京"])
	assert.Equal(t, Entry{Freq: 5, Tag: "n"}, d.Words["市长"])
	assert.True(t, d.IsPunctuation("~~"))

	batches, err := s.Batches()
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Equal(t, "user", batches[0].Source)
}

func TestStore_ImportRejectsEmptyWord(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Import("bad", []WordEntry{{Word: "南京"}, {Word: ""}})
	assert.ErrorIs(t, err, ErrEmptyWord)

	n, err := s.Count()
	require.NoError(t, err)
	assert.Zero(t, n, "failed import must roll back")
}

func TestStore_Export(t *testing.T) {
	s := newTestStore(t)
	_, err := s.ImportReader("core", strings.NewReader("长江 5\n南京 10 ns\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.Export(&buf))
	assert.Equal(t, "南京 10 ns\n长江 5\n", buf.String())
}

func TestLoadSources(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lexicon.db")
	s, err := NewStore(dbPath)
	require.NoError(t, err)
	_, err = s.ImportReader("core", strings.NewReader("南京 10\n长江 5\n"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	user := filepath.Join(t.TempDir(), "user.txt")
	require.NoError(t, os.WriteFile(user, []byte("南京 99 ns\n大桥 3\n"), 0o644))

	d, err := LoadSources(dbPath, user)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, Entry{Freq: 99, Tag: "ns"}, d.Words["南京"])

	_, err = LoadSources("", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
