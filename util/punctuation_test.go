package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPunctuation(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"，", true},
		{"。", true},
		{"——", true},
		{"℃", true},
		{"‰", true},
		{",", true},
		{"!", true},
		{"　", true}, // ideographic space, CJK symbols block
		{"—", true},
		{"，。", false},
		{"——，", false},
		{"", false},
		{"a", false},
		{"中", false},
		{"Ａ", false},
		{"５", false},
		{"\xff", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPunctuation(tt.in), "IsPunctuation(%q)", tt.in)
	}
}

func TestMaxPunctuationLen(t *testing.T) {
	assert.Equal(t, 2, MaxPunctuationLen())
}

func TestContainsPunctuation(t *testing.T) {
	assert.True(t, ContainsPunctuation("你好，世界"))
	assert.True(t, ContainsPunctuation("——"))
	assert.False(t, ContainsPunctuation("你好世界"))
	assert.False(t, ContainsPunctuation(""))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.txt")
	require.NoError(t, os.WriteFile(path, []byte("南京 10\n"), 0o644))

	assert.True(t, FileExists(path))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing.txt")))
}
