package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teatak/wordlattice/lexicon"
	"github.com/teatak/wordlattice/segmenter"
)

func newRunner(t *testing.T) runner {
	t.Helper()
	dict := lexicon.NewDictionary()
	require.NoError(t, dict.LoadReader(strings.NewReader("a 1\nb 1\nab 1\n南京市 100\n长江大桥 100\n南京 10\n长江 10\n大桥 10\n")))
	return runner{seg: segmenter.NewSegmenter(dict)}
}

func TestProcess(t *testing.T) {
	r := newRunner(t)
	var out bytes.Buffer

	assert.True(t, r.process(&out, "南京市长江大桥"))
	assert.Equal(t, "南京市/长江大桥\n", out.String())

	out.Reset()
	r.k = 2
	assert.True(t, r.process(&out, "ab"))
	assert.Equal(t, "a/b\n", out.String())

	out.Reset()
	r.k = 3
	assert.False(t, r.process(&out, "ab"))
	assert.Contains(t, out.String(), "fewer than k")

	out.Reset()
	r.k, r.top = 0, 5
	assert.True(t, r.process(&out, "ab"))
	assert.Equal(t, "1: ab\n2: a/b\n", out.String())

	out.Reset()
	r.top, r.search = 0, true
	assert.True(t, r.process(&out, "南京市长江大桥"))
	assert.Equal(t, "南京/南京市/长江/大桥/长江大桥\n", out.String())
}

func TestProcess_KSelection(t *testing.T) {
	dict := lexicon.NewDictionary()
	require.NoError(t, dict.LoadReader(strings.NewReader("a\nab\nc\nde\nbcde\n")))
	r := runner{seg: segmenter.NewSegmenter(dict)}
	var out bytes.Buffer

	assert.True(t, r.process(&out, "abcde"))
	assert.Equal(t, "a/bcde\n", out.String(), "no k: fewest tokens")

	out.Reset()
	r.k = 1
	assert.True(t, r.process(&out, "abcde"))
	assert.Equal(t, "ab/c/de\n", out.String(), "k=1: first path in search order")

	for _, k := range []int{-3, -1} {
		out.Reset()
		r.k = k
		assert.False(t, r.process(&out, "abcde"))
		assert.Contains(t, out.String(), "k must be at least 1")
	}

	out.Reset()
	r.k, r.top = 0, -2
	assert.False(t, r.process(&out, "abcde"))
	assert.Contains(t, out.String(), "k must be at least 1")
}

func TestProcess_MaxRunes(t *testing.T) {
	r := newRunner(t)
	r.maxRunes = 3
	var out bytes.Buffer

	assert.True(t, r.process(&out, "南京市"))
	out.Reset()
	assert.False(t, r.process(&out, "南京市长江大桥"))
	assert.Equal(t, "error: input has 7 runes, limit 3\n", out.String())
}

func TestInteractive(t *testing.T) {
	r := newRunner(t)
	var out bytes.Buffer

	r.interactive(strings.NewReader("南京市长江大桥\n\n南京人\nexit\nab\n"), &out)

	got := out.String()
	assert.Contains(t, got, "南京市/长江大桥\n")
	assert.Contains(t, got, "error: lattice: target boundary unreachable")
	assert.NotContains(t, got, "ab\n", "input after exit is ignored")
}
