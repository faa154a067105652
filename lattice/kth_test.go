package lattice

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKthPath_TwoRunes(t *testing.T) {
	l := BuildString("ab", newSetLexicon("a", "b", "ab"))

	p, err := KthPath(l, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab"}, l.Segments(p))

	p, err = KthPath(l, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, l.Segments(p))

	_, err = KthPath(l, 3)
	assert.ErrorIs(t, err, ErrKOutOfRange)
}

func TestKthPath_EnumeratesEveryPathOnce(t *testing.T) {
	l := BuildString("abc", newSetLexicon("a", "b", "c", "ab", "bc"))

	want := [][]string{
		{"ab", "c"},
		{"a", "bc"},
		{"a", "b", "c"},
	}
	for k, segs := range want {
		p, err := KthPath(l, k+1)
		require.NoError(t, err, "k=%d", k+1)
		assert.True(t, l.Valid(p))
		assert.Equal(t, segs, l.Segments(p), "k=%d", k+1)
	}

	_, err := KthPath(l, 4)
	assert.ErrorIs(t, err, ErrKOutOfRange)
}

func TestKthPath_Errors(t *testing.T) {
	unreachable := BuildString("ab", newSetLexicon("a"))

	_, err := KthPath(unreachable, 1)
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.NotErrorIs(t, err, ErrKOutOfRange)

	_, err = KthPath(unreachable, 0)
	assert.ErrorIs(t, err, ErrInvalidK)

	_, err = KthPath(BuildString("a", newSetLexicon("a")), -3)
	assert.ErrorIs(t, err, ErrInvalidK)
}

func TestKthPath_EmptyInput(t *testing.T) {
	l := BuildString("", newSetLexicon())

	p, err := KthPath(l, 1)
	require.NoError(t, err)
	assert.Equal(t, Path{0}, p)

	_, err = KthPath(l, 2)
	assert.ErrorIs(t, err, ErrKOutOfRange)
}

// In "abcde" the remaining-units estimate overstates the cost left after "a"
// because "bcde" is one word. The three-token path therefore leaves the
// frontier before the two-token one.
func TestKthPath_InadmissibleHeuristicOrder(t *testing.T) {
	lex := newSetLexicon("a", "ab", "c", "de", "bcde")
	l := BuildString("abcde", lex)

	shortest, err := ShortestPath(l)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "bcde"}, l.Segments(shortest))

	first, err := KthPath(l, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "c", "de"}, l.Segments(first))
	assert.Greater(t, first.Tokens(), shortest.Tokens())

	second, err := KthPath(l, 2)
	require.NoError(t, err)
	assert.Equal(t, shortest, second)

	byCost, err := KthPath(l, 1, WithHeuristic(Zero))
	require.NoError(t, err)
	assert.Equal(t, shortest, byCost)
}

func TestKShortestPaths(t *testing.T) {
	l := BuildString("abc", newSetLexicon("a", "b", "c", "ab", "bc"))

	paths, err := KShortestPaths(l, 2)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, Path{0, 2, 3}, paths[0])
	assert.Equal(t, Path{0, 1, 3}, paths[1])

	all, err := KShortestPaths(l, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	seen := map[string]bool{}
	for _, p := range all {
		key := fmt.Sprint(p)
		assert.False(t, seen[key], "duplicate path %v", p)
		seen[key] = true
	}

	byCost, err := KShortestPaths(l, 10, WithHeuristic(Zero))
	require.NoError(t, err)
	for i := 1; i < len(byCost); i++ {
		assert.LessOrEqual(t, byCost[i-1].Tokens(), byCost[i].Tokens())
	}

	_, err = KShortestPaths(BuildString("ab", newSetLexicon("a")), 3)
	assert.ErrorIs(t, err, ErrUnreachable)

	_, err = KShortestPaths(l, 0)
	assert.ErrorIs(t, err, ErrInvalidK)
}

func TestKShortestPaths_EachSegmentationOnce(t *testing.T) {
	// every composition of 5 into parts of size 1..5
	l := BuildString("aaaaa", newSetLexicon("a", "aa", "aaa", "aaaa", "aaaaa"))

	paths, err := KShortestPaths(l, 100)
	require.NoError(t, err)
	require.Len(t, paths, 16)

	seen := map[string]bool{}
	for _, p := range paths {
		require.True(t, l.Valid(p))
		key := fmt.Sprint(p)
		assert.False(t, seen[key], "duplicate path %v", p)
		seen[key] = true
	}

	_, err = KthPath(l, 17)
	assert.ErrorIs(t, err, ErrKOutOfRange)
}

func TestKthPath_CallerBounds(t *testing.T) {
	lex := newSetLexicon("a", "aa", "aaa")
	l := BuildString("aaaaaaaaaaaa", lex)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := KthPath(l, 1, WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = KthPath(l, 1000, WithMaxExpansions(10))
	assert.ErrorIs(t, err, ErrSearchLimit)

	p, err := KthPath(l, 1, WithMaxExpansions(0))
	require.NoError(t, err)
	assert.True(t, l.Valid(p))
}

func TestHeuristicByName(t *testing.T) {
	for _, name := range []string{"", "units", "zero", "cost"} {
		h, ok := HeuristicByName(name)
		assert.True(t, ok, name)
		assert.NotNil(t, h, name)
	}
	_, ok := HeuristicByName("astar")
	assert.False(t, ok)

	assert.Equal(t, 3.0, RemainingUnits(2, 5))
	assert.Equal(t, 0.0, Zero(2, 5))
}
