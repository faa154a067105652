package lattice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortestPath(t *testing.T) {
	tests := []struct {
		name string
		text string
		lex  *setLexicon
		want []string
	}{
		{
			name: "single long word beats prefix without continuation",
			text: "abc",
			lex:  newSetLexicon("ab", "a", "b", "abc"),
			want: []string{"abc"},
		},
		{
			// Both two-token routes reach boundary 3 at cost 2. Boundary 1 pops
			// before boundary 2, so (1,3) relaxes boundary 3 first and is kept.
			name: "equal cost keeps the earliest relaxation",
			text: "abc",
			lex:  newSetLexicon("a", "b", "c", "ab", "bc"),
			want: []string{"a", "bc"},
		},
		{
			name: "minimum token count",
			text: "南京市长江大桥",
			lex:  newSetLexicon("南京", "南京市", "市长", "长江", "长江大桥", "大桥", "江", "大", "桥", "南", "京", "市", "长"),
			want: []string{"南京市", "长江大桥"},
		},
		{
			name: "punctuation joins words",
			text: "你好，世界",
			lex:  newSetLexicon("你好", "世界").withPunct("，"),
			want: []string{"你好", "，", "世界"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := BuildString(tt.text, tt.lex)
			p, err := ShortestPath(l)
			require.NoError(t, err)
			assert.True(t, l.Valid(p))
			assert.Equal(t, tt.want, l.Segments(p))
		})
	}
}

func TestShortestPath_NeverLongerThanUnitByUnit(t *testing.T) {
	text := "南京市长江大桥"
	lex := newSetLexicon("南京", "市长", "长江", "大桥")
	for _, r := range text {
		lex.words[string(r)] = true
	}
	l := BuildString(text, lex)

	p, err := ShortestPath(l)
	require.NoError(t, err)
	assert.LessOrEqual(t, p.Tokens(), len([]rune(text)))
	assert.Equal(t, 4, p.Tokens())
}

func TestShortestPath_Unreachable(t *testing.T) {
	l := BuildString("ab", newSetLexicon("a"))

	p, err := ShortestPath(l)
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.Nil(t, p)
}

func TestShortestPath_EmptyInput(t *testing.T) {
	l := BuildString("", newSetLexicon())

	p, err := ShortestPath(l)
	require.NoError(t, err)
	assert.Equal(t, Path{0}, p)
	assert.Empty(t, l.Segments(p))
}

func TestShortestPath_Deterministic(t *testing.T) {
	lex := newSetLexicon("a", "b", "c", "d", "ab", "bc", "cd", "abc", "bcd")
	var first Path
	for i := 0; i < 20; i++ {
		p, err := ShortestPath(BuildString("abcd", lex))
		require.NoError(t, err)
		if first == nil {
			first = p
			continue
		}
		assert.Equal(t, first, p)
	}
	assert.Equal(t, 2, first.Tokens())
}
