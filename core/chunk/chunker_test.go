package chunk

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultSize(t *testing.T) {
	assert.Equal(t, DefaultSize, New(0).Size)
	assert.Equal(t, DefaultSize, New(-3).Size)
	assert.Equal(t, 10, New(10).Size)
}

func TestChunk_Short(t *testing.T) {
	c := New(10)
	assert.Nil(t, c.Chunk(""))
	assert.Equal(t, []string{"hello"}, c.Chunk("hello"))
	assert.Equal(t, []string{"0123456789"}, c.Chunk("0123456789"))
}

func TestChunk_PrefersWhitespace(t *testing.T) {
	c := New(10)
	got := c.Chunk("hello world again")
	assert.Equal(t, []string{"hello ", "world ", "again"}, got)
}

func TestChunk_LongWordIsCut(t *testing.T) {
	c := New(4)
	got := c.Chunk("abcdefghij")
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, got)
}

func TestChunk_MultiByte(t *testing.T) {
	c := New(3)
	got := c.Chunk("日本語テキスト")
	assert.Equal(t, []string{"日本語", "テキス", "ト"}, got)
}

func TestChunk_RoundTripAndLimit(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 300)
	c := New(DefaultSize)
	chunks := c.Chunk(text)

	require.Greater(t, len(chunks), 1)
	assert.Equal(t, text, strings.Join(chunks, ""))
	for _, ch := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(ch), DefaultSize)
	}
}
