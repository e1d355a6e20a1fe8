package lexer_test

import (
	"strings"
	"testing"

	"github.com/karssart/seal/internal/lexer"
	"github.com/stretchr/testify/assert"
)

func TestTokenize_Basic(t *testing.T) {
	assert.Equal(t, []string{"echo", "hello", "world"}, lexer.Tokenize("echo hello world"))
}

func TestTokenize_Empty(t *testing.T) {
	assert.Nil(t, lexer.Tokenize(""))
	assert.Nil(t, lexer.Tokenize("   \t  "))
}

func TestTokenize_Quoting(t *testing.T) {
	assert.Equal(t, []string{"echo", "hello world"}, lexer.Tokenize(`echo "hello world"`))
	assert.Equal(t, []string{"echo", "hello world"}, lexer.Tokenize(`echo 'hello world'`))
	assert.Equal(t, []string{"a b c"}, lexer.Tokenize(`"a b"' c'`))
}

func TestTokenize_Escaping(t *testing.T) {
	assert.Equal(t, []string{"a b"}, lexer.Tokenize(`a\ b`))
	assert.Equal(t, []string{"a>b"}, lexer.Tokenize(`a\>b`))
}

func TestTokenize_Operators(t *testing.T) {
	assert.Equal(t, []string{"ls", "|", "wc", "-l"}, lexer.Tokenize("ls | wc -l"))
	assert.Equal(t, []string{"cmd", "&"}, lexer.Tokenize("cmd &"))
	assert.Equal(t, []string{"cmd", "<", "in", ">", "out"}, lexer.Tokenize("cmd < in > out"))
	assert.Equal(t, []string{"cmd", ">>", "out"}, lexer.Tokenize("cmd >> out"))
	assert.Equal(t, []string{"cmd", "2>", "err"}, lexer.Tokenize("cmd 2> err"))
	assert.Equal(t, []string{"cmd", "2>&1"}, lexer.Tokenize("cmd 2>&1"))
}

func TestTokenize_LongestMatch(t *testing.T) {
	// 2>&1 must win over 2> then > then &1 as separate tokens.
	assert.Equal(t, []string{"a", "2>&1", "b"}, lexer.Tokenize("a 2>&1 b"))
	assert.Equal(t, []string{"a", ">>", "b"}, lexer.Tokenize("a >> b"))
}

func TestTokenize_UnterminatedQuote(t *testing.T) {
	// Tolerated: flush whatever was accumulated, never panics.
	assert.NotPanics(t, func() {
		lexer.Tokenize(`echo "unterminated`)
	})
	toks := lexer.Tokenize(`echo "unterminated`)
	assert.Equal(t, []string{"echo", "unterminated"}, toks)
}

func TestTokenize_TrailingBackslash(t *testing.T) {
	assert.NotPanics(t, func() {
		lexer.Tokenize(`echo a\`)
	})
}

func TestTokenize_MaxTokensCap(t *testing.T) {
	line := strings.Repeat("a ", lexer.MaxTokens+50)
	toks := lexer.Tokenize(line)
	assert.LessOrEqual(t, len(toks), lexer.MaxTokens)
}

func TestTokenize_RoundTrip(t *testing.T) {
	// Lexing then rejoining a list of plain, unquoted, non-special words
	// reproduces the original token list.
	words := []string{"foo", "bar", "baz123", "qux"}
	line := strings.Join(words, " ")
	assert.Equal(t, words, lexer.Tokenize(line))
}
