package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertNormalization(t *testing.T) {
	lex := New()
	lex.Insert("  Apple\t")
	lex.Insert("APPLE")
	lex.Insert("apple")

	assert.Equal(t, 1, lex.WordCount())
	assert.True(t, lex.Contains("apple"))
	assert.True(t, lex.Contains("ApPlE"))
}

func TestInsertRejectsNonAlphabetic(t *testing.T) {
	lex := New()
	for _, w := range []string{"", "   ", "app1e", "don't", "semi-colon", "a b", "42"} {
		lex.Insert(w)
	}
	assert.Equal(t, 0, lex.WordCount())
	assert.False(t, lex.Contains("app1e"))
}

func TestInsertIdempotent(t *testing.T) {
	a := New()
	a.Insert("  PEAR ")
	a.Insert("pear")
	a.Insert("Pear")

	b := New()
	b.Insert("pear")

	assert.Equal(t, b.WordCount(), a.WordCount())
	assert.Equal(t, b.Words(), a.Words())
}

func TestWordsRoundTrip(t *testing.T) {
	words := []string{"apple", "apply", "ample", "axe", "app"}
	lex := FromWords(words)

	got := lex.Words()
	sort.Strings(got)
	sort.Strings(words)
	assert.Equal(t, words, got)
}

func TestPrefixSharing(t *testing.T) {
	lex := FromWords([]string{"app", "apple"})

	// "app" ends at an interior node on the path to "apple".
	node := lex.Root()
	for _, r := range "app" {
		node = node.Child(r)
		require.NotNil(t, node)
	}
	assert.True(t, node.Terminal())
	assert.False(t, lex.Root().Terminal())
	assert.True(t, lex.Contains("apple"))
	assert.False(t, lex.Contains("appl"))
}

func TestNonASCIIWords(t *testing.T) {
	lex := New()
	lex.Insert("Über")
	assert.True(t, lex.Contains("über"))
	assert.Equal(t, 1, lex.WordCount())
}

func TestLoadMissingFile(t *testing.T) {
	lex, err := Load(filepath.Join(t.TempDir(), "no-such-list.txt"))
	assert.Nil(t, lex)

	var dictErr *DictionaryError
	require.True(t, errors.As(err, &dictErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	content := "Apple\napp1e\n\n  pear  \nPEAR\ndon't\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	lex, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, lex.WordCount())
	assert.True(t, lex.Contains("apple"))
	assert.True(t, lex.Contains("pear"))
	assert.False(t, lex.Contains("app1e"))
}

func TestLoadReaderEmpty(t *testing.T) {
	lex, err := LoadReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, lex.WordCount())
}
