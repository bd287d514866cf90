package puzzle

import (
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/spelledout/sbs/lexicon"
)

func TestSeeds(t *testing.T) {
	is := is.New(t)
	lex := lexicon.FromWords([]string{"walrus", "lawsuit", "ample", "apple", "mall"})

	// walrus -> alrsuw (6); lawsuit -> ailstuw (7); ample -> aelmp (5);
	// apple -> aelp (4); mall -> alm (3).
	is.Equal(Seeds(lex, 6), []string{"alrsuw"})
	is.Equal(Seeds(lex, 7), []string{"ailstuw"})
	is.Equal(Seeds(lex, 5), []string{"aelmp"})
	is.Equal(len(Seeds(lex, 2)), 0)
}

func TestSeedsDeduplicate(t *testing.T) {
	is := is.New(t)
	// Anagrams share one letter set.
	lex := lexicon.FromWords([]string{"pale", "leap", "plea", "peal"})
	is.Equal(Seeds(lex, 4), []string{"aelp"})
}

func TestGenerate(t *testing.T) {
	is := is.New(t)
	lex := lexicon.FromWords([]string{"walrus", "ample", "mall"})

	p, err := Generate(lex, 6)
	is.NoErr(err)
	is.Equal(p.Letters, "alrsuw")
	is.True(strings.Contains(p.Letters, p.Required))
	is.Equal(len(p.Required), 1)
}

func TestGenerateNoSeed(t *testing.T) {
	is := is.New(t)
	lex := lexicon.FromWords([]string{"mall"})

	_, err := Generate(lex, 7)
	is.True(err != nil)

	_, err = Generate(lex, 1)
	is.True(err != nil)
}
