// Package puzzle generates new letter puzzles from a lexicon. A puzzle of
// size N is seeded by a pangram: a word whose distinct letters number
// exactly N, which guarantees the generated puzzle has at least one
// all-letters answer.
package puzzle

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/spelledout/sbs/lexicon"
)

// Puzzle is a generated letter set plus the letter every answer must use.
type Puzzle struct {
	Letters  string `json:"letters"`
	Required string `json:"present"`
}

// Generate draws a random puzzle with exactly size distinct letters from
// the lexicon's pangram seeds. It fails when the lexicon contains no word
// with that many distinct letters.
func Generate(lex *lexicon.Lexicon, size int) (*Puzzle, error) {
	if size < 2 {
		return nil, fmt.Errorf("puzzle size %d too small", size)
	}
	seeds := Seeds(lex, size)
	if len(seeds) == 0 {
		return nil, fmt.Errorf("no word in the lexicon has exactly %d distinct letters", size)
	}

	letters := seeds[frand.Intn(len(seeds))]
	runes := []rune(letters)
	required := runes[frand.Intn(len(runes))]

	log.Debug().Str("letters", letters).Str("required", string(required)).
		Int("seeds", len(seeds)).Msg("generated puzzle")
	return &Puzzle{Letters: letters, Required: string(required)}, nil
}

// Seeds returns every distinct-letter set of exactly the given size that
// appears as a lexicon word, each as a sorted string of its letters.
func Seeds(lex *lexicon.Lexicon, size int) []string {
	seen := make(map[string]bool)
	var seeds []string
	for _, word := range lex.Words() {
		set := distinctLetters(word)
		if len([]rune(set)) != size || seen[set] {
			continue
		}
		seen[set] = true
		seeds = append(seeds, set)
	}
	sort.Strings(seeds)
	return seeds
}

func distinctLetters(word string) string {
	seen := make(map[rune]bool)
	var letters []rune
	for _, r := range word {
		if !seen[r] {
			seen[r] = true
			letters = append(letters, r)
		}
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	return string(letters)
}
