// Package solver runs a constrained depth-first search over a lexicon:
// only allowed letters may be used, every required letter must appear,
// and the word length must fall within the query bounds.
package solver

import (
	"errors"
	"sort"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/spelledout/sbs/lexicon"
)

// DefaultMinLength is the minimum word length used when a query does not
// set one. Spelling-bee puzzles conventionally reject anything shorter.
const DefaultMinLength = 4

var (
	// ErrNoLetters is returned when a query has no allowed-letter set.
	ErrNoLetters = errors.New("no letters provided")
	// ErrNoPresent is returned when a query has no required-letter set.
	ErrNoPresent = errors.New("no required letter provided")
	// ErrMultipleStartLetters is returned in case-sensitive mode when more
	// than one required letter is marked as the starting letter.
	ErrMultipleStartLetters = errors.New("at most one uppercase required letter allowed in case-sensitive mode")
)

// Query holds the constraints for a single solve. It is immutable for the
// duration of the search; one lexicon may serve any number of queries.
type Query struct {
	// Letters is the allowed-letter set. Duplicates collapse.
	Letters string
	// Present is the required-letter set; each letter must appear at least
	// once in every answer.
	Present string
	// MinLength is the inclusive minimum word length. Zero or negative
	// means DefaultMinLength.
	MinLength int
	// MaxLength is the inclusive maximum word length. Zero means unbounded.
	MaxLength int
	// Repeats caps how many times any single letter may be used in one
	// word. Zero means uncapped.
	Repeats int
	// CaseSensitive switches on positional letters: an uppercase letter in
	// Letters may only start a word, and an uppercase letter in Present
	// (at most one) must start every answer.
	CaseSensitive bool
}

// WordSet is a set of distinct answer words, unordered.
type WordSet map[string]struct{}

func (ws WordSet) Add(word string) {
	ws[word] = struct{}{}
}

func (ws WordSet) Contains(word string) bool {
	_, ok := ws[word]
	return ok
}

func (ws WordSet) Len() int {
	return len(ws)
}

// Words returns the set's members in no particular order.
func (ws WordSet) Words() []string {
	return lo.Keys(ws)
}

// Sorted returns the set's members in lexicographic order. Ordering is a
// presentation concern; the search itself never ranks.
func (ws WordSet) Sorted() []string {
	words := lo.Keys(ws)
	sort.Strings(words)
	return words
}

// search carries the constraint sets and the backtracking state. Letter
// usage counts are maintained incrementally on the way down and undone on
// the way back up, the same way a rack is consumed and restored.
type search struct {
	allowed       map[rune]bool
	anywhere      map[rune]bool
	required      map[rune]bool
	requiredStart rune // 0 when unset
	caseSensitive bool
	minLen        int
	maxLen        int
	maxRepeats    int

	counts  map[rune]int
	prefix  []rune
	results WordSet
}

// Solve returns every lexicon word satisfying the query. An empty set is a
// normal outcome; the only errors are missing constraints.
func Solve(lex *lexicon.Lexicon, q Query) (WordSet, error) {
	if q.Letters == "" {
		return nil, ErrNoLetters
	}
	if q.Present == "" {
		return nil, ErrNoPresent
	}

	st := &search{
		allowed:       make(map[rune]bool),
		anywhere:      make(map[rune]bool),
		required:      make(map[rune]bool),
		caseSensitive: q.CaseSensitive,
		minLen:        q.MinLength,
		maxLen:        q.MaxLength,
		maxRepeats:    q.Repeats,
		counts:        make(map[rune]int),
		results:       make(WordSet),
	}
	if st.minLen <= 0 {
		st.minLen = DefaultMinLength
	}

	if q.CaseSensitive {
		for _, r := range q.Letters {
			lower := unicode.ToLower(r)
			st.allowed[lower] = true
			if !unicode.IsUpper(r) {
				st.anywhere[lower] = true
			}
		}
		for _, r := range q.Present {
			lower := unicode.ToLower(r)
			if unicode.IsUpper(r) {
				if st.requiredStart != 0 {
					return nil, ErrMultipleStartLetters
				}
				st.requiredStart = lower
			}
			st.required[lower] = true
		}
	} else {
		for _, r := range strings.ToLower(q.Letters) {
			st.allowed[r] = true
			st.anywhere[r] = true
		}
		for _, r := range strings.ToLower(q.Present) {
			st.required[r] = true
		}
	}

	st.descend(lex.Root())
	return st.results, nil
}

func (st *search) descend(node *lexicon.Node) {
	depth := len(st.prefix)
	if st.maxLen > 0 && depth > st.maxLen {
		return
	}

	if node.Terminal() && depth >= st.minLen && st.satisfied() {
		st.results.Add(string(st.prefix))
	}

	for r, child := range node.Children() {
		// Start-only letters are valid children only at the first position.
		if st.caseSensitive && depth > 0 {
			if !st.anywhere[r] {
				continue
			}
		} else if !st.allowed[r] {
			continue
		}
		if st.maxRepeats > 0 && st.counts[r] >= st.maxRepeats {
			continue
		}

		st.counts[r]++
		st.prefix = append(st.prefix, r)
		st.descend(child)
		st.prefix = st.prefix[:depth]
		st.counts[r]--
	}
}

func (st *search) satisfied() bool {
	for r := range st.required {
		if st.counts[r] == 0 {
			return false
		}
	}
	if st.requiredStart != 0 && st.prefix[0] != st.requiredStart {
		return false
	}
	return true
}
