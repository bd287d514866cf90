// Package lexicon builds an in-memory prefix tree from a flat word list.
// The tree is write-once: populate it with Insert (or one of the Load
// functions), then treat it as read-only. Concurrent traversals are safe
// as long as no Insert runs alongside them.
package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// normalize trims and lowercases by code point, so lexicons in non-ASCII
// alphabetic scripts fold the same way their source lists do. A fresh
// Caser per call: Casers carry state and are not safe to share across
// concurrent Contains calls.
func normalize(raw string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(raw))
}

// Node is a single position in the prefix tree. The runes on the path from
// the root to any terminal node spell exactly one normalized word. Each
// child is owned by its parent; subtrees are never shared.
type Node struct {
	children map[rune]*Node
	terminal bool
}

// Terminal reports whether a complete word ends at this node.
func (n *Node) Terminal() bool {
	return n.terminal
}

// Child returns the child node for r, or nil if no word continues with r.
func (n *Node) Child(r rune) *Node {
	return n.children[r]
}

// Children returns the child map for traversal. Callers must not mutate it.
func (n *Node) Children() map[rune]*Node {
	return n.children
}

// Lexicon owns the root of the prefix tree and tracks how many distinct
// words it holds.
type Lexicon struct {
	root  *Node
	words int
}

// New returns an empty lexicon. An index with zero words is valid, just
// unproductive.
func New() *Lexicon {
	return &Lexicon{root: &Node{}}
}

// FromWords builds a lexicon from a word slice. Mostly useful in tests and
// for the puzzle generator.
func FromWords(words []string) *Lexicon {
	lex := New()
	for _, w := range words {
		lex.Insert(w)
	}
	return lex
}

// Root exposes the root node for traversal by the solver.
func (lex *Lexicon) Root() *Node {
	return lex.root
}

// WordCount returns the number of distinct words inserted so far.
func (lex *Lexicon) WordCount() int {
	return lex.words
}

// Insert normalizes raw (trims surrounding whitespace, lowercases) and adds
// it to the tree. Words that are empty or contain a non-letter after
// normalization are dropped silently; word lists in the wild are noisy and
// a bad line should never abort a load. Inserting the same word twice is a
// no-op.
func (lex *Lexicon) Insert(raw string) {
	word := normalize(raw)
	if word == "" {
		return
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return
		}
	}
	node := lex.root
	for _, r := range word {
		child := node.children[r]
		if child == nil {
			if node.children == nil {
				node.children = make(map[rune]*Node)
			}
			child = &Node{}
			node.children[r] = child
		}
		node = child
	}
	if !node.terminal {
		node.terminal = true
		lex.words++
	}
}

// Contains reports whether word (after normalization) is in the lexicon.
func (lex *Lexicon) Contains(word string) bool {
	node := lex.root
	for _, r := range normalize(word) {
		node = node.Child(r)
		if node == nil {
			return false
		}
	}
	return node.terminal
}

// Words returns every word in the lexicon, in no particular order.
func (lex *Lexicon) Words() []string {
	words := make([]string, 0, lex.words)
	var walk func(n *Node, prefix []rune)
	walk = func(n *Node, prefix []rune) {
		if n.terminal {
			words = append(words, string(prefix))
		}
		for r, child := range n.children {
			walk(child, append(prefix, r))
		}
	}
	walk(lex.root, nil)
	return words
}

// DictionaryError means the word-list source could not be opened or read.
// A lexicon that failed to build must not be queried.
type DictionaryError struct {
	Path string
	Err  error
}

func (e *DictionaryError) Error() string {
	return fmt.Sprintf("dictionary %s: %v", e.Path, e.Err)
}

func (e *DictionaryError) Unwrap() error {
	return e.Err
}

// Load builds a lexicon from a newline-delimited word-list file, one word
// per line. A missing or unreadable file is a *DictionaryError.
func Load(path string) (*Lexicon, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &DictionaryError{Path: path, Err: err}
	}
	defer file.Close()

	lex, err := LoadReader(file)
	if err != nil {
		return nil, &DictionaryError{Path: path, Err: err}
	}
	log.Debug().Str("path", path).Int("words", lex.words).Msg("loaded dictionary")
	return lex, nil
}

// LoadReader builds a lexicon from a newline-delimited stream. Read
// failures propagate unchanged; malformed lines are skipped by Insert.
func LoadReader(r io.Reader) (*Lexicon, error) {
	lex := New()
	scanner := bufio.NewScanner(r)
	lines := 0
	for scanner.Scan() {
		lex.Insert(scanner.Text())
		lines++
		if lines%100000 == 0 {
			log.Debug().Int("lines", lines).Msg("loading...")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lex, nil
}
