package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestLoadCachesByPath(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "words.txt")
	is.NoErr(os.WriteFile(path, []byte("apple\npear\n"), 0644))

	first, err := Load(path)
	is.NoErr(err)
	is.Equal(first.WordCount(), 2)

	// Rewrite the file; the cached tree must still be served.
	is.NoErr(os.WriteFile(path, []byte("plum\n"), 0644))
	second, err := Load(path)
	is.NoErr(err)
	is.True(first == second)

	Evict(path)
	third, err := Load(path)
	is.NoErr(err)
	is.Equal(third.WordCount(), 1)
}

func TestLoadMissingPath(t *testing.T) {
	is := is.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	is.True(err != nil)
}
