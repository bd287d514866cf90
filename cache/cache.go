package cache

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/spelledout/sbs/lexicon"
)

// A built lexicon is large relative to any single query, so when sbs solves
// repeatedly (shell, daemon) we keep one index per dictionary path and
// never re-scan the raw list.

type cache struct {
	sync.Mutex
	lexica map[string]*lexicon.Lexicon
}

var global = &cache{lexica: make(map[string]*lexicon.Lexicon)}

func (c *cache) get(path string) (*lexicon.Lexicon, error) {
	c.Lock()
	defer c.Unlock()
	if lex, ok := c.lexica[path]; ok {
		log.Debug().Str("path", path).Msg("lexicon cache hit")
		return lex, nil
	}
	log.Debug().Str("path", path).Msg("loading lexicon into cache")
	lex, err := lexicon.Load(path)
	if err != nil {
		return nil, err
	}
	c.lexica[path] = lex
	return lex, nil
}

// Load returns the lexicon for path, building it on first use. The cached
// tree is read-only; callers must not insert into it.
func Load(path string) (*lexicon.Lexicon, error) {
	return global.get(path)
}

// Evict drops the cached lexicon for path, forcing a rebuild on next Load.
func Evict(path string) {
	global.Lock()
	defer global.Unlock()
	delete(global.lexica, path)
}
