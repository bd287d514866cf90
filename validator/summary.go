package validator

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// maxInFlight bounds concurrent lookups so a large result set does not
// hammer the external API.
const maxInFlight = 8

// Summary reports how many solver candidates the external dictionary
// confirmed, with the confirmed entries in word order.
type Summary struct {
	Candidates int         `json:"candidates"`
	Validated  int         `json:"validated"`
	Entries    []WordEntry `json:"entries"`
}

// ValidateWords looks up every word concurrently and keeps the ones the
// dictionary knows. A word the dictionary rejects is dropped quietly; a
// lookup failure fails the whole batch, since a partial verdict would be
// indistinguishable from a rejection.
func ValidateWords(ctx context.Context, v Validator, words []string) (*Summary, error) {
	entries := make([]*WordEntry, len(words))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxInFlight)
	for i, word := range words {
		i, word := i, word
		g.Go(func() error {
			entry, err := v.Lookup(ctx, word)
			if err != nil {
				return err
			}
			entries[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{Candidates: len(words)}
	for _, entry := range entries {
		if entry != nil {
			summary.Entries = append(summary.Entries, *entry)
		}
	}
	summary.Validated = len(summary.Entries)
	sort.Slice(summary.Entries, func(i, j int) bool {
		return summary.Entries[i].Word < summary.Entries[j].Word
	})
	log.Debug().
		Int("candidates", summary.Candidates).
		Int("validated", summary.Validated).
		Str("validator", v.Name()).
		Msg("validated words")
	return summary, nil
}
