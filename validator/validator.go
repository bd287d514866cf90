// Package validator checks solver output against external dictionary APIs.
// It is strictly a post-filter: the solver produces correct results with
// this package entirely absent, and retry/timeout policy for the network
// calls lives here, not in the core.
package validator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/tidwall/gjson"
)

const (
	lookupTimeout = 10 * time.Second
	lookupRetries = 3
)

// WordEntry is a validated word with its definition and a reference URL.
type WordEntry struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	URL        string `json:"url"`
}

// Validator looks up a single word against an external dictionary. A nil
// entry with a nil error means the dictionary does not know the word.
type Validator interface {
	Name() string
	Lookup(ctx context.Context, word string) (*WordEntry, error)
}

// Kind selects one of the supported external dictionaries.
type Kind string

const (
	FreeDictionary Kind = "free-dictionary"
	MerriamWebster Kind = "merriam-webster"
	Wordnik        Kind = "wordnik"
	Custom         Kind = "custom"
)

// ParseKind parses the wire/CLI form of a validator kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case FreeDictionary, MerriamWebster, Wordnik, Custom:
		return Kind(s), nil
	}
	return "", fmt.Errorf(
		"unknown validator %q; valid options: free-dictionary, merriam-webster, wordnik, custom", s)
}

// DisplayName returns the human-readable name for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case FreeDictionary:
		return "Free Dictionary"
	case MerriamWebster:
		return "Merriam-Webster"
	case Wordnik:
		return "Wordnik"
	case Custom:
		return "Custom"
	}
	return string(k)
}

// New builds a validator of the given kind. Merriam-Webster and Wordnik
// need an API key; custom needs a base URL, which is probed for
// compatibility before use.
func New(kind Kind, apiKey, customURL string) (Validator, error) {
	switch kind {
	case FreeDictionary:
		return NewFreeDictionary(), nil
	case MerriamWebster:
		if apiKey == "" {
			return nil, fmt.Errorf("%s requires an API key", kind.DisplayName())
		}
		return &merriamWebster{client: newClient(), apiKey: apiKey}, nil
	case Wordnik:
		if apiKey == "" {
			return nil, fmt.Errorf("%s requires an API key", kind.DisplayName())
		}
		return &wordnik{client: newClient(), apiKey: apiKey}, nil
	case Custom:
		if customURL == "" {
			return nil, fmt.Errorf("custom validator requires a URL")
		}
		v := NewCustom(customURL)
		ok, err := v.Probe(context.Background())
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf(
				"custom URL %q does not look like a compatible dictionary API", customURL)
		}
		return v, nil
	}
	return nil, fmt.Errorf("unknown validator kind %q", kind)
}

func newClient() *http.Client {
	return &http.Client{Timeout: lookupTimeout}
}

// fetch GETs url with retry on transport errors and 5xx responses. The
// final status code is returned alongside the body so callers can treat
// 404 as "not found" rather than failure.
func fetch(ctx context.Context, client *http.Client, rawurl string) ([]byte, int, error) {
	var body []byte
	var status int
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			status = resp.StatusCode
			if status >= 500 {
				return fmt.Errorf("server returned status %d", status)
			}
			body, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Attempts(lookupRetries),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, status, err
	}
	return body, status, nil
}

// freeDictionary talks to api.dictionaryapi.dev (no key needed).
type freeDictionary struct {
	client  *http.Client
	baseURL string
}

// NewFreeDictionary returns the keyless Free Dictionary validator.
func NewFreeDictionary() Validator {
	return &freeDictionary{
		client:  newClient(),
		baseURL: "https://api.dictionaryapi.dev/api/v2/entries/en",
	}
}

func (v *freeDictionary) Name() string { return FreeDictionary.DisplayName() }

func (v *freeDictionary) Lookup(ctx context.Context, word string) (*WordEntry, error) {
	body, status, err := fetch(ctx, v.client, v.baseURL+"/"+url.PathEscape(word))
	if err != nil {
		return nil, fmt.Errorf("%s lookup %q: %w", v.Name(), word, err)
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%s lookup %q: status %d", v.Name(), word, status)
	}
	definition := gjson.GetBytes(body, "0.meanings.0.definitions.0.definition").String()
	if definition == "" {
		definition = "No definition available"
	}
	return &WordEntry{
		Word:       word,
		Definition: definition,
		URL:        "https://en.wiktionary.org/wiki/" + url.PathEscape(word),
	}, nil
}

type merriamWebster struct {
	client *http.Client
	apiKey string
}

func (v *merriamWebster) Name() string { return MerriamWebster.DisplayName() }

func (v *merriamWebster) Lookup(ctx context.Context, word string) (*WordEntry, error) {
	u := fmt.Sprintf(
		"https://dictionaryapi.com/api/v3/references/collegiate/json/%s?key=%s",
		url.PathEscape(word), url.QueryEscape(v.apiKey))
	body, status, err := fetch(ctx, v.client, u)
	if err != nil {
		return nil, fmt.Errorf("%s lookup %q: %w", v.Name(), word, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%s lookup %q: status %d", v.Name(), word, status)
	}
	return v.parse(body, word)
}

func (v *merriamWebster) parse(body []byte, word string) (*WordEntry, error) {
	// An unknown word comes back as an array of suggestion strings instead
	// of entry objects.
	first := gjson.GetBytes(body, "0")
	if !first.Exists() || first.Type == gjson.String {
		return nil, nil
	}
	definition := first.Get("shortdef.0").String()
	if definition == "" {
		definition = "No definition available"
	}
	return &WordEntry{
		Word:       word,
		Definition: definition,
		URL:        "https://www.merriam-webster.com/dictionary/" + url.PathEscape(word),
	}, nil
}

type wordnik struct {
	client *http.Client
	apiKey string
}

func (v *wordnik) Name() string { return Wordnik.DisplayName() }

func (v *wordnik) Lookup(ctx context.Context, word string) (*WordEntry, error) {
	u := fmt.Sprintf(
		"https://api.wordnik.com/v4/word.json/%s/definitions?limit=1&api_key=%s",
		url.PathEscape(word), url.QueryEscape(v.apiKey))
	body, status, err := fetch(ctx, v.client, u)
	if err != nil {
		return nil, fmt.Errorf("%s lookup %q: %w", v.Name(), word, err)
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%s lookup %q: status %d", v.Name(), word, status)
	}
	definition := gjson.GetBytes(body, "0.text").String()
	if definition == "" {
		return nil, nil
	}
	return &WordEntry{
		Word:       word,
		Definition: definition,
		URL:        "https://www.wordnik.com/words/" + url.PathEscape(word),
	}, nil
}

// CustomValidator hits a user-supplied endpoint that mirrors the Free
// Dictionary response shape.
type CustomValidator struct {
	client  *http.Client
	baseURL string
}

// NewCustom returns a validator for a Free-Dictionary-compatible endpoint.
func NewCustom(baseURL string) *CustomValidator {
	return &CustomValidator{
		client:  newClient(),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (v *CustomValidator) Name() string { return Custom.DisplayName() }

// Probe checks that the endpoint answers with a dictionary-shaped payload.
func (v *CustomValidator) Probe(ctx context.Context) (bool, error) {
	body, status, err := fetch(ctx, v.client, v.baseURL+"/test")
	if err != nil {
		return false, fmt.Errorf("probe %s: %w", v.baseURL, err)
	}
	if status != http.StatusOK {
		return false, nil
	}
	return gjson.GetBytes(body, "0.meanings").Exists(), nil
}

func (v *CustomValidator) Lookup(ctx context.Context, word string) (*WordEntry, error) {
	inner := &freeDictionary{client: v.client, baseURL: v.baseURL}
	entry, err := inner.Lookup(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("custom %w", err)
	}
	return entry, nil
}
