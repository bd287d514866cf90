package validator

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const freeDictBody = `[
	{
		"word": "ample",
		"meanings": [
			{
				"partOfSpeech": "adjective",
				"definitions": [{"definition": "Large; of great size."}]
			}
		]
	}
]`

func newFreeDictServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ample", "/test":
			fmt.Fprint(w, freeDictBody)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"free-dictionary", "merriam-webster", "wordnik", "custom"} {
		kind, err := ParseKind(s)
		require.NoError(t, err)
		assert.Equal(t, Kind(s), kind)
	}
	_, err := ParseKind("urban")
	assert.Error(t, err)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Free Dictionary", FreeDictionary.DisplayName())
	assert.Equal(t, "Merriam-Webster", MerriamWebster.DisplayName())
	assert.Equal(t, "Wordnik", Wordnik.DisplayName())
	assert.Equal(t, "Custom", Custom.DisplayName())
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(MerriamWebster, "", "")
	assert.Error(t, err)
	_, err = New(Wordnik, "", "")
	assert.Error(t, err)
	_, err = New(Custom, "", "")
	assert.Error(t, err)

	v, err := New(MerriamWebster, "test-key", "")
	require.NoError(t, err)
	assert.Equal(t, "Merriam-Webster", v.Name())

	v, err = New(FreeDictionary, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Free Dictionary", v.Name())
}

func TestFreeDictionaryLookup(t *testing.T) {
	srv := newFreeDictServer(t)
	v := &freeDictionary{client: srv.Client(), baseURL: srv.URL}

	entry, err := v.Lookup(context.Background(), "ample")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "ample", entry.Word)
	assert.Equal(t, "Large; of great size.", entry.Definition)

	entry, err = v.Lookup(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, freeDictBody)
	}))
	defer srv.Close()

	v := &freeDictionary{client: srv.Client(), baseURL: srv.URL}
	entry, err := v.Lookup(context.Background(), "ample")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int32(3), calls.Load())
}

func TestMerriamWebsterParse(t *testing.T) {
	v := &merriamWebster{client: http.DefaultClient, apiKey: "k"}

	// MW returns bare suggestion strings for unknown words.
	entry, err := v.parse([]byte(`["ampule","amply"]`), "amplle")
	require.NoError(t, err)
	assert.Nil(t, entry)

	entry, err = v.parse([]byte(`[{"shortdef":["large in size"]}]`), "ample")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "large in size", entry.Definition)
}

func TestCustomProbe(t *testing.T) {
	good := newFreeDictServer(t)
	v := NewCustom(good.URL + "/")
	v.client = good.Client()
	ok, err := v.Probe(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"hello":"world"}`)
	}))
	defer bad.Close()
	v = NewCustom(bad.URL)
	v.client = bad.Client()
	ok, err = v.Probe(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateWords(t *testing.T) {
	srv := newFreeDictServer(t)
	v := &freeDictionary{client: srv.Client(), baseURL: srv.URL}

	summary, err := ValidateWords(context.Background(), v, []string{"ample", "zzzz"})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Candidates)
	assert.Equal(t, 1, summary.Validated)
	require.Len(t, summary.Entries, 1)
	assert.Equal(t, "ample", summary.Entries[0].Word)
}
