package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spelledout/sbs/validator"
)

func TestFormatWordsPlain(t *testing.T) {
	assert.Equal(t, "apple\nbat", formatWords([]string{"apple", "bat"}, "plain"))
}

func TestFormatWordsJSON(t *testing.T) {
	out := formatWords([]string{"apple", "bat"}, "json")
	var parsed []string
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, []string{"apple", "bat"}, parsed)
}

func TestFormatWordsMarkdown(t *testing.T) {
	assert.Equal(t, "**apple**\n\n**bat**", formatWords([]string{"apple", "bat"}, "markdown"))
}

func TestFormatEntries(t *testing.T) {
	entries := []validator.WordEntry{
		{Word: "apple", Definition: "A fruit", URL: "https://example.com/apple"},
	}

	assert.Equal(t, "apple\tA fruit", formatEntries(entries, "plain"))
	assert.Equal(t, "**apple**\nA fruit", formatEntries(entries, "markdown"))

	var parsed []validator.WordEntry
	require.NoError(t, json.Unmarshal([]byte(formatEntries(entries, "json")), &parsed))
	assert.Equal(t, entries, parsed)
}
