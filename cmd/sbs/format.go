package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/spelledout/sbs/validator"
)

func formatWords(words []string, format string) string {
	switch format {
	case "json":
		out, _ := json.MarshalIndent(words, "", "  ")
		return string(out)
	case "markdown":
		return strings.Join(lo.Map(words, func(w string, _ int) string {
			return fmt.Sprintf("**%s**", w)
		}), "\n\n")
	default:
		return strings.Join(words, "\n")
	}
}

func formatEntries(entries []validator.WordEntry, format string) string {
	switch format {
	case "json":
		out, _ := json.MarshalIndent(entries, "", "  ")
		return string(out)
	case "markdown":
		return strings.Join(lo.Map(entries, func(e validator.WordEntry, _ int) string {
			return fmt.Sprintf("**%s**\n%s", e.Word, e.Definition)
		}), "\n\n")
	default:
		return strings.Join(lo.Map(entries, func(e validator.WordEntry, _ int) string {
			return e.Word + "\t" + e.Definition
		}), "\n")
	}
}
