// Package config is the configuration boundary for sbs. The solver and
// lexicon packages never read files or environment variables themselves;
// everything they consume arrives through a Config.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/spelledout/sbs/solver"
)

// Named defaults, supplied here at the boundary rather than hidden inside
// the search.
const (
	DefaultMinWordLength  = 4
	DefaultPuzzleSize     = 7
	DefaultDictionaryPath = "data/dictionary.txt"
	DefaultFormat         = "plain"
)

// ExternalDictionary identifies an external validation endpoint.
type ExternalDictionary struct {
	ID   string `mapstructure:"id" json:"id"`
	Name string `mapstructure:"name" json:"name"`
	API  string `mapstructure:"api" json:"api"`
}

// Config holds every field the tooling consumes. Field names follow the
// original kebab-case wire format so the same JSON/YAML config files keep
// working across implementations.
type Config struct {
	Letters       string `mapstructure:"letters" json:"letters,omitempty"`
	Present       string `mapstructure:"present" json:"present,omitempty"`
	Size          int    `mapstructure:"size" json:"size,omitempty"`
	MinWordLength int    `mapstructure:"minimal-word-length" json:"minimal-word-length,omitempty"`
	MaxWordLength int    `mapstructure:"maximal-word-length" json:"maximal-word-length,omitempty"`
	Repeats       int    `mapstructure:"repeats" json:"repeats,omitempty"`
	CaseSensitive bool   `mapstructure:"case-sensitive" json:"case-sensitive,omitempty"`
	Dictionary    string `mapstructure:"dictionary" json:"dictionary,omitempty"`
	Output        string `mapstructure:"output" json:"output,omitempty"`
	Format        string `mapstructure:"format" json:"format,omitempty"`

	Validator    string `mapstructure:"validator" json:"validator,omitempty"`
	APIKey       string `mapstructure:"api-key" json:"api-key,omitempty"`
	ValidatorURL string `mapstructure:"validator-url" json:"validator-url,omitempty"`

	ExternalDictionaries []ExternalDictionary `mapstructure:"external_dictionaries" json:"external_dictionaries,omitempty"`

	Debug bool `mapstructure:"debug" json:"debug,omitempty"`
}

// Load builds a Config from defaults, an optional config file (JSON or
// YAML, by extension), and SBS_-prefixed environment variables, in
// ascending precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("SBS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("size", DefaultPuzzleSize)
	v.SetDefault("minimal-word-length", DefaultMinWordLength)
	v.SetDefault("dictionary", DefaultDictionaryPath)
	v.SetDefault("format", DefaultFormat)
	// Zero-value defaults so AutomaticEnv picks these keys up during
	// Unmarshal; viper only considers keys it has seen.
	v.SetDefault("letters", "")
	v.SetDefault("present", "")
	v.SetDefault("maximal-word-length", 0)
	v.SetDefault("repeats", 0)
	v.SetDefault("case-sensitive", false)
	v.SetDefault("output", "")
	v.SetDefault("validator", "")
	v.SetDefault("api-key", "")
	v.SetDefault("validator-url", "")
	v.SetDefault("debug", false)
}

// Query maps the solve-relevant fields onto a solver.Query.
func (c *Config) Query() solver.Query {
	return solver.Query{
		Letters:       c.Letters,
		Present:       c.Present,
		MinLength:     c.MinWordLength,
		MaxLength:     c.MaxWordLength,
		Repeats:       c.Repeats,
		CaseSensitive: c.CaseSensitive,
	}
}
