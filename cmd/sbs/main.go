package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/spelledout/sbs/cache"
	"github.com/spelledout/sbs/config"
	"github.com/spelledout/sbs/shell"
	"github.com/spelledout/sbs/solver"
	"github.com/spelledout/sbs/validator"
)

var GitVersion string

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func printAbout() {
	fmt.Println("sbs: spelling bee solver")
	fmt.Println("├─ version:  " + version())
	fmt.Println("├─ licence:  MIT https://opensource.org/licenses/MIT")
	fmt.Println("└─ usage:    sbs --help")
}

func version() string {
	if GitVersion != "" {
		return GitVersion
	}
	return "dev"
}

func main() {
	var (
		letters       = pflag.StringP("letters", "l", "", "the allowed-letter set")
		present       = pflag.StringP("present", "p", "", "the required letters (must appear in every answer)")
		configPath    = pflag.StringP("config", "c", "", "path to a JSON/YAML config file")
		dictionary    = pflag.StringP("dictionary", "d", "", "path to the newline-delimited word list")
		output        = pflag.StringP("output", "o", "", "write results to this file instead of stdout")
		format        = pflag.String("format", "", "output format: plain, json, markdown")
		minLength     = pflag.Int("minimal-word-length", 0, "minimum word length")
		maxLength     = pflag.Int("maximal-word-length", 0, "maximum word length (0 = unbounded)")
		repeats       = pflag.Int("repeats", 0, "cap per-letter repeats (0 = uncapped)")
		caseSensitive = pflag.Bool("case-sensitive", false, "uppercase letters are positional (start-only)")
		validatorName = pflag.String("validator", "", "validator: free-dictionary, merriam-webster, wordnik, custom")
		apiKey        = pflag.String("api-key", "", "API key for validators that require one")
		validatorURL  = pflag.String("validator-url", "", "custom validator URL (use with --validator custom)")
		interactive   = pflag.Bool("shell", false, "start an interactive shell")
		about         = pflag.Bool("about", false, "print version and licence information")
		debug         = pflag.Bool("debug", false, "enable debug logging")
	)
	pflag.Parse()

	if *about {
		printAbout()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	setupLogging(*debug || cfg.Debug)

	// Flags beat config file values, but only when actually given.
	applyIfChanged := map[string]func(){
		"letters":             func() { cfg.Letters = *letters },
		"present":             func() { cfg.Present = *present },
		"dictionary":          func() { cfg.Dictionary = *dictionary },
		"output":              func() { cfg.Output = *output },
		"format":              func() { cfg.Format = *format },
		"minimal-word-length": func() { cfg.MinWordLength = *minLength },
		"maximal-word-length": func() { cfg.MaxWordLength = *maxLength },
		"repeats":             func() { cfg.Repeats = *repeats },
		"case-sensitive":      func() { cfg.CaseSensitive = *caseSensitive },
		"validator":           func() { cfg.Validator = *validatorName },
		"api-key":             func() { cfg.APIKey = *apiKey },
		"validator-url":       func() { cfg.ValidatorURL = *validatorURL },
	}
	pflag.Visit(func(f *pflag.Flag) {
		if apply, ok := applyIfChanged[f.Name]; ok {
			apply()
		}
	})

	if cfg.Format != "plain" && cfg.Format != "json" && cfg.Format != "markdown" {
		fmt.Fprintf(os.Stderr, "Error: unsupported format %q. Use plain, json, or markdown.\n", cfg.Format)
		os.Exit(1)
	}

	lex, err := cache.Load(cfg.Dictionary)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Dictionary error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		sc := shell.NewShellController(cfg, lex)
		go sc.Loop(sig)
		<-sig
		return
	}

	results, err := solver.Solve(lex, cfg.Query())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	sorted := results.Sorted()

	if cfg.Validator != "" {
		kind, err := validator.ParseKind(cfg.Validator)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		v, err := validator.New(kind, cfg.APIKey, cfg.ValidatorURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Validator error: %v\n", err)
			os.Exit(1)
		}
		summary, err := validator.ValidateWords(context.Background(), v, sorted)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Validation error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Generated %d candidates, %d validated by %s.\n",
			summary.Candidates, summary.Validated, kind.DisplayName())
		writeOutput(formatEntries(summary.Entries, cfg.Format), cfg.Output)
		return
	}

	fmt.Fprintf(os.Stderr, "Generated %d words.\n", len(sorted))
	writeOutput(formatWords(sorted, cfg.Format), cfg.Output)
}

func writeOutput(content, path string) {
	if path == "" {
		fmt.Println(content)
		return
	}
	if err := os.WriteFile(path, []byte(content+"\n"), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Write error: %v\n", err)
		os.Exit(1)
	}
}
