// Package shell is the interactive front end: set constraints, solve, and
// generate puzzles against one loaded lexicon without re-reading the word
// list between queries.
package shell

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/spelledout/sbs/config"
	"github.com/spelledout/sbs/lexicon"
	"github.com/spelledout/sbs/puzzle"
	"github.com/spelledout/sbs/solver"
)

type ShellController struct {
	l     *readline.Instance
	lex   *lexicon.Lexicon
	cfg   *config.Config
	query solver.Query
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func NewShellController(cfg *config.Config, lex *lexicon.Lexicon) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[33msbs>\033[0m ",
		HistoryFile:     "/tmp/sbs-readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	return &ShellController{
		l:   l,
		lex: lex,
		cfg: cfg,
		query: solver.Query{
			Letters:       cfg.Letters,
			Present:       cfg.Present,
			MinLength:     cfg.MinWordLength,
			MaxLength:     cfg.MaxWordLength,
			Repeats:       cfg.Repeats,
			CaseSensitive: cfg.CaseSensitive,
		},
	}
}

func (sc *ShellController) showMessage(msg string) {
	io.WriteString(sc.l.Stderr(), msg)
	io.WriteString(sc.l.Stderr(), "\n")
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("error: " + err.Error())
}

// errExit signals a clean exit out of the command switch.
var errExit = fmt.Errorf("exit")

func (sc *ShellController) handle(line string) error {
	fields, err := shellquote.Split(line)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "exit", "quit":
		return errExit

	case "help":
		sc.showMessage(helpText)

	case "letters":
		if len(fields) != 2 {
			return fmt.Errorf("usage: letters <allowed letters>")
		}
		sc.query.Letters = fields[1]

	case "present":
		if len(fields) != 2 {
			return fmt.Errorf("usage: present <required letters>")
		}
		sc.query.Present = fields[1]

	case "set":
		if len(fields) != 3 {
			return fmt.Errorf("usage: set min|max|repeats <n>")
		}
		n, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("not a number: %v", fields[2])
		}
		switch fields[1] {
		case "min":
			sc.query.MinLength = n
		case "max":
			sc.query.MaxLength = n
		case "repeats":
			sc.query.Repeats = n
		default:
			return fmt.Errorf("unknown setting %v", fields[1])
		}

	case "show":
		sc.showMessage(fmt.Sprintf(
			"letters=%v present=%v min=%v max=%v repeats=%v (%v words loaded)",
			sc.query.Letters, sc.query.Present, sc.query.MinLength,
			sc.query.MaxLength, sc.query.Repeats, sc.lex.WordCount()))

	case "solve":
		results, err := solver.Solve(sc.lex, sc.query)
		if err != nil {
			return err
		}
		for _, w := range results.Sorted() {
			sc.showMessage(w)
		}
		sc.showMessage(fmt.Sprintf("%d words", results.Len()))

	case "random":
		size := sc.cfg.Size
		if len(fields) == 2 {
			size, err = strconv.Atoi(fields[1])
			if err != nil {
				return fmt.Errorf("not a number: %v", fields[1])
			}
		}
		p, err := puzzle.Generate(sc.lex, size)
		if err != nil {
			return err
		}
		sc.query.Letters = p.Letters
		sc.query.Present = p.Required
		sc.showMessage(fmt.Sprintf("letters=%v present=%v", p.Letters, p.Required))

	default:
		return fmt.Errorf("unknown command %v; try help", fields[0])
	}
	return nil
}

const helpText = `commands:
  letters <chars>     set the allowed letters
  present <chars>     set the required letters
  set min <n>         set the minimum word length
  set max <n>         set the maximum word length (0 = unbounded)
  set repeats <n>     cap per-letter repeats (0 = uncapped)
  random [size]       generate a puzzle from the loaded lexicon
  show                print the current constraints
  solve               run the search
  exit                leave the shell`

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}

		err = sc.handle(strings.TrimSpace(line))
		if err == errExit {
			sig <- syscall.SIGINT
			break
		}
		if err != nil {
			sc.showError(err)
		}
	}
	log.Debug().Msg("exiting readline loop...")
}
