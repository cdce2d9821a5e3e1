package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Executor runs one command line. args excludes the program name.
type Executor func(ctx context.Context, args []string) error

// Config configures a REPL.
type Config struct {
	In       io.Reader
	Out      io.Writer
	Prompt   func() string
	Exec     Executor
	Commands []string
	History  *History
}

// REPL is the read-eval-print loop.
type REPL struct {
	in        io.Reader
	out       io.Writer
	prompt    func() string
	exec      Executor
	completer *Completer
	history   *History
}

// New creates a REPL.
func New(cfg Config) *REPL {
	prompt := cfg.Prompt
	if prompt == nil {
		prompt = func() string { return "tankmate> " }
	}
	history := cfg.History
	if history == nil {
		history = NewHistory("", 0)
	}
	return &REPL{
		in:        cfg.In,
		out:       cfg.Out,
		prompt:    prompt,
		exec:      cfg.Exec,
		completer: NewCompleter(cfg.Commands),
		history:   history,
	}
}

// Run reads lines until exit, EOF or ctx is done. Command errors are
// printed and do not stop the loop.
func (r *REPL) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(r.in)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(r.out, r.prompt())
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		args, err := Split(line)
		if err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
			continue
		}
		r.history.Add(line)

		switch args[0] {
		case "exit", "quit":
			return nil
		case "history":
			for i, h := range r.history.Entries() {
				fmt.Fprintf(r.out, "%4d  %s\n", i+1, h)
			}
			continue
		case "complete":
			prefix := strings.TrimSpace(strings.TrimPrefix(line, "complete"))
			for _, c := range r.completer.Complete(prefix) {
				fmt.Fprintln(r.out, c)
			}
			continue
		}

		if err := r.exec(ctx, args); err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
		}
	}
}

var errUnterminatedQuote = errors.New("unterminated quote")

// Split breaks a line into words, honouring single and double quotes and
// backslash escapes outside single quotes.
func Split(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				args = append(args, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 || escaped {
		return nil, errUnterminatedQuote
	}
	if inWord {
		args = append(args, cur.String())
	}
	return args, nil
}
