package repl

import (
	"sort"
	"strings"
)

var builtins = []string{"complete", "exit", "history", "quit"}

// Completer suggests commands by prefix.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over commands plus the REPL builtins.
func NewCompleter(commands []string) *Completer {
	all := append(append([]string(nil), commands...), builtins...)
	sort.Strings(all)
	return &Completer{commands: all}
}

// Complete returns the commands starting with prefix.
func (c *Completer) Complete(prefix string) []string {
	var out []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			out = append(out, cmd)
		}
	}
	return out
}
