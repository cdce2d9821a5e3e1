// Package repl runs tankmate-cli commands interactively.
//
// Each input line is split like a shell would (quotes and backslash
// escapes) and handed to an executor, normally the urfave/cli app.
// Lines containing credentials are kept out of the history file.
package repl
