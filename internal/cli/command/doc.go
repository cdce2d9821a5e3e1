// Package command defines the tankmate-cli commands.
//
// It uses urfave/cli/v2 for parsing and supports both single-command mode
// and an interactive REPL that reuses one Runtime across lines.
package command
