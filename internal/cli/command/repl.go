package command

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tankmate-go/internal/cli/config"
	"github.com/yndnr/tankmate-go/internal/cli/repl"
	"github.com/yndnr/tankmate-go/internal/infra/confloader"
	"github.com/yndnr/tankmate-go/internal/infra/shutdown"
)

const historySize = 500

// ReplCommand returns the interactive shell command.
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Start an interactive shell",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-watch", Usage: "Do not reload the config file when it changes"},
		},
		Action: runRepl,
	}
}

func runRepl(c *cli.Context) error {
	rt, err := Ensure(c)
	if err != nil {
		return err
	}
	if _, nested := c.App.Metadata["repl"]; nested {
		rt.Notice("Already in the interactive shell")
		return nil
	}
	c.App.Metadata["repl"] = true
	defer delete(c.App.Metadata, "repl")

	ctx, stop := shutdown.SignalContext(c.Context)
	defer stop()

	if !c.Bool("no-watch") {
		w, err := confloader.NewWatcher(rt.ConfigPath, rt.Log)
		if err != nil {
			rt.Log.Warn("config watch disabled", "path", rt.ConfigPath, "error", err)
		} else {
			w.OnChange(func(string) {
				if err := rt.Reload(); err != nil {
					rt.Log.Warn("config reload failed", "path", rt.ConfigPath, "error", err)
				}
			})
			w.Start()
			defer w.Stop()
		}
	}

	history := repl.NewHistory(filepath.Join(config.HomeDir(), "history"), historySize)
	if err := history.Load(); err != nil {
		rt.Log.Debug("history not loaded", "error", err)
	}
	defer func() {
		if err := history.Save(); err != nil {
			rt.Log.Warn("history not saved", "error", err)
		}
	}()

	rt.Notice("Tankmate interactive shell. Type 'help' for commands, 'exit' to quit.")
	shell := repl.New(repl.Config{
		In:       rt.Input(),
		Out:      rt.Out,
		Prompt:   func() string { return replPrompt(rt) },
		Commands: commandNames(c.App.Commands),
		History:  history,
		Exec: func(ctx context.Context, args []string) error {
			if err := c.App.RunContext(ctx, append([]string{c.App.Name}, args...)); err != nil {
				PrintError(rt.Err, err)
			}
			return nil
		},
	})
	return shell.Run(ctx)
}

func replPrompt(rt *Runtime) string {
	if u := rt.State().User; u != nil && u.Email != "" {
		return "tankmate(" + u.Email + ")> "
	}
	return "tankmate> "
}

// commandNames lists every command path, e.g. "tank list".
func commandNames(cmds []*cli.Command) []string {
	var out []string
	var walk func(prefix string, cmds []*cli.Command)
	walk = func(prefix string, cmds []*cli.Command) {
		for _, cmd := range cmds {
			if cmd.Hidden {
				continue
			}
			name := prefix + cmd.Name
			out = append(out, name)
			walk(name+" ", cmd.Subcommands)
		}
	}
	walk("", cmds)
	sort.Strings(out)
	return out
}
