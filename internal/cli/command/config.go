package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tankmate-go/internal/cli/config"
	"github.com/yndnr/tankmate-go/internal/core/domain"
)

// ConfigCommand returns the config command group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect and change CLI settings",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the effective configuration",
				Action: func(c *cli.Context) error {
					rt := RuntimeFrom(c)
					doc := config.AsMap(rt.Config())
					if store, ok := doc["store"].(map[string]any); ok {
						if _, set := store["encryption_key"]; set {
							store["encryption_key"] = "********"
						}
					}
					return rt.Print(configView{doc: doc})
				},
			},
			{
				Name:      "set",
				Usage:     "Write one setting to the config file",
				ArgsUsage: "<key> <value>",
				Action:    runConfigSet,
			},
			{
				Name:  "path",
				Usage: "Print the config file location",
				Action: func(c *cli.Context) error {
					rt := RuntimeFrom(c)
					fmt.Fprintln(rt.Out, rt.ConfigPath)
					return nil
				},
			},
			{
				Name:  "keys",
				Usage: "List the settable keys",
				Action: func(c *cli.Context) error {
					rt := RuntimeFrom(c)
					for _, k := range config.Keys() {
						fmt.Fprintln(rt.Out, k)
					}
					return nil
				},
			},
		},
	}
}

func runConfigSet(c *cli.Context) error {
	rt := RuntimeFrom(c)
	if c.NArg() != 2 {
		return domain.ErrMissingArgument.WithDetails("usage: config set <key> <value>")
	}
	key, value := c.Args().Get(0), c.Args().Get(1)
	if _, err := config.Set(rt.ConfigPath, key, value); err != nil {
		return err
	}
	if err := rt.Reload(); err != nil {
		return err
	}
	rt.Notice("Set %s in %s", key, rt.ConfigPath)
	if rt.opened && (key == "api.url" || key == "api.version" || strings.HasPrefix(key, "store.")) {
		rt.Notice("Restart the REPL for %s to take effect.", key)
	}
	return nil
}
