package command

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tankmate-go/internal/infra/buildinfo"
)

const runtimeKey = "runtime"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:                 "tankmate-cli",
		Usage:                "Manage aquariums, water parameters and tank events",
		Version:              buildinfo.String(),
		Flags:                globalFlags(),
		EnableBashCompletion: true,
		Metadata:             map[string]any{},
		Commands: []*cli.Command{
			LoginCommand(),
			RegisterCommand(),
			LogoutCommand(),
			WhoamiCommand(),
			TankCommand(),
			ParamCommand(),
			EventCommand(),
			InhabitantCommand(),
			ConfigCommand(),
			PrefsCommand(),
			SystemCommand(),
			ReplCommand(),
		},
		Before: before,
		After:  after,
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Configuration file",
			EnvVars: []string{"TANKMATE_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "api-url",
			Aliases: []string{"u"},
			Usage:   "Tankmate API origin (e.g. https://tankmate.example.com)",
			EnvVars: []string{"TANKMATE_API_URL"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			EnvVars: []string{"TANKMATE_OUTPUT"},
		},
		&cli.BoolFlag{
			Name:  "no-headers",
			Usage: "Omit table headers",
		},
		&cli.StringFlag{
			Name:    "data-dir",
			Usage:   "Local session store directory",
			EnvVars: []string{"TANKMATE_STORE_DIR"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level: debug, info, warn, error",
			EnvVars: []string{"TANKMATE_LOG_LEVEL"},
		},
		&cli.BoolFlag{
			Name:    "debug",
			Usage:   "Log every request",
			EnvVars: []string{"TANKMATE_FEATURES_DEBUG"},
		},
	}
}

// GlobalFlags holds the flags available to all commands.
type GlobalFlags struct {
	Config    string
	APIURL    string
	Output    string
	NoHeaders bool
	DataDir   string
	LogLevel  string
	Debug     bool

	set map[string]bool
}

// ParseGlobalFlags extracts global flags from c.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	f := &GlobalFlags{
		Config:    c.String("config"),
		APIURL:    c.String("api-url"),
		Output:    c.String("output"),
		NoHeaders: c.Bool("no-headers"),
		DataDir:   c.String("data-dir"),
		LogLevel:  c.String("log-level"),
		Debug:     c.Bool("debug"),
		set:       map[string]bool{},
	}
	for _, name := range []string{"api-url", "output", "data-dir", "log-level", "debug"} {
		f.set[name] = c.IsSet(name)
	}
	return f
}

// Overrides maps the flags given on the command line to config keys.
func (f *GlobalFlags) Overrides() map[string]any {
	out := map[string]any{}
	if f.set["api-url"] {
		out["api.url"] = f.APIURL
	}
	if f.set["output"] {
		out["output"] = f.Output
	}
	if f.set["data-dir"] {
		out["store.dir"] = f.DataDir
	}
	if f.set["log-level"] {
		out["log.level"] = f.LogLevel
	}
	if f.set["debug"] {
		out["features.debug"] = f.Debug
	}
	return out
}

// before creates the Runtime, or reuses it when a REPL line re-enters the app.
func before(c *cli.Context) error {
	if rt, ok := c.App.Metadata[runtimeKey].(*Runtime); ok {
		return rt.enter(c)
	}
	rt, err := NewRuntime(c)
	if err != nil {
		return err
	}
	c.App.Metadata[runtimeKey] = rt
	return rt.enter(c)
}

func after(c *cli.Context) error {
	rt, ok := c.App.Metadata[runtimeKey].(*Runtime)
	if !ok {
		return nil
	}
	if rt.leave() {
		delete(c.App.Metadata, runtimeKey)
		return rt.Close(c.Context)
	}
	return nil
}

// RuntimeFrom returns the Runtime created by the app's Before hook.
func RuntimeFrom(c *cli.Context) *Runtime {
	rt, _ := c.App.Metadata[runtimeKey].(*Runtime)
	return rt
}

// Ensure returns the Runtime with storage, API client and services opened.
func Ensure(c *cli.Context) (*Runtime, error) {
	rt := RuntimeFrom(c)
	if rt == nil {
		return nil, fmt.Errorf("command: runtime not initialised")
	}
	if err := rt.Open(c.Context); err != nil {
		return nil, err
	}
	return rt, nil
}

// PrintError writes err to w the way commands report failures.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %s\n", FormatError(err))
}
