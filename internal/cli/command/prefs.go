package command

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tankmate-go/internal/core/appctx"
	"github.com/yndnr/tankmate-go/internal/core/domain"
)

// PrefsCommand returns the UI preference command group. Preferences are
// stored with the session and shared with other Tankmate clients using the
// same store.
func PrefsCommand() *cli.Command {
	return &cli.Command{
		Name:    "prefs",
		Aliases: []string{"preferences"},
		Usage:   "Show or change UI preferences",
		Action:  runPrefsShow,
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show preferences",
				Action: runPrefsShow,
			},
			{
				Name:      "theme",
				Usage:     "Set the theme, or toggle it when no value is given",
				ArgsUsage: "[light|dark]",
				Action:    runPrefsTheme,
			},
			{
				Name:      "sidebar",
				Usage:     "Open or close the sidebar, or toggle it when no value is given",
				ArgsUsage: "[open|closed]",
				Action:    runPrefsSidebar,
			},
		},
	}
}

func runPrefsShow(c *cli.Context) error {
	rt, err := Ensure(c)
	if err != nil {
		return err
	}
	return rt.Print(prefsOf(rt.State()))
}

func runPrefsTheme(c *cli.Context) error {
	rt, err := Ensure(c)
	if err != nil {
		return err
	}
	st := rt.State()
	if arg := c.Args().First(); arg != "" {
		theme, err := appctx.ParseTheme(arg)
		if err != nil {
			return err
		}
		st.Theme = theme
	} else {
		st.ToggleTheme()
	}
	return savePrefs(c, rt, st)
}

func runPrefsSidebar(c *cli.Context) error {
	rt, err := Ensure(c)
	if err != nil {
		return err
	}
	st := rt.State()
	switch arg := strings.ToLower(c.Args().First()); arg {
	case "":
		st.ToggleSidebar()
	case "open", "on", "true":
		st.SidebarOpen = true
	case "closed", "close", "off", "false":
		st.SidebarOpen = false
	default:
		return domain.ErrInvalidArgument.WithDetails("sidebar must be open or closed, got " + arg)
	}
	return savePrefs(c, rt, st)
}

func savePrefs(c *cli.Context, rt *Runtime, st *appctx.State) error {
	ctx, cancel := commandContext(c)
	defer cancel()
	if err := rt.States.Save(ctx, st); err != nil {
		return err
	}
	return rt.Print(prefsOf(st))
}

func prefsOf(st *appctx.State) prefsView {
	return prefsView{Theme: string(st.Theme), SidebarOpen: st.SidebarOpen}
}
