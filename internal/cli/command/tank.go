package command

import (
	"fmt"
	"strings"

	"github.com/oapi-codegen/nullable"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/tankmate-go/internal/cli/output"
	"github.com/yndnr/tankmate-go/internal/core/domain"
)

// TankCommand returns the tank command group.
func TankCommand() *cli.Command {
	return &cli.Command{
		Name:    "tank",
		Aliases: []string{"tanks"},
		Usage:   "Manage aquariums",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List your tanks",
				Action:  runTankList,
			},
			{
				Name:      "get",
				Usage:     "Show one tank",
				ArgsUsage: "<tank-id>",
				Action:    runTankGet,
			},
			{
				Name:  "create",
				Usage: "Create a tank",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Tank name", Required: true},
					&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "FRESHWATER or SALTWATER", Value: string(domain.TankTypeFreshwater)},
					&cli.Float64Flag{Name: "volume", Aliases: []string{"v"}, Usage: "Volume in gallons", Required: true},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Free-form description"},
				},
				Action: runTankCreate,
			},
			{
				Name:      "update",
				Usage:     "Change a tank; only the given fields are sent",
				ArgsUsage: "[flags] <tank-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "New name"},
					&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "FRESHWATER or SALTWATER"},
					&cli.Float64Flag{Name: "volume", Aliases: []string{"v"}, Usage: "New volume in gallons"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "New description"},
					&cli.BoolFlag{Name: "clear-description", Usage: "Remove the description"},
				},
				Action: runTankUpdate,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a tank and everything recorded for it",
				ArgsUsage: "[flags] <tank-id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Do not ask for confirmation"},
				},
				Action: runTankDelete,
			},
		},
	}
}

func runTankList(c *cli.Context) error {
	rt, err := requireAuth(c)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(c)
	defer cancel()

	tanks, err := rt.Tanks.List(ctx)
	if err != nil {
		return err
	}
	if len(tanks) == 0 && rt.Format() == output.FormatTable {
		rt.Notice("No tanks yet. Create one with 'tankmate-cli tank create'.")
		return nil
	}
	return rt.Print(tankList(tanks))
}

func runTankGet(c *cli.Context) error {
	rt, err := requireAuth(c)
	if err != nil {
		return err
	}
	id, err := argTankID(c)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(c)
	defer cancel()

	tank, err := rt.Tanks.Get(ctx, id)
	if err != nil {
		return err
	}
	return rt.Print(tankView(*tank))
}

func runTankCreate(c *cli.Context) error {
	rt, err := requireAuth(c)
	if err != nil {
		return err
	}
	typ, err := domain.ParseTankType(c.String("type"))
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(c)
	defer cancel()

	tank, err := rt.Tanks.Create(ctx, domain.CreateTankRequest{
		Name:        strings.TrimSpace(c.String("name")),
		Description: c.String("description"),
		Volume:      c.Float64("volume"),
		Type:        typ,
	})
	if err != nil {
		return err
	}
	rt.Notice("Created tank %s (%s)", tank.Name, tank.ID)
	return rt.Print(tankView(*tank))
}

func runTankUpdate(c *cli.Context) error {
	rt, err := requireAuth(c)
	if err != nil {
		return err
	}
	id, err := argTankID(c)
	if err != nil {
		return err
	}
	req, err := tankUpdateFromFlags(c)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(c)
	defer cancel()

	tank, err := rt.Tanks.Update(ctx, id, req)
	if err != nil {
		return err
	}
	rt.Notice("Updated tank %s", tank.ID)
	return rt.Print(tankView(*tank))
}

// tankUpdateFromFlags sends only the flags the user set.
func tankUpdateFromFlags(c *cli.Context) (domain.UpdateTankRequest, error) {
	var req domain.UpdateTankRequest
	if c.IsSet("description") && c.Bool("clear-description") {
		return req, domain.ErrArgumentConflict.WithDetails("--description and --clear-description")
	}
	if c.IsSet("name") {
		req.Name = nullable.NewNullableWithValue(strings.TrimSpace(c.String("name")))
	}
	if c.IsSet("type") {
		typ, err := domain.ParseTankType(c.String("type"))
		if err != nil {
			return req, err
		}
		req.Type = nullable.NewNullableWithValue(typ)
	}
	if c.IsSet("volume") {
		req.Volume = nullable.NewNullableWithValue(c.Float64("volume"))
	}
	switch {
	case c.Bool("clear-description"):
		req.Description = nullable.NewNullNullable[string]()
	case c.IsSet("description"):
		req.Description = nullable.NewNullableWithValue(c.String("description"))
	}
	return req, nil
}

func runTankDelete(c *cli.Context) error {
	rt, err := requireAuth(c)
	if err != nil {
		return err
	}
	id, err := argTankID(c)
	if err != nil {
		return err
	}
	if !c.Bool("force") {
		if !confirm(rt, fmt.Sprintf("Delete tank %s and all of its records? [y/N] ", id)) {
			rt.Notice("Aborted")
			return nil
		}
	}
	ctx, cancel := commandContext(c)
	defer cancel()

	if err := rt.Tanks.Delete(ctx, id); err != nil {
		return err
	}
	rt.Notice("Deleted tank %s", id)
	return nil
}

// argTankID returns the single positional tank id. Flag parsing stops at
// the first positional argument, so anything after the id is rejected
// rather than silently ignored.
func argTankID(c *cli.Context) (string, error) {
	id := strings.TrimSpace(c.Args().First())
	if id == "" {
		return "", domain.ErrMissingArgument.WithDetails("tank id")
	}
	if c.Args().Len() > 1 {
		return "", domain.ErrInvalidArgument.WithDetails(fmt.Sprintf(
			"unexpected %q after the tank id; flags must come before the tank id", c.Args().Get(1)))
	}
	return id, nil
}

// confirm asks a yes/no question; anything but y or yes is a no.
func confirm(rt *Runtime, question string) bool {
	fmt.Fprint(rt.Err, question)
	line, _ := rt.Input().ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
