package command

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tankmate-go/internal/cli/output"
	"github.com/yndnr/tankmate-go/internal/core/domain"
)

// InhabitantCommand returns the inhabitant command group.
func InhabitantCommand() *cli.Command {
	return &cli.Command{
		Name:    "inhabitant",
		Aliases: []string{"inhabitants", "livestock"},
		Usage:   "Track the animals and plants in a tank",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List inhabitants",
				Flags:   []cli.Flag{tankFlag()},
				Action:  runInhabitantList,
			},
			{
				Name:  "add",
				Usage: "Add inhabitants",
				Flags: []cli.Flag{
					tankFlag(),
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Species or common name", Required: true},
					&cli.StringFlag{Name: "type", Usage: "ANIMAL, PLANT or OTHER", Value: string(domain.InhabitantAnimal)},
					&cli.IntFlag{Name: "quantity", Aliases: []string{"q"}, Usage: "How many", Value: 1},
					&cli.StringFlag{Name: "identified-id", Usage: "ID of an identified species"},
				},
				Action: runInhabitantAdd,
			},
		},
	}
}

func runInhabitantList(c *cli.Context) error {
	rt, err := requireAuth(c)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(c)
	defer cancel()

	items, err := rt.Inhabitants.List(ctx, c.String("tank"))
	if err != nil {
		return err
	}
	if len(items) == 0 && rt.Format() == output.FormatTable {
		rt.Notice("No inhabitants recorded.")
		return nil
	}
	return rt.Print(inhabitantList(items))
}

func runInhabitantAdd(c *cli.Context) error {
	rt, err := requireAuth(c)
	if err != nil {
		return err
	}
	typ, err := domain.ParseInhabitantType(c.String("type"))
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(c)
	defer cancel()

	in, err := rt.Inhabitants.Create(ctx, c.String("tank"), domain.CreateInhabitantRequest{
		Name:                   strings.TrimSpace(c.String("name")),
		Quantity:               c.Int("quantity"),
		Type:                   typ,
		IdentifiedInhabitantID: c.String("identified-id"),
	})
	if err != nil {
		return err
	}
	rt.Notice("Added %d x %s", in.Quantity, in.Name)
	return rt.Print(inhabitantView(*in))
}
