package command

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tankmate-go/internal/cli/output"
	"github.com/yndnr/tankmate-go/internal/core/domain"
)

// EventCommand returns the maintenance event command group.
func EventCommand() *cli.Command {
	return &cli.Command{
		Name:    "event",
		Aliases: []string{"events"},
		Usage:   "Log and review maintenance events",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List events, newest first",
				Flags:   []cli.Flag{tankFlag()},
				Action:  runEventList,
			},
			{
				Name:  "log",
				Usage: "Log an event",
				Flags: []cli.Flag{
					tankFlag(),
					&cli.StringFlag{Name: "type", Usage: "feeding, water_change, algae_bloom, filter_cleaning, light_adjustment, temperature_adjustment or other", Required: true},
					&cli.StringFlag{Name: "details", Aliases: []string{"d"}, Usage: "Notes"},
					&cli.TimestampFlag{Name: "at", Usage: "When it happened (RFC 3339, default now)", Layout: time.RFC3339},
				},
				Action: runEventLog,
			},
		},
	}
}

func runEventList(c *cli.Context) error {
	rt, err := requireAuth(c)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(c)
	defer cancel()

	events, err := rt.Events.List(ctx, c.String("tank"))
	if err != nil {
		return err
	}
	if len(events) == 0 && rt.Format() == output.FormatTable {
		rt.Notice("No events logged.")
		return nil
	}
	return rt.Print(eventList(events))
}

func runEventLog(c *cli.Context) error {
	rt, err := requireAuth(c)
	if err != nil {
		return err
	}
	typ, err := domain.ParseEventType(c.String("type"))
	if err != nil {
		return err
	}
	req := domain.CreateEventRequest{Type: typ, Details: c.String("details")}
	if at := c.Timestamp("at"); at != nil {
		req.OccurredAt = at.UTC()
	}
	ctx, cancel := commandContext(c)
	defer cancel()

	ev, err := rt.Events.Create(ctx, c.String("tank"), req)
	if err != nil {
		return err
	}
	rt.Notice("Logged %s", ev.Type.Label())
	return rt.Print(eventView(*ev))
}
