package command

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tankmate-go/internal/cli/output"
	"github.com/yndnr/tankmate-go/internal/core/domain"
	"github.com/yndnr/tankmate-go/internal/core/service"
)

func tankFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "tank",
		Aliases:  []string{"t"},
		Usage:    "Tank ID",
		EnvVars:  []string{"TANKMATE_TANK"},
		Required: true,
	}
}

// ParamCommand returns the water parameter command group.
func ParamCommand() *cli.Command {
	return &cli.Command{
		Name:    "param",
		Aliases: []string{"params", "parameter"},
		Usage:   "Record and review water parameters",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List readings, newest first",
				Flags: []cli.Flag{
					tankFlag(),
					&cli.StringFlag{Name: "type", Usage: "Only this parameter (e.g. PH, NO3, temp)"},
					&cli.DurationFlag{Name: "since", Usage: "Only readings newer than this (e.g. 168h)"},
					&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Show at most this many readings"},
				},
				Action: runParamList,
			},
			{
				Name:  "record",
				Usage: "Record a reading",
				Flags: []cli.Flag{
					tankFlag(),
					&cli.StringFlag{Name: "type", Usage: "Parameter type (e.g. PH, NO3, temp)", Required: true},
					&cli.Float64Flag{Name: "value", Usage: "Measured value", Required: true},
					&cli.TimestampFlag{Name: "at", Usage: "Measurement time (RFC 3339, default now)", Layout: time.RFC3339},
				},
				Action: runParamRecord,
			},
			{
				Name:  "trends",
				Usage: "Summarise readings per parameter over a window",
				Flags: []cli.Flag{
					tankFlag(),
					&cli.StringFlag{Name: "range", Aliases: []string{"r"}, Usage: "7d, 30d or 90d", Value: string(domain.TrendRange30d)},
				},
				Action: runParamTrends,
			},
			{
				Name:  "types",
				Usage: "List parameter types with units and typical ranges",
				Action: func(c *cli.Context) error {
					rt := RuntimeFrom(c)
					return rt.Print(parameterTypeRows(domain.ParameterTypes()))
				},
			},
		},
	}
}

func runParamList(c *cli.Context) error {
	rt, err := requireAuth(c)
	if err != nil {
		return err
	}
	var f service.ParameterFilter
	if c.IsSet("type") {
		if f.Type, err = domain.ParseParameterType(c.String("type")); err != nil {
			return err
		}
	}
	if d := c.Duration("since"); d > 0 {
		f.Since = rt.Now().Add(-d)
	}
	ctx, cancel := commandContext(c)
	defer cancel()

	params, err := rt.Params.List(ctx, c.String("tank"), f)
	if err != nil {
		return err
	}
	if n := c.Int("limit"); n > 0 && len(params) > n {
		params = params[:n]
	}
	if len(params) == 0 && rt.Format() == output.FormatTable {
		rt.Notice("No readings recorded.")
		return nil
	}
	return rt.Print(parameterList(params))
}

func runParamRecord(c *cli.Context) error {
	rt, err := requireAuth(c)
	if err != nil {
		return err
	}
	typ, err := domain.ParseParameterType(c.String("type"))
	if err != nil {
		return err
	}
	value := c.Float64("value")
	req := domain.CreateParameterRequest{Type: typ, Value: &value}
	if at := c.Timestamp("at"); at != nil {
		req.RecordedAt = at.UTC()
	}
	ctx, cancel := commandContext(c)
	defer cancel()

	p, err := rt.Params.Record(ctx, c.String("tank"), req)
	if err != nil {
		return err
	}
	info := p.Type.Info()
	if !info.InRange(p.Value) {
		rt.Notice("Warning: %s %s is outside the typical range %s - %s",
			info.Label, withUnit(p.Value, info.Unit),
			output.FormatNumber(info.TypicalMin), output.FormatNumber(info.TypicalMax))
	}
	return rt.Print(parameterView(*p))
}

func runParamTrends(c *cli.Context) error {
	rt, err := requireAuth(c)
	if err != nil {
		return err
	}
	r, err := domain.ParseTrendRange(c.String("range"))
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(c)
	defer cancel()

	trends, err := rt.Params.Trends(ctx, c.String("tank"), r, rt.Now())
	if err != nil {
		return err
	}
	if len(trends) == 0 && rt.Format() == output.FormatTable {
		rt.Notice("No readings in the last %d days.", r.Days())
		return nil
	}
	return rt.Print(trendList(trends))
}
