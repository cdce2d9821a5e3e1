package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/tankmate-go/internal/infra/buildinfo"
	"github.com/yndnr/tankmate-go/internal/storage"
)

// SystemCommand returns the system command group.
func SystemCommand() *cli.Command {
	return &cli.Command{
		Name:  "system",
		Usage: "Build information and local maintenance",
		Subcommands: []*cli.Command{
			{
				Name:  "version",
				Usage: "Show build information",
				Action: func(c *cli.Context) error {
					return RuntimeFrom(c).Print(buildinfo.Get())
				},
			},
			{
				Name:  "metrics",
				Usage: "Print client metrics in Prometheus text format",
				Action: func(c *cli.Context) error {
					rt, err := Ensure(c)
					if err != nil {
						return err
					}
					return rt.Metrics.WriteText(rt.Out)
				},
			},
			{
				Name:  "compact",
				Usage: "Reclaim space in the local store",
				Action: func(c *cli.Context) error {
					rt, err := Ensure(c)
					if err != nil {
						return err
					}
					ctx, cancel := commandContext(c)
					defer cancel()
					n, err := storage.Compact(ctx, rt.Store)
					if err != nil {
						return err
					}
					rt.Notice("Ran %d garbage collection cycle(s)", n)
					return nil
				},
			},
		},
	}
}
