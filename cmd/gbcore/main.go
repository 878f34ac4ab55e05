// Command gbcore is a thin CLI host around the gbcore library: it loads a
// ROM, steps the CPU a bounded number of times, and logs progress. Grounded
// on cmd/jeebie/main.go's urfave/cli app setup, simplified to this module's
// headless-only, no-PPU scope.
package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/halfcarry/gbcore"
	"github.com/halfcarry/gbcore/corelog"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "gbcore"
	app.Description = "A Sharp LR35902 CPU core"
	app.Usage = "gbcore [options] <ROM file>"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of CPU steps to run before exiting",
			Value: 1000,
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("gbcore exiting", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() == 0 {
		cli.ShowAppHelp(c)
		return errors.New("no ROM path provided")
	}
	romPath := c.Args().Get(0)
	steps := c.Int("frames")

	data, err := os.ReadFile(romPath)
	if err != nil {
		return err
	}

	ctx := gbcore.NewContext(corelog.Default())
	if result := ctx.LoadCart(data); result != gbcore.Ok {
		return errors.New("failed to load cartridge: " + result.String())
	}

	for i := 0; i < steps; i++ {
		ctx.Step()
	}

	slog.Info("gbcore run complete", "steps", steps, "rom", romPath)
	return nil
}
