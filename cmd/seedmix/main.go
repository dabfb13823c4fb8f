package main

import (
	"os"

	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Secret   SecretCmd        `cmd:"" help:"Resolve (load or create) a world's secret"`
	Derive   DeriveCmd        `cmd:"" help:"Derive the seed for one generation event"`
	Simulate SimulateCmd      `cmd:"" help:"Audit derived seeds over many synthetic generation events"`
	Vector   VectorCmd        `cmd:"" help:"Print the mixing conformance vector"`
}

func main() {
	cli := CLI{Globals: Globals{out: os.Stdout, errOut: os.Stderr}}
	ctx := kong.Parse(&cli,
		kong.Name("seedmix"),
		kong.Description("Secret-mixed, reproducible world-generation seeds"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
