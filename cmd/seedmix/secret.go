package main

import (
	"fmt"

	"github.com/lox/seedmix/internal/secret"
	"github.com/lox/seedmix/internal/worldgen"
)

// SecretCmd resolves a world's secret, creating it on first use.
type SecretCmd struct {
	World  string `arg:"" name:"world" type:"path" help:"World save directory"`
	Reveal bool   `help:"Print the raw secret value"`
}

func (cmd SecretCmd) Run(g *Globals) error {
	rt, err := g.setup()
	if err != nil {
		return err
	}

	world := worldgen.LocalWorld{Dir: cmd.World}
	loc, _ := rt.deriver.Location(world)
	if err := rt.deriver.Warm(world); err != nil {
		return err
	}
	s, ok := rt.store.Cached(loc)
	if !ok {
		return fmt.Errorf("secret for %s was not resolved", world.Name())
	}

	printField(g.out, "world", world.Name())
	printField(g.out, "location", loc)
	printField(g.out, "fingerprint", secret.Fingerprint(s))
	if cmd.Reveal {
		printField(g.out, "secret", int64(s))
	}
	return nil
}
