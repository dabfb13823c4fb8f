package main

import (
	"fmt"

	"github.com/lox/seedmix/internal/worldgen"
)

// DeriveCmd derives the seed for a single generation event.
type DeriveCmd struct {
	World string `arg:"" name:"world" type:"path" help:"World save directory"`
	Seed  int64  `short:"s" required:"" help:"Public world seed"`
	X     int32  `short:"x" help:"Block X coordinate"`
	Y     int32  `short:"y" help:"Block Y coordinate"`
	Z     int32  `short:"z" help:"Block Z coordinate"`
}

func (cmd DeriveCmd) Run(g *Globals) error {
	rt, err := g.setup()
	if err != nil {
		return err
	}

	world := worldgen.LocalWorld{Dir: cmd.World, WorldSeed: cmd.Seed}
	loc, _ := rt.deriver.Location(world)
	pos := worldgen.BlockPos{X: cmd.X, Y: cmd.Y, Z: cmd.Z}

	seed, err := rt.deriver.DeriveSeed(loc, world.Seed(), pos)
	if err != nil {
		return err
	}

	cx, cz := pos.ChunkCoords()
	printField(g.out, "chunk", fmt.Sprintf("%d, %d", cx, cz))
	printField(g.out, "section", worldgen.SectionIndex(pos))
	printField(g.out, "seed", seed)
	return nil
}
