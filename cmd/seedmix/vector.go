package main

import (
	"encoding/hex"
	"fmt"

	"github.com/lox/seedmix/internal/mixer"
)

// VectorCmd prints the conformance vector other implementations must match.
type VectorCmd struct{}

func (VectorCmd) Run(g *Globals) error {
	in := mixer.Input{Secret: 1, WorldSeed: 2, CoordinateKey: 3, Level: 4}
	encoded := mixer.Encode(in)
	out := mixer.Mix(in)

	printField(g.out, "input", fmt.Sprintf("%+v", in))
	printField(g.out, "encoded", hex.EncodeToString(encoded[:]))
	printField(g.out, "seed", out)
	printField(g.out, "seed (hex)", fmt.Sprintf("%#016x", uint64(out)))
	return nil
}
