package secret

import (
	"crypto/rand"
	"encoding/binary"
)

// RandSource supplies raw 64-bit values for secret generation. It lets tests
// drive generation deterministically. Implementations must be safe for
// concurrent use when shared by a Store.
type RandSource interface {
	Uint64() uint64
}

type cryptoSource struct{}

func (cryptoSource) Uint64() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// Generate draws a new secret from src, or from crypto/rand when src is nil.
// Zero is reserved for "absent" and is resampled.
func Generate(src RandSource) Secret {
	if src == nil {
		src = cryptoSource{}
	}
	for {
		if v := src.Uint64(); v != 0 {
			return Secret(v)
		}
	}
}
