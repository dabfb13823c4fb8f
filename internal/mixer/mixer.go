// Package mixer derives generation seeds from a world secret and public
// generation coordinates.
//
// The derivation is SHA-256 over a fixed 28-byte little-endian layout:
//
//	offset  0  secret         int64
//	offset  8  world seed     int64
//	offset 16  coordinate key int64
//	offset 24  level          int32
//
// The first 8 bytes of the digest, read little-endian, are the result.
// Anyone who knows the public fields but not the secret cannot predict the
// output, while the same inputs always reproduce the same seed.
package mixer

import (
	"crypto/sha256"
	"encoding/binary"
)

// InputSize is the width of an encoded Input.
const InputSize = 3*8 + 4

// Input is one generation event's mixing tuple.
type Input struct {
	Secret        int64
	WorldSeed     int64
	CoordinateKey int64
	Level         int32
}

// Encode serialises in into its fixed wire layout.
func Encode(in Input) [InputSize]byte {
	var buf [InputSize]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(in.Secret))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(in.WorldSeed))
	binary.LittleEndian.PutUint64(buf[16:24], uint64(in.CoordinateKey))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(in.Level))
	return buf
}

// Mix returns the derived seed for in. It keeps no state and is safe for
// concurrent use.
func Mix(in Input) int64 {
	buf := Encode(in)
	sum := sha256.Sum256(buf[:])
	return int64(binary.LittleEndian.Uint64(sum[:8]))
}

// Seed is Mix with positional arguments.
func Seed(secret, worldSeed, coordinateKey int64, level int32) int64 {
	return Mix(Input{
		Secret:        secret,
		WorldSeed:     worldSeed,
		CoordinateKey: coordinateKey,
		Level:         level,
	})
}
