// Package secret owns the lifecycle of the per-world secret that is mixed
// into generation seeds.
//
// A secret is generated once per storage location, persisted before it is
// handed to any caller, and cached for the lifetime of the process. Logs and
// tooling refer to a secret by its Fingerprint, never by value.
package secret

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
)

// Secret is a non-zero 64-bit world secret. The zero value means "absent".
type Secret int64

// Location names where a secret is persisted and cached, usually a file path.
type Location string

var (
	// ErrNotExist is returned by Storage.Load when no document has been
	// written for a location yet.
	ErrNotExist = errors.New("secret document does not exist")

	// ErrPersist marks a failure to durably store a freshly generated
	// secret. Callers must treat it as fatal for the dependent subsystem.
	ErrPersist = errors.New("failed to persist secret")

	// ErrMetadata is returned alongside a usable Document when only its
	// descriptive attributes could not be read. The secret itself is intact.
	ErrMetadata = errors.New("secret document metadata is invalid")
)

// Valid reports whether s can be used as a secret.
func (s Secret) Valid() bool {
	return s != 0
}

// Fingerprint returns a short, stable identifier for s that is safe to log.
func Fingerprint(s Secret) string {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(s))
	sum := sha256.Sum256(buf[:])
	return hex.EncodeToString(sum[:8])
}
