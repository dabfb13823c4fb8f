// Package worldgen is the boundary between a host world-generation engine and
// the secret-mixed seed derivation.
//
// The host calls Reseed (or DeriveSeed) once per generation event. The
// event's block position is reduced to a chunk key and a section index, the
// world's secret is resolved from its save directory, and the mixed seed is
// fed back into the host's random source for that event.
package worldgen

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/lox/seedmix/internal/mixer"
	"github.com/lox/seedmix/internal/secret"
)

const (
	DefaultDataDir  = "data"
	DefaultFileName = "seedmix_secret.hcl"
)

// World is the host's view of a world being generated.
type World interface {
	// Name identifies the world in logs.
	Name() string
	// Seed is the public world seed.
	Seed() int64
	// SaveRoot is the world's save directory. Worlds without durable
	// storage, such as client-side previews, return false and are not
	// reseeded.
	SaveRoot() (string, bool)
}

// Seeder is a host random source that can be reset to a seed.
type Seeder interface {
	Seed(seed int64)
}

// Layout locates the secret document inside a world's save directory.
type Layout struct {
	DataDir  string
	FileName string
}

// DefaultLayout stores the secret at <save root>/data/seedmix_secret.hcl.
func DefaultLayout() Layout {
	return Layout{DataDir: DefaultDataDir, FileName: DefaultFileName}
}

// SecretLocation returns the document location for a save root.
func (l Layout) SecretLocation(saveRoot string) secret.Location {
	dataDir := l.DataDir
	if dataDir == "" {
		dataDir = DefaultDataDir
	}
	fileName := l.FileName
	if fileName == "" {
		fileName = DefaultFileName
	}
	return secret.Location(filepath.Join(saveRoot, dataDir, fileName))
}

// Deriver derives per-event seeds for worlds.
type Deriver struct {
	store  *secret.Store
	layout Layout
	logger *log.Logger
}

// NewDeriver creates a Deriver that resolves secrets through store.
func NewDeriver(store *secret.Store, layout Layout, logger *log.Logger) *Deriver {
	if logger == nil {
		logger = log.Default()
	}
	return &Deriver{store: store, layout: layout, logger: logger}
}

// Location returns where w's secret lives, or false if w has no save root.
func (d *Deriver) Location(w World) (secret.Location, bool) {
	root, ok := w.SaveRoot()
	if !ok {
		return "", false
	}
	return d.layout.SecretLocation(root), true
}

// DeriveSeed returns the mixed seed for a generation event at pos. The only
// error is a failure to persist a newly generated secret, see
// secret.ErrPersist.
func (d *Deriver) DeriveSeed(loc secret.Location, worldSeed int64, pos BlockPos) (int64, error) {
	s, err := d.store.Resolve(loc)
	if err != nil {
		return 0, err
	}
	return mixer.Seed(int64(s), worldSeed, ChunkKey(pos), SectionIndex(pos)), nil
}

// Reseed derives the seed for a generation event in w at pos and resets rng
// to it. It reports false, leaving rng untouched, when w has no save root.
func (d *Deriver) Reseed(w World, rng Seeder, pos BlockPos) (bool, error) {
	loc, ok := d.Location(w)
	if !ok {
		d.logger.Debug("Skipping seed mixing for world without save root", "world", w.Name())
		return false, nil
	}

	seed, err := d.DeriveSeed(loc, w.Seed(), pos)
	if err != nil {
		return false, fmt.Errorf("reseed %s at %d,%d,%d: %w", w.Name(), pos.X, pos.Y, pos.Z, err)
	}
	rng.Seed(seed)
	return true, nil
}

// Warm resolves w's secret ahead of generation so the first document write
// happens at startup rather than inside a generation event.
func (d *Deriver) Warm(w World) error {
	loc, ok := d.Location(w)
	if !ok {
		d.logger.Debug("World has no save root; nothing to warm", "world", w.Name())
		return nil
	}
	if _, err := d.store.Resolve(loc); err != nil {
		return fmt.Errorf("warm secret for %s: %w", w.Name(), err)
	}
	d.logger.Debug("Secret ready", "world", w.Name(), "location", loc)
	return nil
}

// LocalWorld is a World backed by a directory on disk.
type LocalWorld struct {
	Label     string
	Dir       string
	WorldSeed int64
}

func (w LocalWorld) Name() string {
	if w.Label != "" {
		return w.Label
	}
	return filepath.Base(w.Dir)
}

func (w LocalWorld) Seed() int64 { return w.WorldSeed }

func (w LocalWorld) SaveRoot() (string, bool) {
	return w.Dir, w.Dir != ""
}
