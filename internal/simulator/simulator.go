// Package simulator drives synthetic generation events through a Deriver to
// audit the distribution of derived seeds.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/seedmix/internal/randutil"
	"github.com/lox/seedmix/internal/statistics"
	"github.com/lox/seedmix/internal/worldgen"
)

const (
	DefaultEvents  = 100_000
	DefaultWorkers = 8
	DefaultRadius  = 30_000_000
	DefaultMinY    = -64
	DefaultMaxY    = 320
)

// ErrNoSaveRoot is returned when the simulated world cannot hold a secret.
var ErrNoSaveRoot = errors.New("world has no save root")

// Config holds configuration for running simulations
type Config struct {
	Events  int
	Workers int
	Seed    int64 // Drives event placement, not the derived seeds
	Radius  int32 // Horizontal block radius around the origin
	MinY    int32
	MaxY    int32
	Logger  *log.Logger
}

// Simulator runs generation-event simulations
type Simulator struct {
	config Config
}

// New creates a new simulator, filling unset fields with defaults.
func New(config Config) *Simulator {
	if config.Events <= 0 {
		config.Events = DefaultEvents
	}
	if config.Workers <= 0 {
		config.Workers = DefaultWorkers
	}
	if config.Radius <= 0 {
		config.Radius = DefaultRadius
	}
	if config.MinY == 0 && config.MaxY == 0 {
		config.MinY, config.MaxY = DefaultMinY, DefaultMaxY
	}
	if config.MaxY < config.MinY {
		config.MinY, config.MaxY = config.MaxY, config.MinY
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	return &Simulator{config: config}
}

// Run derives one seed per distinct chunk section event in w and returns the
// merged distribution statistics.
func (s *Simulator) Run(ctx context.Context, d *worldgen.Deriver, w worldgen.World) (*statistics.SeedStats, error) {
	loc, ok := d.Location(w)
	if !ok {
		return nil, fmt.Errorf("simulate %s: %w", w.Name(), ErrNoSaveRoot)
	}

	// Resolve up front so a persistence failure is reported once rather
	// than by every worker.
	if err := d.Warm(w); err != nil {
		return nil, err
	}

	events := s.events()
	workers := min(s.config.Workers, len(events))
	perWorker := (len(events) + workers - 1) / workers
	started := time.Now()

	s.config.Logger.Debug("Starting simulation",
		"world", w.Name(),
		"events", len(events),
		"workers", workers)

	g, ctx := errgroup.WithContext(ctx)
	results := make(chan *statistics.SeedStats, workers)

	for lo := 0; lo < len(events); lo += perWorker {
		batch := events[lo:min(lo+perWorker, len(events))]
		g.Go(func() error {
			local := &statistics.SeedStats{}
			for i, pos := range batch {
				if i%1024 == 0 && ctx.Err() != nil {
					return ctx.Err()
				}
				seed, err := d.DeriveSeed(loc, w.Seed(), pos)
				if err != nil {
					return err
				}
				local.Add(seed)
			}

			select {
			case results <- local:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	go func() {
		defer close(results)
		g.Wait()
	}()

	stats := &statistics.SeedStats{}
	for local := range results {
		stats.Merge(local)
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("simulate %s: %w", w.Name(), err)
	}

	s.config.Logger.Debug("Simulation finished",
		"world", w.Name(),
		"samples", stats.Samples,
		"duration", time.Since(started))

	return stats, nil
}

// Capacity returns how many distinct chunk sections fit in the configured
// volume.
func (s *Simulator) Capacity() int64 {
	r := s.config.Radius
	chunks := int64(r>>4) - int64((-r)>>4) + 1
	if chunks > 1<<20 {
		return math.MaxInt64
	}
	sections := int64(s.config.MaxY>>4) - int64(s.config.MinY>>4) + 1
	return chunks * chunks * sections
}

// events returns up to Config.Events block positions, each in a different
// chunk section, drawn deterministically from Config.Seed.
func (s *Simulator) events() []worldgen.BlockPos {
	want := s.config.Events
	if capacity := s.Capacity(); int64(want) > capacity {
		s.config.Logger.Warn("Requested more events than chunk sections; clamping",
			"events", want,
			"capacity", capacity)
		want = int(capacity)
	}

	rng := randutil.New(s.config.Seed)
	span := int64(s.config.Radius)*2 + 1
	ySpan := int64(s.config.MaxY) - int64(s.config.MinY) + 1

	type sectionKey struct {
		chunk   int64
		section int32
	}
	seen := make(map[sectionKey]struct{}, want)
	events := make([]worldgen.BlockPos, 0, want)

	for len(events) < want {
		pos := worldgen.BlockPos{
			X: int32(rng.Int64N(span) - int64(s.config.Radius)),
			Y: int32(rng.Int64N(ySpan) + int64(s.config.MinY)),
			Z: int32(rng.Int64N(span) - int64(s.config.Radius)),
		}
		key := sectionKey{chunk: worldgen.ChunkKey(pos), section: worldgen.SectionIndex(pos)}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		events = append(events, pos)
	}
	return events
}
