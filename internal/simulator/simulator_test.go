package simulator

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/seedmix/internal/secret"
	"github.com/lox/seedmix/internal/worldgen"
)

type previewWorld struct{}

func (previewWorld) Name() string             { return "preview" }
func (previewWorld) Seed() int64              { return 0 }
func (previewWorld) SaveRoot() (string, bool) { return "", false }

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newDeriver(t *testing.T) *worldgen.Deriver {
	t.Helper()
	store := secret.NewStore(secret.NewFileStorage(),
		secret.WithLogger(quietLogger()),
		secret.WithClock(quartz.NewMock(t)),
	)
	return worldgen.NewDeriver(store, worldgen.DefaultLayout(), quietLogger())
}

func TestNewAppliesDefaults(t *testing.T) {
	sim := New(Config{})

	assert.Equal(t, DefaultEvents, sim.config.Events)
	assert.Equal(t, DefaultWorkers, sim.config.Workers)
	assert.Equal(t, int32(DefaultRadius), sim.config.Radius)
	assert.Equal(t, int32(DefaultMinY), sim.config.MinY)
	assert.Equal(t, int32(DefaultMaxY), sim.config.MaxY)
	assert.NotNil(t, sim.config.Logger)

	swapped := New(Config{MinY: 100, MaxY: -100})
	assert.Equal(t, int32(-100), swapped.config.MinY)
	assert.Equal(t, int32(100), swapped.config.MaxY)
}

func TestRunProducesUniformSeeds(t *testing.T) {
	t.Parallel()

	world := worldgen.LocalWorld{Dir: t.TempDir(), WorldSeed: 8675309}
	sim := New(Config{Events: 5000, Workers: 4, Seed: 1, Radius: 5000, Logger: quietLogger()})

	stats, err := sim.Run(context.Background(), newDeriver(t), world)
	require.NoError(t, err)

	assert.Equal(t, 5000, stats.Samples)
	require.NoError(t, stats.Validate(0.05))
	assert.InDelta(t, 32.0, stats.MeanPopCount(), 0.5)
}

func TestRunIsReproducible(t *testing.T) {
	t.Parallel()

	world := worldgen.LocalWorld{Dir: t.TempDir(), WorldSeed: 3}
	d := newDeriver(t)
	cfg := Config{Events: 500, Workers: 3, Seed: 77, Radius: 2000, Logger: quietLogger()}

	first, err := New(cfg).Run(context.Background(), d, world)
	require.NoError(t, err)
	second, err := New(cfg).Run(context.Background(), newDeriver(t), world)
	require.NoError(t, err)

	assert.Equal(t, first.BitOnes, second.BitOnes)
	assert.Equal(t, first.SumPop, second.SumPop)
}

func TestRunClampsToCapacity(t *testing.T) {
	t.Parallel()

	world := worldgen.LocalWorld{Dir: t.TempDir()}
	sim := New(Config{Events: 10, Workers: 8, Radius: 8, MinY: 0, MaxY: 15, Logger: quietLogger()})
	require.Equal(t, int64(4), sim.Capacity())

	stats, err := sim.Run(context.Background(), newDeriver(t), world)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Samples)
	assert.Zero(t, stats.Collisions)
}

func TestRunRequiresSaveRoot(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Events: 10, Logger: quietLogger()}).Run(context.Background(), newDeriver(t), previewWorld{})
	require.ErrorIs(t, err, ErrNoSaveRoot)
}

func TestRunHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	world := worldgen.LocalWorld{Dir: t.TempDir()}
	_, err := New(Config{Events: 100, Workers: 2, Radius: 1000, Logger: quietLogger()}).Run(ctx, newDeriver(t), world)
	require.ErrorIs(t, err, context.Canceled)
}
