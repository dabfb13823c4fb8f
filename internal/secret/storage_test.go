package secret

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorageLoadMissing(t *testing.T) {
	t.Parallel()

	storage := NewFileStorage()
	_, err := storage.Load(Location(filepath.Join(t.TempDir(), "absent.hcl")))
	require.ErrorIs(t, err, ErrNotExist)
}

func TestFileStorageSaveLoad(t *testing.T) {
	t.Parallel()

	loc := Location(filepath.Join(t.TempDir(), "data", "seedmix_secret.hcl"))
	storage := NewFileStorage()
	want := Document{
		Secret:      -77,
		Version:     DocumentVersion,
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	require.NoError(t, storage.Save(loc, want))

	got, err := storage.Load(loc)
	require.NoError(t, err)
	assert.Equal(t, want.Secret, got.Secret)
	assert.True(t, want.GeneratedAt.Equal(got.GeneratedAt))

	info, err := os.Stat(string(loc))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStorageLoadCorrupt(t *testing.T) {
	t.Parallel()

	loc := Location(filepath.Join(t.TempDir(), "seedmix_secret.hcl"))
	require.NoError(t, os.WriteFile(string(loc), []byte("secret = "), 0o600))

	_, err := NewFileStorage().Load(loc)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotExist)
}
