package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dshills/cascade/internal/cascade"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeConfig(t *testing.T, path, mode string) {
	t.Helper()
	data := []byte("[propagation]\nmode = \"" + mode + "\"\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestWatcherDeliversReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cascade.toml")
	writeConfig(t, path, "row")

	w, err := Watch(path, WithDebounce(10*time.Millisecond), WithLoader(func(p string) (*Config, error) {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		return Parse(data)
	}))
	require.NoError(t, err)
	defer w.Close()

	writeConfig(t, path, "section")

	select {
	case cfg := <-w.Updates():
		assert.Equal(t, cascade.ModeSection, cfg.Propagation.Mode)
	case err := <-w.Errors():
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherReportsLoadErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cascade.toml")
	writeConfig(t, path, "row")

	boom := errors.New("boom")
	w, err := Watch(path, WithDebounce(0), WithLoader(func(string) (*Config, error) {
		return nil, boom
	}))
	require.NoError(t, err)
	defer w.Close()

	writeConfig(t, path, "section")

	select {
	case err := <-w.Errors():
		assert.ErrorIs(t, err, boom)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for error")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cascade.toml")
	writeConfig(t, path, "row")

	w, err := Watch(path, WithDebounce(0))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644))

	select {
	case cfg := <-w.Updates():
		t.Fatalf("unexpected reload: %+v", cfg)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cascade.toml")
	writeConfig(t, path, "row")

	w, err := Watch(path)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Close(), ErrWatcherClosed)
}
