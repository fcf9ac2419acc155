package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history_limit: 1\n"), 0644))

	changes := make(chan *Config, 10)
	w, err := NewWatcher(path, func(c *Config) { changes <- c }, nil)
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	started := make(chan struct{})
	go func() {
		close(started)
		w.Start(ctx)
	}()
	<-started

	// Keep writing until the watch is registered and a change arrives.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case cfg := <-changes:
			// A write may be observed half done.
			if cfg.HistoryLimit != 7 {
				continue
			}
			assert.Equal(t, "white", cfg.Colors["u"])
			return
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte("history_limit: 7\n"), 0644))
		case <-deadline:
			t.Fatal("no reload within 5s")
		}
	}
}

func TestWatcherSkipsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	called := false
	w, err := NewWatcher(path, func(*Config) { called = true }, nil)
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("history_limit: -1\n"), 0644))
	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})
	assert.False(t, called)

	w.handleEvent(fsnotify.Event{Name: filepath.Join(filepath.Dir(path), "other.yaml"), Op: fsnotify.Write})
	assert.False(t, called)

	require.NoError(t, os.WriteFile(path, []byte("history_limit: 2\n"), 0644))
	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})
	assert.True(t, called)
}

func TestWatcherMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "config.yaml")
	w, err := NewWatcher(path, nil, nil)
	require.NoError(t, err)
	defer w.Stop()

	assert.Equal(t, path, w.Path())
	assert.Error(t, w.Start(context.Background()))
}
