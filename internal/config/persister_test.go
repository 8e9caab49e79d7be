package config

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatapp/internal/logger"
)

func TestPersisterSubmitNeverBlocks(t *testing.T) {
	p := NewPersister(filepath.Join(t.TempDir(), "config.toml"), logger.NoOpLogger{})

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			p.Submit(snapshot("s", float32(i+1)))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit blocked without a running worker")
	}

	// Only the newest snapshot is pending.
	got := <-p.pending
	assert.Equal(t, float32(100), got.Window.Width)
}

func TestPersisterRunWritesAndFlushes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	p := NewPersister(path, logger.NoOpLogger{})

	want := Default()
	want.Window.Title = "persisted"
	p.Submit(want)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, p.Run(ctx))

	got, err := TryLoad(path)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Window.Title)
}

func TestPersisterLogsWriteFailures(t *testing.T) {
	p := NewPersister("ignored", logger.NoOpLogger{})

	var mu sync.Mutex
	calls := 0
	p.save = func(string, *AppConfig) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return errors.New("disk full")
	}

	p.Submit(Default())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, p.Run(ctx))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}
