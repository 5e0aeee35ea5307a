package jobs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"trendboard/internal/config"
	"trendboard/internal/corpus"
	"trendboard/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestReloader_RebuildsOnNewFile(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTrends(t, root, "coats", "TrenchCoat_France.csv", testutil.ThreeWeeks...)

	c := corpus.New(config.DefaultCatalog(), zaptest.NewLogger(t))
	first, err := c.Load(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, first.Records, 3)

	r := NewReloader(c, root, 50*time.Millisecond, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Start(ctx) }()

	// Give the watcher time to register before changing files.
	time.Sleep(100 * time.Millisecond)
	testutil.WriteTrends(t, root, "coats", "WoolOvercoat_UK.csv", testutil.ThreeWeeks...)

	require.Eventually(t, func() bool { return r.Reloads() > 0 }, 5*time.Second, 20*time.Millisecond)

	ds, ok := c.Cached(root)
	require.True(t, ok)
	assert.Len(t, ds.Records, 9)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("reloader did not stop")
	}
}

func TestReloader_WaitsForMissingRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "GoogleTrends")
	c := corpus.New(config.DefaultCatalog(), zaptest.NewLogger(t))
	_, err := c.Load(context.Background(), root)
	require.ErrorIs(t, err, corpus.ErrRootNotFound)

	r := NewReloader(c, root, 50*time.Millisecond, zaptest.NewLogger(t))
	r.poll = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Start(ctx) }()

	// Still running while the root is absent
	select {
	case err := <-done:
		t.Fatalf("reloader returned early: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	// Build the tree elsewhere and move it into place in one step
	staging := filepath.Join(parent, "staging")
	testutil.WriteTrends(t, staging, "coats", "TrenchCoat_France.csv", testutil.ThreeWeeks...)
	require.NoError(t, os.Rename(staging, root))

	require.Eventually(t, func() bool { return r.Reloads() > 0 }, 5*time.Second, 20*time.Millisecond)
	ds, ok := c.Cached(root)
	require.True(t, ok)
	assert.Len(t, ds.Records, 3)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("reloader did not stop")
	}
}

func TestReloader_MissingRootStopsWithContext(t *testing.T) {
	c := corpus.New(config.DefaultCatalog(), zaptest.NewLogger(t))
	r := NewReloader(c, filepath.Join(t.TempDir(), "missing"), time.Second, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.NoError(t, r.Start(ctx))
	assert.Zero(t, r.Reloads())
}
