package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) record(path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
}

func (r *recorder) has(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.paths {
		if p == path {
			return true
		}
	}
	return false
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.paths)
}

func TestWatch_NewDocumentReported(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{}
	go func() { _ = Watch(ctx, root, testLogger(), rec.record) }()
	time.Sleep(100 * time.Millisecond)

	_ = os.WriteFile(filepath.Join(root, "new.md"), []byte("# New"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return rec.has("new.md")
	}, "new document not reported by watcher")
}

func TestWatch_IgnoresUnrelatedExtensions(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{}
	go func() { _ = Watch(ctx, root, testLogger(), rec.record) }()
	time.Sleep(100 * time.Millisecond)

	_ = os.WriteFile(filepath.Join(root, "scratch.txt"), []byte("x"), 0o644)
	_ = os.WriteFile(filepath.Join(root, "doc.md"), []byte("# D"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return rec.has("doc.md")
	}, "markdown change not reported")
	if rec.has("scratch.txt") {
		t.Error("txt change should not be reported")
	}
}

func TestWatch_PicksUpNewDirectories(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{}
	go func() { _ = Watch(ctx, root, testLogger(), rec.record) }()
	time.Sleep(100 * time.Millisecond)

	dir := filepath.Join(root, "proj", "dist", "md")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	// Give the watcher a moment to add the new directories.
	time.Sleep(300 * time.Millisecond)
	_ = os.WriteFile(filepath.Join(dir, "deep.md"), []byte("# Deep"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return rec.has("proj/dist/md/deep.md")
	}, "document in new directory not reported")
}

func TestWatch_DebouncesWriteBursts(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recorder{}
	go func() { _ = Watch(ctx, root, testLogger(), rec.record) }()
	time.Sleep(100 * time.Millisecond)

	p := filepath.Join(root, "burst.md")
	for i := 0; i < 5; i++ {
		_ = os.WriteFile(p, []byte("# Burst"), 0o644)
		time.Sleep(10 * time.Millisecond)
	}

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return rec.has("burst.md")
	}, "burst write not reported")

	// The burst lands inside one debounce window, so a single callback.
	time.Sleep(2 * debounceWindow)
	if n := rec.count(); n != 1 {
		t.Errorf("callbacks = %d, want 1", n)
	}
}
