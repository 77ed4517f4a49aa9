package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/pablasso/gantitt/internal/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu    sync.Mutex
	calls []string
	ch    chan string
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan string, 16)}
}

func (r *recorder) fn(path string) error {
	r.mu.Lock()
	r.calls = append(r.calls, path)
	r.mu.Unlock()
	r.ch <- path
	return nil
}

func (r *recorder) wait(t *testing.T) string {
	t.Helper()
	select {
	case p := <-r.ch:
		return p
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for rebuild")
		return ""
	}
}

func startWatcher(t *testing.T, paths []string, fn Func) {
	t.Helper()
	w, err := New(paths, 20*time.Millisecond, fn, logging.Discard())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestWatcher_RebuildsOnWrite(t *testing.T) {
	dir := t.TempDir()
	plan := filepath.Join(dir, "plan.txt")
	if err := os.WriteFile(plan, []byte("title: A\n"), 0644); err != nil {
		t.Fatalf("failed to write plan: %v", err)
	}

	rec := newRecorder()
	startWatcher(t, []string{plan}, rec.fn)

	if err := os.WriteFile(plan, []byte("title: B\n"), 0644); err != nil {
		t.Fatalf("failed to update plan: %v", err)
	}

	got := rec.wait(t)
	want, _ := filepath.Abs(plan)
	if got != want {
		t.Errorf("rebuilt %q, want %q", got, want)
	}
}

func TestWatcher_IgnoresOtherFilesAndUnchangedContent(t *testing.T) {
	dir := t.TempDir()
	plan := filepath.Join(dir, "plan.txt")
	if err := os.WriteFile(plan, []byte("title: A\n"), 0644); err != nil {
		t.Fatalf("failed to write plan: %v", err)
	}

	rec := newRecorder()
	startWatcher(t, []string{plan}, rec.fn)

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write other file: %v", err)
	}
	if err := os.WriteFile(plan, []byte("title: A\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite plan: %v", err)
	}

	select {
	case p := <-rec.ch:
		t.Fatalf("unexpected rebuild of %q", p)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(nil, 0, func(string) error { return nil }, logging.Discard()); err == nil {
		t.Error("expected error for empty path list")
	}

	missing := filepath.Join(t.TempDir(), "gone", "plan.txt")
	if _, err := New([]string{missing}, 0, func(string) error { return nil }, logging.Discard()); err == nil {
		t.Error("expected error for missing directory")
	}
}
