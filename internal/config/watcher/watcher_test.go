package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newWatcher(t *testing.T, opts ...Option) *Watcher {
	t.Helper()
	w, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case e := <-w.Events():
		return e
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestNew_WithOptions(t *testing.T) {
	w := newWatcher(t, WithDebounce(50*time.Millisecond), WithBufferSize(4))

	if w.debounce != 50*time.Millisecond {
		t.Errorf("debounce = %v, want 50ms", w.debounce)
	}
	if cap(w.events) != 4 {
		t.Errorf("buffer = %d, want 4", cap(w.events))
	}
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestWatcher_WatchUnwatch(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "chart.toml")
	b := filepath.Join(dir, "data.json")
	w := newWatcher(t)

	for _, p := range []string{a, b, a} {
		if err := w.Watch(p); err != nil {
			t.Fatalf("Watch(%s): %v", p, err)
		}
	}
	if got := w.WatchedFiles(); len(got) != 2 {
		t.Errorf("WatchedFiles = %v, want 2 files", got)
	}
	if w.dirs[dir] != 2 {
		t.Errorf("dir refs = %d, want 2", w.dirs[dir])
	}

	if err := w.Unwatch(a); err != nil {
		t.Fatalf("Unwatch: %v", err)
	}
	if got := w.WatchedFiles(); len(got) != 1 || got[0] != b {
		t.Errorf("WatchedFiles = %v, want [%s]", got, b)
	}
}

func TestWatcher_WatchMissingDir(t *testing.T) {
	w := newWatcher(t)
	if err := w.Watch(filepath.Join(t.TempDir(), "missing", "chart.toml")); err == nil {
		t.Error("Watch accepted a file in a missing directory")
	}
}

func TestWatcher_DetectsCreateAndWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	w := newWatcher(t, WithDebounce(0))

	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := waitEvent(t, w)
	if e.Path != path {
		t.Errorf("Path = %s, want %s", e.Path, path)
	}
	if e.Op != OpCreate && e.Op != OpWrite {
		t.Errorf("Op = %s, want create or write", e.Op)
	}
}

func TestWatcher_DebounceCoalesces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.yaml")
	if err := os.WriteFile(path, []byte("a: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w := newWatcher(t, WithDebounce(200*time.Millisecond))
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("a: 2\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	e := waitEvent(t, w)
	if e.Op != OpWrite {
		t.Errorf("Op = %s, want write", e.Op)
	}
	select {
	case extra := <-w.Events():
		t.Errorf("unexpected second event %+v", extra)
	case <-time.After(600 * time.Millisecond):
	}
}

func TestWatcher_QueueEvent(t *testing.T) {
	tests := []struct {
		name string
		ops  []Operation
		want Operation
	}{
		{"create then write", []Operation{OpCreate, OpWrite}, OpCreate},
		{"writes", []Operation{OpWrite, OpWrite}, OpWrite},
		{"write then remove", []Operation{OpWrite, OpRemove}, OpRemove},
		{"replaced on save", []Operation{OpRemove, OpCreate, OpWrite}, OpCreate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWatcher(t, WithDebounce(time.Hour))
			start := time.Now()
			for i, op := range tt.ops {
				w.queueEvent(Event{Path: "/x", Op: op, Time: start.Add(time.Duration(i) * time.Millisecond)})
			}
			if got := w.pending["/x"].Op; got != tt.want {
				t.Errorf("coalesced op = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestWatcher_Close(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := w.Watch("x"); err != ErrWatcherClosed {
		t.Errorf("Watch after Close = %v, want ErrWatcherClosed", err)
	}
	if _, ok := <-w.Events(); ok {
		t.Error("events channel still open")
	}
}
