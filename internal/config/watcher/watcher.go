// Package watcher reports changes to individual files, such as chart option
// and data files, for live re-rendering.
//
// Files are watched through their parent directory so that editors which
// replace a file on save (write to a temp file, then rename) keep producing
// events. Bursts of events for one file are coalesced over a debounce window
// and delivered in order on a single channel.
package watcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when using a closed watcher.
var ErrWatcherClosed = errors.New("watcher is closed")

// Event represents a file change event.
type Event struct {
	// Path is the absolute path to the changed file.
	Path string

	// Op is the operation that triggered the event.
	Op Operation

	// Time is when the last coalesced change was seen.
	Time time.Time
}

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota

	// OpCreate indicates a new file was created.
	OpCreate

	// OpRemove indicates the file was deleted.
	OpRemove

	// OpRename indicates the file was renamed.
	OpRename
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Watcher monitors files for changes.
type Watcher struct {
	mu sync.Mutex

	fsw *fsnotify.Watcher

	// Watched files and reference counts of their directories
	files map[string]bool
	dirs  map[string]int

	debounce time.Duration
	pending  map[string]pendingEvent

	events chan Event
	errors chan error

	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// pendingEvent stores a pending event with its operation for debouncing.
type pendingEvent struct {
	Op   Operation
	Time time.Time
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a change is delivered. Zero
// delivers every change immediately.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithBufferSize sets the capacity of the event channel.
func WithBufferSize(n int) Option {
	return func(w *Watcher) {
		if n > 0 {
			w.events = make(chan Event, n)
		}
	}
}

// New creates a watcher and starts its event loop.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]bool),
		dirs:     make(map[string]int),
		debounce: 100 * time.Millisecond,
		pending:  make(map[string]pendingEvent),
		events:   make(chan Event, 16),
		errors:   make(chan error, 16),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Watch adds a file to the watch list. The file may not exist yet, but its
// directory must.
func (w *Watcher) Watch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if w.files[absPath] {
		return nil
	}

	if w.dirs[dir] == 0 {
		if _, err := os.Stat(dir); err != nil {
			return err
		}
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.files[absPath] = true
	return nil
}

// Unwatch removes a file from the watch list.
func (w *Watcher) Unwatch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if !w.files[absPath] {
		return nil
	}

	delete(w.files, absPath)
	delete(w.pending, absPath)
	w.dirs[dir]--
	if w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		return w.fsw.Remove(dir)
	}
	return nil
}

// WatchedFiles returns the watched files, sorted.
func (w *Watcher) WatchedFiles() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	files := make([]string, 0, len(w.files))
	for path := range w.files {
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

// Events returns the channel of coalesced changes. It is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of watch errors. It is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher. Pending changes are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()
	close(w.events)
	close(w.errors)
	return w.fsw.Close()
}

// loop handles incoming fsnotify events and delivers debounced ones.
func (w *Watcher) loop() {
	defer w.wg.Done()

	var tick <-chan time.Time
	if w.debounce > 0 {
		ticker := time.NewTicker(w.debounce)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}

		case now := <-tick:
			w.flush(now)
		}
	}
}

// handle filters an fsnotify event down to the watched files.
func (w *Watcher) handle(ev fsnotify.Event) {
	op, ok := convertOp(ev.Op)
	if !ok {
		return
	}
	path := filepath.Clean(ev.Name)

	w.mu.Lock()
	watched := w.files[path]
	w.mu.Unlock()
	if !watched {
		return
	}

	event := Event{Path: path, Op: op, Time: time.Now()}
	if w.debounce == 0 {
		w.send(event)
		return
	}
	w.queueEvent(event)
}

// convertOp maps an fsnotify operation. Attribute-only changes are dropped.
func convertOp(op fsnotify.Op) (Operation, bool) {
	switch {
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	default:
		return 0, false
	}
}

// queueEvent queues an event for debounced delivery.
// It coalesces events:
// - create + write => create
// - write + write => write (latest time)
// - any + remove => remove
// - remove + create => create (file replaced on save)
func (w *Watcher) queueEvent(event Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	existing, exists := w.pending[event.Path]
	if !exists {
		w.pending[event.Path] = pendingEvent{Op: event.Op, Time: event.Time}
		return
	}

	op := event.Op
	if op == OpWrite && existing.Op == OpCreate {
		op = OpCreate
	}
	w.pending[event.Path] = pendingEvent{Op: op, Time: event.Time}
}

// flush delivers pending events that have been quiet for the debounce
// window, in path order.
func (w *Watcher) flush(now time.Time) {
	stable := now.Add(-w.debounce)

	w.mu.Lock()
	var ready []Event
	for path, p := range w.pending {
		if !p.Time.After(stable) {
			ready = append(ready, Event{Path: path, Op: p.Op, Time: p.Time})
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	sort.Slice(ready, func(i, j int) bool { return ready[i].Path < ready[j].Path })
	for _, e := range ready {
		w.send(e)
	}
}

// send blocks until the event is consumed or the watcher closes.
func (w *Watcher) send(e Event) {
	select {
	case w.events <- e:
	case <-w.closeCh:
	}
}
