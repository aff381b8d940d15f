// Package watch reports batches of added and modified source files under a
// directory tree.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// Op is the kind of change seen for a path.
type Op int

const (
	// OpCreate means the file was created.
	OpCreate Op = iota
	// OpWrite means the file was modified.
	OpWrite
	// OpRemove means the file was deleted.
	OpRemove
	// OpRename means the file was renamed away.
	OpRename
)

func (op Op) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Change is one filesystem event for a watched file.
type Change struct {
	// Path is absolute.
	Path string
	Op   Op
}

// Batch is the set of changes seen during one debounce window.
type Batch struct {
	Additions     []string
	Modifications []string
}

// Empty reports whether the batch has nothing to inspect.
func (b Batch) Empty() bool {
	return len(b.Additions) == 0 && len(b.Modifications) == 0
}

// Options configure a Watcher.
type Options struct {
	// Patterns select the files that produce changes, matched with doublestar
	// against the slash-separated path relative to the root.
	Patterns []string
	// Ignore names directories or files to skip. An entry matches a path
	// segment exactly or as a glob, or the whole relative path as a glob.
	Ignore []string
	// Debounce is how long to wait for more changes before emitting a batch.
	Debounce time.Duration
	// BufferSize is the size of the change buffer channel.
	BufferSize int
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Patterns:   []string{"**/*.js", "**/*.es6"},
		Ignore:     []string{".git", "node_modules"},
		Debounce:   200 * time.Millisecond,
		BufferSize: 1000,
	}
}

// Watcher watches a directory tree recursively.
type Watcher struct {
	root    string
	opts    Options
	watcher *fsnotify.Watcher
	onError func(error)

	changes  chan Change
	batches  chan Batch
	done     chan struct{}
	stopOnce sync.Once

	mu       sync.Mutex
	watching bool
}

// New creates a Watcher for root. Nothing is watched until Start.
func New(root string, opts Options) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving watch root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("watch root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch root %s is not a directory", abs)
	}
	for _, pattern := range opts.Patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid watch pattern %q", pattern)
		}
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = DefaultOptions().BufferSize
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	return &Watcher{
		root:    abs,
		opts:    opts,
		watcher: fw,
		changes: make(chan Change, opts.BufferSize),
		batches: make(chan Batch, 16),
		done:    make(chan struct{}),
	}, nil
}

// OnError sets a callback for errors reported by the OS watcher. It must be
// called before Start.
func (w *Watcher) OnError(fn func(error)) {
	w.onError = fn
}

// Root returns the absolute watch root.
func (w *Watcher) Root() string {
	return w.root
}

// Batches delivers debounced change batches. It is closed when the watcher stops.
func (w *Watcher) Batches() <-chan Batch {
	return w.batches
}

// Start registers the tree and begins delivering batches.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return nil
	}
	w.watching = true
	w.mu.Unlock()

	if err := w.addRecursive(w.root); err != nil {
		return fmt.Errorf("watching %s: %w", w.root, err)
	}

	go w.processEvents(ctx)
	go w.debounceLoop(ctx)
	return nil
}

// Stop releases the OS watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()

		w.mu.Lock()
		w.watching = false
		w.mu.Unlock()
	})
}

// IsWatching reports whether Start has run and Stop has not.
func (w *Watcher) IsWatching() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.watching
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Ignore errors, continue walking
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.shouldIgnore(path) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func (w *Watcher) relative(path string) (string, bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (w *Watcher) shouldIgnore(path string) bool {
	rel, ok := w.relative(path)
	if !ok {
		return true
	}
	return matchesIgnore(rel, w.opts.Ignore)
}

func (w *Watcher) matchesPatterns(path string) bool {
	rel, ok := w.relative(path)
	if !ok {
		return false
	}
	return matchesAny(rel, w.opts.Patterns)
}

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.shouldIgnore(event.Name) {
				continue
			}

			// New directories are registered so files created in them are seen.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(event.Name)
					continue
				}
			}

			if !w.matchesPatterns(event.Name) {
				continue
			}

			select {
			case w.changes <- Change{Path: event.Name, Op: convertOp(event.Op)}:
			default:
				// Buffer full; the next batch will pick up later writes.
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

func convertOp(op fsnotify.Op) Op {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate
	case op.Has(fsnotify.Write):
		return OpWrite
	case op.Has(fsnotify.Remove):
		return OpRemove
	case op.Has(fsnotify.Rename):
		return OpRename
	default:
		return OpWrite
	}
}

func (w *Watcher) debounceLoop(ctx context.Context) {
	defer close(w.batches)

	var pending []Change
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() bool {
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
		if len(pending) == 0 {
			return true
		}
		batch := Classify(pending)
		pending = nil
		if batch.Empty() {
			return true
		}
		select {
		case w.batches <- batch:
			return true
		case <-ctx.Done():
			return false
		case <-w.done:
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case change := <-w.changes:
			pending = append(pending, change)
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.opts.Debounce)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			if !flush() {
				return
			}
		}
	}
}

// Classify folds a window of changes into additions and modifications.
// A path created in the window is an addition even if it was also written.
// A path whose last change is a removal is dropped. Paths keep the order in
// which they were first seen.
func Classify(changes []Change) Batch {
	type state struct {
		created bool
		last    Op
	}
	order := []string{}
	states := map[string]*state{}

	for _, c := range changes {
		s, ok := states[c.Path]
		if !ok {
			s = &state{}
			states[c.Path] = s
			order = append(order, c.Path)
		}
		if c.Op == OpCreate {
			s.created = true
		}
		s.last = c.Op
	}

	batch := Batch{Additions: []string{}, Modifications: []string{}}
	for _, path := range order {
		s := states[path]
		switch {
		case s.last == OpRemove:
			continue
		case s.created:
			batch.Additions = append(batch.Additions, path)
		default:
			batch.Modifications = append(batch.Modifications, path)
		}
	}
	return batch
}

func matchesAny(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func matchesIgnore(rel string, ignore []string) bool {
	if rel == "." || rel == "" {
		return false
	}
	segments := strings.Split(rel, "/")
	for _, pattern := range ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		for _, seg := range segments {
			if ok, _ := doublestar.Match(pattern, seg); ok {
				return true
			}
		}
	}
	return false
}
