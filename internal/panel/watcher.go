package panel

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"repolens.dev/repolens/internal/git"
)

// refreshDebounceDelay coalesces the burst of filesystem events a single git
// operation produces into one refresh.
const refreshDebounceDelay = 350 * time.Millisecond

// Watcher observes the .git directory and notifies the panel server when the
// repository changes on disk.
type Watcher struct {
	watcher  *fsnotify.Watcher
	onChange func()

	mu    sync.Mutex
	timer *time.Timer
	done  chan struct{}
}

// NewWatcher starts watching the repository behind repo, invoking onChange
// (debounced) whenever HEAD, the index, or any ref changes.
func NewWatcher(repo *git.Repo, onChange func()) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}

	w := &Watcher{
		watcher:  fsWatcher,
		onChange: onChange,
		done:     make(chan struct{}),
	}

	for _, path := range watchPaths(repo.Root()) {
		slog.Debug("watching path", slog.String("path", path))
		if err := fsWatcher.Add(path); err != nil {
			_ = fsWatcher.Close()
			return nil, fmt.Errorf("watch %s: %w", path, err)
		}
	}

	go w.loop()
	return w, nil
}

// watchPaths returns the .git locations whose changes mean the repository
// state the panel shows is stale.
func watchPaths(root string) []string {
	gitDir := filepath.Join(root, ".git")
	paths := []string{gitDir}

	for _, sub := range []string{
		filepath.Join(gitDir, "refs", "heads"),
		filepath.Join(gitDir, "refs", "remotes"),
	} {
		if info, err := os.Stat(sub); err == nil && info.IsDir() {
			paths = append(paths, sub)
		}
	}
	// Remote-tracking refs live one level deeper (refs/remotes/<name>)
	remotesDir := filepath.Join(gitDir, "refs", "remotes")
	if entries, err := os.ReadDir(remotesDir); err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				paths = append(paths, filepath.Join(remotesDir, entry.Name()))
			}
		}
	}
	return paths
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if relevantEvent(event) {
				w.scheduleRefresh()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Debug("watcher error", slog.Any("error", err))
		}
	}
}

// relevantEvent filters out noise like lock files appearing and disappearing
// mid-operation; the write of HEAD, index, or a ref is what matters.
func relevantEvent(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if filepath.Ext(name) == ".lock" {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

func (w *Watcher) scheduleRefresh() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(refreshDebounceDelay, w.onChange)
}

// Close stops watching and cancels any pending refresh
func (w *Watcher) Close() error {
	close(w.done)
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
