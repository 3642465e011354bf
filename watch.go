package tiled

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher evicts cache entries of a ResourceManager when the files behind
// them change on disk, so editors and hot-reloading games pick up edited
// tilesets and templates on their next load.
type Watcher struct {
	watcher *fsnotify.Watcher
	// Evicted receives the cache key of every entry that was dropped.
	Evicted chan string
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

type forgetter interface {
	Forget(key string) bool
}

// Watch starts watching dirs and evicting changed files from rm.
// The watched directories are operating system paths; they should be the
// manager's base path or directories below it.
func (rm *ResourceManager[I]) Watch(dirs ...string) (*Watcher, error) {
	return newWatcher(rm, dirs)
}

func newWatcher(cache forgetter, dirs []string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Evicted: make(chan string, 16),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run(cache)
	return watcher, nil
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Evicted)
	})
	return err
}

func (w *Watcher) run(cache forgetter) {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			key := filepath.ToSlash(filepath.Clean(event.Name))
			if !cache.Forget(key) {
				continue
			}
			Logger().Debug("tiled: evicted changed file", "path", key)
			select {
			case w.Evicted <- key:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			Logger().Warn("tiled: watcher error", "err", err)
		case <-w.closeCh:
			return
		}
	}
}
