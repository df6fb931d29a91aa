package famdef

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/paramspace/errors"
	"github.com/teranos/paramspace/logger"
)

// Watcher watches a definition file for changes and rebuilds its types,
// debouncing rapid writes.
type Watcher struct {
	path           string
	watcher        *fsnotify.Watcher
	callbacks      []ReloadCallback
	mu             sync.RWMutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
}

// ReloadCallback receives the freshly built type set after a reload.
type ReloadCallback func(*Set) error

// NewWatcher creates a watcher over one definition file.
func NewWatcher(path string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating fsnotify watcher")
	}

	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "watching definition file %s", path)
	}

	return &Watcher{
		path:           path,
		watcher:        watcher,
		debouncePeriod: 500 * time.Millisecond,
	}, nil
}

// OnReload registers a callback to run after each successful rebuild.
func (w *Watcher) OnReload(callback ReloadCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching for definition file changes.
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop stops watching.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				logger.Debugw("Definition watcher detected change",
					logger.FieldFile, event.Name,
					"op", event.Op.String())
				w.scheduleReload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("Definition watcher error",
				logger.FieldError, err)
		}
	}
}

// scheduleReload debounces rapid file changes and triggers a rebuild.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, func() {
		if err := w.reload(); err != nil {
			logger.Errorw("Definition reload failed",
				logger.FieldFile, w.path,
				logger.FieldError, err)
		}
	})
}

func (w *Watcher) reload() error {
	file, err := Load(w.path)
	if err != nil {
		return err
	}
	set, err := Build(file)
	if err != nil {
		return err
	}

	logger.Infow("Definitions reloaded",
		logger.FieldFile, w.path,
		logger.FieldCount, set.Len())

	w.mu.RLock()
	callbacks := make([]ReloadCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	for _, callback := range callbacks {
		if err := callback(set); err != nil {
			logger.Warnw("Definition reload callback error",
				logger.FieldError, err)
		}
	}
	return nil
}
