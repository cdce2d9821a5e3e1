package confloader

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/yndnr/tankmate-go/internal/telemetry/logger"
)

// Watcher reports changes to a single configuration file.
//
// The parent directory is watched so editors that replace the file by
// rename are still noticed.
type Watcher struct {
	fsw       *fsnotify.Watcher
	path      string
	log       logger.Logger
	mu        sync.RWMutex
	callbacks []func(path string)
	done      chan struct{}
	stopOnce  sync.Once
}

// NewWatcher watches path. The file itself does not need to exist yet.
func NewWatcher(path string, log logger.Logger) (*Watcher, error) {
	if log == nil {
		log = logger.Nop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return &Watcher{
		fsw:  fsw,
		path: abs,
		log:  log,
		done: make(chan struct{}),
	}, nil
}

// OnChange registers fn to run after each write to the file.
func (w *Watcher) OnChange(fn func(path string)) {
	w.mu.Lock()
	w.callbacks = append(w.callbacks, fn)
	w.mu.Unlock()
}

// Run delivers events until Stop is called.
func (w *Watcher) Run() {
	w.log.Debug("config watcher started", "path", w.path)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug("config file changed", "path", ev.Name, "op", ev.Op.String())
			w.notify()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher error", "error", err)
		case <-w.done:
			return
		}
	}
}

// Start runs the watcher in a goroutine.
func (w *Watcher) Start() {
	go w.Run()
}

// Stop ends delivery. It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

func (w *Watcher) notify() {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, fn := range w.callbacks {
		fn(w.path)
	}
}
