package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk and delivers the result on
// Events. Configs that fail to load or validate are reported on Errors instead; the
// consumer keeps its previous config. Reloaded configs are meant to be applied on the
// frame thread by whoever drains Events.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	Events  chan *Config
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher starts watching the config file at path. The parent directory is watched so
// editors that save by renaming a temporary file are picked up.
//
// Parameters:
//   - path: the config file to watch
//
// Returns:
//   - *Watcher: the running watcher
//   - error: error if the watch cannot be established
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		path:    abs,
		watcher: w,
		Events:  make(chan *Config, 4),
		Errors:  make(chan error, 4),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher and closes Events and Errors.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	// Editors often write a file in several steps; reload once things settle.
	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			pending = time.After(reloadDebounce)
		case <-pending:
			pending = nil
			cfg, err := read(w.path)
			if errors.Is(err, os.ErrNotExist) {
				// Renamed away mid-save; the Create that follows triggers the reload.
				continue
			}
			if err != nil {
				log.Printf("[Config] reload of %s rejected: %v", w.path, err)
				deliver(w.closeCh, w.Errors, err)
				continue
			}
			log.Printf("[Config] reloaded %s", w.path)
			deliver(w.closeCh, w.Events, cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			deliver(w.closeCh, w.Errors, err)
		case <-w.closeCh:
			return
		}
	}
}

// deliver sends v unless the watcher is closing.
func deliver[T any](closeCh <-chan struct{}, ch chan<- T, v T) {
	select {
	case ch <- v:
	case <-closeCh:
	}
}
