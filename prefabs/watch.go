package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
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
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isSpecFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// TuningReloader re-reads the tuning file whenever the disk copy changes.
type TuningReloader struct {
	watcher *Watcher
	logger  *log.Logger
	lastMod time.Time
}

// WatchTuning starts watching the disk override directory.
func WatchTuning() (*TuningReloader, error) {
	w, err := NewWatcher(diskDir)
	if err != nil {
		return nil, err
	}
	r := &TuningReloader{watcher: w, logger: log.WithPrefix("prefabs")}
	r.lastMod, _ = ModTime(TuningFile)
	return r, nil
}

// Poll returns fresh tuning if the file changed since the last call. It
// never blocks.
func (r *TuningReloader) Poll() (Tuning, bool) {
	if r == nil || r.watcher == nil {
		return Tuning{}, false
	}
	changed := false
drain:
	for {
		select {
		case name := <-r.watcher.Events:
			if filepath.Base(name) == TuningFile {
				changed = true
			}
		case err := <-r.watcher.Errors:
			r.logger.Warn("watch error", "err", err)
		default:
			break drain
		}
	}
	if !changed {
		return Tuning{}, false
	}
	// Editors often write twice per save; skip events that leave the
	// file's mtime where it was.
	if mt, ok := ModTime(TuningFile); ok {
		if !mt.After(r.lastMod) {
			r.logger.Debug("tuning unchanged", "mtime", mt)
			return Tuning{}, false
		}
		r.lastMod = mt
	}
	t, err := LoadTuning()
	if err != nil {
		r.logger.Error("reload tuning", "err", err)
		return Tuning{}, false
	}
	r.logger.Info("tuning reloaded")
	return t, true
}

func (r *TuningReloader) Close() error {
	if r == nil || r.watcher == nil {
		return nil
	}
	return r.watcher.Close()
}
