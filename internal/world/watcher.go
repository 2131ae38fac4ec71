package world

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Reload carries a freshly parsed payload, or the error that prevented parsing.
type Reload struct {
	Path    string
	Payload *Payload
	Err     error
}

// Watcher reloads a payload file whenever it changes on disk.
// The directory is watched rather than the file so editors that replace files
// atomically are still seen.
type Watcher struct {
	Path    string
	Reloads <-chan Reload

	reloads  chan Reload
	done     chan struct{}
	watcher  *fsnotify.Watcher
	log      *zap.Logger
	debounce time.Duration
}

// NewWatcher creates a watcher for the payload at path.
func NewWatcher(path string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(dir, filepath.Base(abs))
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	ch := make(chan Reload, 4)
	return &Watcher{
		Path:     abs,
		Reloads:  ch,
		reloads:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
		log:      log,
		debounce: 150 * time.Millisecond,
	}, nil
}

// Start begins watching.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and waits for the loop to exit. Reloads is closed afterwards.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.reloads)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= w.debounce {
				pending = time.Time{}
				w.emit()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("payload watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) emit() {
	p, err := LoadPayloadFile(w.Path)
	r := Reload{Path: w.Path, Payload: p, Err: err}
	select {
	case w.reloads <- r:
	default:
		w.log.Debug("dropping payload reload, consumer is behind", zap.String("path", w.Path))
	}
}
