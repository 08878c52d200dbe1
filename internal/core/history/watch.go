package history

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports when another process rewrites a JSONFile.
type Watcher struct {
	watcher *fsnotify.Watcher
	file    *JSONFile
	log     *slog.Logger
	changes chan struct{}
	done    chan struct{}
}

// Watch starts watching the directory holding file. Writes made through file
// itself are not reported.
func Watch(file *JSONFile, log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// the file is replaced by rename, so watch its directory
	if err := fw.Add(filepath.Dir(file.Path())); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		file:    file,
		log:     log,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.processEvents()
	return w, nil
}

// Changes delivers one value per burst of external modifications.
// It is closed when the watcher stops.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) processEvents() {
	defer close(w.done)
	defer close(w.changes)

	target := filepath.Clean(w.file.Path())
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.file.Stale() {
				continue
			}
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("history watch error", "err", err)
		}
	}
}
