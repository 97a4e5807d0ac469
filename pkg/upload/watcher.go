package upload

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
)

// DropWatcher reports files appearing in a drop directory. Files created in
// the directory surface on Files one at a time; created subdirectories are
// expanded through ScanDir.
type DropWatcher struct {
	dir     string
	watcher *fsnotify.Watcher
	files   chan File
	errs    chan error
	done    chan struct{}
}

// WatchDir starts watching dir for dropped files.
func WatchDir(dir string) (*DropWatcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("upload: watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("upload: watch %s: not a directory", dir)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("upload: start watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("upload: watch %s: %w", dir, err)
	}

	dw := &DropWatcher{
		dir:     dir,
		watcher: watcher,
		files:   make(chan File, 16),
		errs:    make(chan error, 4),
		done:    make(chan struct{}),
	}
	go dw.loop()
	return dw, nil
}

// Dir returns the watched directory.
func (dw *DropWatcher) Dir() string {
	return dw.dir
}

// Files delivers dropped files. The channel closes when the watcher stops.
func (dw *DropWatcher) Files() <-chan File {
	return dw.files
}

// Errors delivers watcher failures. Receivers should log and keep going; a
// failed event never invalidates previously delivered files.
func (dw *DropWatcher) Errors() <-chan error {
	return dw.errs
}

// Close stops the watcher and closes Files.
func (dw *DropWatcher) Close() error {
	select {
	case <-dw.done:
		return nil
	default:
	}
	close(dw.done)
	return dw.watcher.Close()
}

func (dw *DropWatcher) loop() {
	defer close(dw.files)
	for {
		select {
		case <-dw.done:
			return
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Create) {
				continue
			}
			dw.emit(event.Name)
		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			dw.report(err)
		}
	}
}

func (dw *DropWatcher) emit(path string) {
	info, err := os.Stat(path)
	if err != nil {
		dw.report(fmt.Errorf("upload: dropped path %s: %w", path, err))
		return
	}
	if info.IsDir() {
		files, err := ScanDir(path)
		if err != nil {
			dw.report(err)
			return
		}
		for _, f := range files {
			dw.send(f)
		}
		return
	}
	f, err := FromPath(path)
	if err != nil {
		dw.report(err)
		return
	}
	dw.send(f)
}

func (dw *DropWatcher) send(f File) {
	select {
	case dw.files <- f:
	case <-dw.done:
	}
}

func (dw *DropWatcher) report(err error) {
	select {
	case dw.errs <- err:
	default:
	}
}
