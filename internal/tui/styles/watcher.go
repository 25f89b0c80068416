package styles

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce collects the burst of events many editors emit for one save.
const watchDebounce = 50 * time.Millisecond

// ThemeWatcher reloads a theme file whenever it is written.
type ThemeWatcher struct {
	watcher *fsnotify.Watcher
	path    string

	onChange func(*ColorPalette)
	onError  func(error)

	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewThemeWatcher watches path. The containing directory is watched rather
// than the file so that editors which save by rename are still seen.
func NewThemeWatcher(path string, onChange func(*ColorPalette), onError func(error)) (*ThemeWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	if onError == nil {
		onError = func(error) {}
	}
	return &ThemeWatcher{
		watcher:  watcher,
		path:     abs,
		onChange: onChange,
		onError:  onError,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching for changes.
func (w *ThemeWatcher) Start() {
	go w.watchLoop()
}

// Stop stops the watcher and waits for the loop to exit. It must follow Start
// and is safe to call more than once.
func (w *ThemeWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		_ = w.watcher.Close()
	})
	<-w.done
}

func (w *ThemeWatcher) watchLoop() {
	defer close(w.done)

	debounceTimer := time.NewTimer(0)
	<-debounceTimer.C // drain initial timer

	for {
		select {
		case <-w.stopCh:
			debounceTimer.Stop()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounceTimer.Reset(watchDebounce)

		case <-debounceTimer.C:
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

func (w *ThemeWatcher) reload() {
	theme, err := LoadThemeFile(w.path)
	if err != nil {
		w.onError(err)
		return
	}
	if w.onChange != nil {
		w.onChange(theme.ToPalette())
	}
}
