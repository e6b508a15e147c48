// Package assets watches shader source files and reports which programs
// need recompiling when their sources change on disk.
package assets

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/bitzhuwei/OpenGL-Renderer/engine/config"
	"github.com/bitzhuwei/OpenGL-Renderer/engine/core"
)

// ShaderWatcher maps watched shader source paths back to the programs built
// from them. Change notifications are funneled into a channel of program
// names; the engine drains it on the context thread, since recompiling is a
// GL operation.
type ShaderWatcher struct {
	mutex    sync.RWMutex
	fsnotify *fsnotify.Watcher
	programs map[string][]string // absolute source path -> program names
	changed  chan string
	done     chan struct{}
	isClosed bool
}

func NewShaderWatcher(cfg *config.Config) (*ShaderWatcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &ShaderWatcher{
		fsnotify: fsWatch,
		programs: make(map[string][]string),
		changed:  make(chan string, 32),
		done:     make(chan struct{}),
	}

	dirs := make(map[string]struct{})
	for _, program := range cfg.Programs {
		for _, sh := range program.Shaders {
			abs, err := filepath.Abs(sh.Path)
			if err != nil {
				w.fsnotify.Close()
				return nil, err
			}
			w.programs[abs] = append(w.programs[abs], program.Name)
			dirs[filepath.Dir(abs)] = struct{}{}
		}
	}
	// Watch directories rather than files: editors replace files on save,
	// which drops per-file watches.
	for dir := range dirs {
		if err := w.fsnotify.Add(dir); err != nil {
			w.fsnotify.Close()
			return nil, err
		}
	}

	return w, nil
}

// Start begins dispatching change events. Run once.
func (w *ShaderWatcher) Start() {
	go w.run()
}

// Changed yields names of programs whose sources were modified.
func (w *ShaderWatcher) Changed() <-chan string {
	return w.changed
}

func (w *ShaderWatcher) run() {
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(e.Name)
			if err != nil {
				continue
			}
			w.mutex.RLock()
			names := w.programs[abs]
			w.mutex.RUnlock()
			for _, name := range names {
				core.LogInfo("shader source %s changed, scheduling recompile of %q", e.Name, name)
				select {
				case w.changed <- name:
				default:
					// Recompile already pending; dropping the duplicate is fine.
				}
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("shader watcher: %s", err.Error())

		case <-w.done:
			return
		}
	}
}

func (w *ShaderWatcher) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.isClosed {
		return core.ErrWatcherClosed
	}
	w.isClosed = true
	close(w.done)
	return w.fsnotify.Close()
}
