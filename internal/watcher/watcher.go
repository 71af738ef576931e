// file: internal/watcher/watcher.go
// version: 2.2.0
// guid: c3d4e5f6-a7b8-c9d0-e1f2-a3b4c5d6e7f8

// Package watcher monitors the inbox directory for newly dropped recording
// folders. Each folder gets its own debounce timer so a slow transfer does
// not trigger the callback before files finish landing.
package watcher

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// audioExtensions are the file extensions that mark a folder as a recording.
var audioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".m4a":  true,
	".shn":  true,
	".wav":  true,
}

// DefaultSettle is how long a folder must stay quiet before it is reported.
const DefaultSettle = 5 * time.Second

// Callback is invoked with the inbox subfolder once its contents settle.
type Callback func(folderPath string)

// Watcher monitors the inbox root for recording folders.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	inboxDir  string
	settle    time.Duration
	callback  Callback
	stop      chan struct{}
	stopped   chan struct{}
	mu        sync.Mutex
	timers    map[string]*time.Timer
	running   bool
}

// New creates a Watcher. Pass 0 for settle to use DefaultSettle.
func New(callback Callback, settle time.Duration) *Watcher {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Watcher{
		settle:   settle,
		callback: callback,
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
		timers:   make(map[string]*time.Timer),
	}
}

// Start begins watching inboxDir. Existing subfolders are scheduled
// immediately so a restart picks up anything dropped while we were down.
func (w *Watcher) Start(inboxDir string) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fsWatcher = fsw
	w.inboxDir = inboxDir

	if err := w.addRecursive(inboxDir); err != nil {
		fsw.Close()
		return err
	}

	// Pick up folders already sitting in the inbox.
	if entries, err := os.ReadDir(inboxDir); err == nil {
		for _, e := range entries {
			if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
				w.scheduleFolder(filepath.Join(inboxDir, e.Name()))
			}
		}
	}

	go w.eventLoop()
	log.Printf("[INFO] watcher: watching inbox %s", inboxDir)
	return nil
}

// Stop gracefully shuts down the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stop)
	if w.fsWatcher != nil {
		w.fsWatcher.Close()
	}
	<-w.stopped

	w.mu.Lock()
	for _, t := range w.timers {
		t.Stop()
	}
	w.timers = make(map[string]*time.Timer)
	w.mu.Unlock()
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible dirs
		}
		if d.IsDir() {
			if watchErr := w.fsWatcher.Add(path); watchErr != nil {
				log.Printf("[WARN] watcher: cannot watch %s: %v", path, watchErr)
			}
		}
		return nil
	})
}

func (w *Watcher) eventLoop() {
	defer close(w.stopped)

	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[ERROR] watcher: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.addRecursive(event.Name)
		}
	}

	relevant := event.Op&(fsnotify.Create|fsnotify.Rename|fsnotify.Write) != 0
	if !relevant {
		return
	}

	folder := w.topLevelFolder(event.Name)
	if folder == "" {
		return
	}

	// Once a folder is scheduled, any file activity keeps it unsettled; a
	// sidecar text file still copying must push the timer back just like an
	// audio file would.
	if w.resetIfScheduled(folder) {
		return
	}
	if !IsAudioFile(event.Name) {
		if info, err := os.Stat(event.Name); err != nil || !info.IsDir() {
			return
		}
	}
	w.scheduleFolder(folder)
}

// resetIfScheduled restarts folder's settle timer if one is pending.
func (w *Watcher) resetIfScheduled(folder string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[folder]; ok {
		t.Reset(w.settle)
		return true
	}
	return false
}

// topLevelFolder maps an event path to its inbox subfolder, or "" when the
// event is on the inbox root itself.
func (w *Watcher) topLevelFolder(path string) string {
	rel, err := filepath.Rel(w.inboxDir, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	parts := strings.SplitN(filepath.ToSlash(rel), "/", 2)
	if parts[0] == "" || strings.HasPrefix(parts[0], ".") {
		return ""
	}
	return filepath.Join(w.inboxDir, parts[0])
}

// scheduleFolder starts or resets the settle timer for folder.
func (w *Watcher) scheduleFolder(folder string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[folder]; ok {
		t.Reset(w.settle)
		return
	}

	w.timers[folder] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.timers, folder)
		w.mu.Unlock()

		log.Printf("[INFO] watcher: folder settled: %s", folder)
		if w.callback != nil {
			w.callback(folder)
		}
	})
}

// IsAudioFile reports whether name has a recognized audio extension.
func IsAudioFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return audioExtensions[ext]
}
