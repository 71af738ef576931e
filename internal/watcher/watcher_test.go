// file: internal/watcher/watcher_test.go
// version: 1.2.0
// guid: d4e5f6a7-b8c9-d0e1-f2a3-b4c5d6e7f890

package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// collector gathers settled-folder callbacks.
type collector struct {
	mu      sync.Mutex
	folders []string
	notify  chan string
}

func newCollector() *collector {
	return &collector{notify: make(chan string, 16)}
}

func (c *collector) callback(folder string) {
	c.mu.Lock()
	c.folders = append(c.folders, folder)
	c.mu.Unlock()
	c.notify <- folder
}

func (c *collector) wait(t *testing.T, timeout time.Duration) string {
	t.Helper()
	select {
	case f := <-c.notify:
		return f
	case <-time.After(timeout):
		t.Fatal("timed out waiting for settle callback")
		return ""
	}
}

func TestWatcherExistingFolderPickedUp(t *testing.T) {
	inbox := t.TempDir()
	show := filepath.Join(inbox, "1995-12-31 show")
	if err := os.MkdirAll(show, 0o755); err != nil {
		t.Fatal(err)
	}

	c := newCollector()
	w := New(c.callback, 50*time.Millisecond)
	if err := w.Start(inbox); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if got := c.wait(t, 5*time.Second); got != show {
		t.Errorf("settled %q, want %q", got, show)
	}
}

func TestWatcherNewFolderSettles(t *testing.T) {
	inbox := t.TempDir()

	c := newCollector()
	w := New(c.callback, 50*time.Millisecond)
	if err := w.Start(inbox); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	show := filepath.Join(inbox, "incoming show")
	if err := os.MkdirAll(show, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(show, "d1t01.flac"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := c.wait(t, 5*time.Second); got != show {
		t.Errorf("settled %q, want %q", got, show)
	}
}

func TestWatcherInfoFileWriteKeepsFolderUnsettled(t *testing.T) {
	inbox := t.TempDir()

	c := newCollector()
	w := New(c.callback, 300*time.Millisecond)
	if err := w.Start(inbox); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	show := filepath.Join(inbox, "incoming show")
	if err := os.MkdirAll(show, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(show, "d1t01.flac"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Keep a non-audio info file busy well past the settle window. Every
	// write must push the folder's timer back.
	info := filepath.Join(show, "notes.txt")
	for i := 0; i < 8; i++ {
		time.Sleep(100 * time.Millisecond)
		if err := os.WriteFile(info, []byte("still copying"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case f := <-c.notify:
		t.Fatalf("folder %q settled while the info file was still being written", f)
	default:
	}

	if got := c.wait(t, 5*time.Second); got != show {
		t.Errorf("settled %q, want %q", got, show)
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	w := New(nil, 10*time.Millisecond)
	if err := w.Start(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
}

func TestTopLevelFolder(t *testing.T) {
	w := &Watcher{inboxDir: filepath.Join("/", "inbox")}
	cases := []struct {
		path string
		want string
	}{
		{filepath.Join("/", "inbox", "show"), filepath.Join("/", "inbox", "show")},
		{filepath.Join("/", "inbox", "show", "disc1", "t1.flac"), filepath.Join("/", "inbox", "show")},
		{filepath.Join("/", "inbox"), ""},
		{filepath.Join("/", "elsewhere", "x"), ""},
		{filepath.Join("/", "inbox", ".hidden"), ""},
	}
	for _, tc := range cases {
		if got := w.topLevelFolder(tc.path); got != tc.want {
			t.Errorf("topLevelFolder(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestIsAudioFile(t *testing.T) {
	for _, name := range []string{"a.flac", "b.MP3", "c.shn", "d.wav"} {
		if !IsAudioFile(name) {
			t.Errorf("IsAudioFile(%q) = false", name)
		}
	}
	for _, name := range []string{"notes.txt", "cover.jpg", "no-ext"} {
		if IsAudioFile(name) {
			t.Errorf("IsAudioFile(%q) = true", name)
		}
	}
}
