package descriptor

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestShouldProcess(t *testing.T) {
	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "/d/a.stcs", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/d/a.XML", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/d/a.yaml", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "/d/a.stcs", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/d/.a.stcs.swp", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/d/.a.stcs", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/d/readme.md", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		if got := shouldProcess(tt.event); got != tt.want {
			t.Errorf("shouldProcess(%v) = %v, want %v", tt.event, got, tt.want)
		}
	}
}

func TestDebouncer_CoalescesTriggers(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { calls.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(150 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("callback ran %d times, want 1", got)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	d.Trigger(func() { calls.Add(1) })
	time.Sleep(80 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Errorf("callback ran %d times after Stop, want 0", got)
	}
}

func TestFileWatcher_StopWithoutWatch(t *testing.T) {
	fw, err := NewFileWatcher(t.TempDir(), 10*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher() error = %v", err)
	}
	if err := fw.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}
