package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventConfigChanged indicates the config record was written, possibly by
	// another process.
	EventConfigChanged EventType = iota

	// EventConfigRemoved indicates the config record was erased.
	EventConfigRemoved
)

func (t EventType) String() string {
	switch t {
	case EventConfigChanged:
		return "changed"
	case EventConfigRemoved:
		return "removed"
	}
	return fmt.Sprintf("event(%d)", int(t))
}

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type EventType
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid blocking the watcher. The channel is closed once
// ctx is done or the watcher encounters an unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			_ = watcher.Close()
		})
	}

	if err := watcher.Add(p.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	record := filepath.Join(filepath.Clean(p.basePath), ConfigKey)
	events := make(chan Event, 16)

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// The consumer re-reads the whole record on any event, so a
				// dropped duplicate loses nothing.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Surface watcher errors as a change so clients re-read.
				throttle.Enqueue(Event{Type: EventConfigChanged}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != record {
					continue
				}
				switch {
				case evt.Op&fsnotify.Remove == fsnotify.Remove:
					throttle.Enqueue(Event{Type: EventConfigRemoved}, send)
				case evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0:
					throttle.Enqueue(Event{Type: EventConfigChanged}, send)
				}
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces rapid change notifications so a burst of writes
// (a drag persists on every pointer move) produces one reload.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]struct{}
	order   []EventType
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if _, ok := t.pending[ev.Type]; !ok {
		t.pending[ev.Type] = struct{}{}
		t.order = append(t.order, ev.Type)
	}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	order := t.order
	t.pending = make(map[EventType]struct{})
	t.order = nil
	t.timer = nil
	t.mu.Unlock()

	for _, eventType := range order {
		send(Event{Type: eventType})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
