// Package configstore owns the live AppConfig. It applies typed updates,
// persists after every mutation and fans changes out to subscribers.
//
// The store mirrors an informer cache: state lives in memory, writers go
// through update operations, readers take copies via Snapshot and listen on
// a channel for changes.
package configstore

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"tableflip.dev/smartboard/pkg/board"
	"tableflip.dev/smartboard/pkg/store"
)

// ErrDisposed is returned by updates after Dispose.
var ErrDisposed = errors.New("configstore: store disposed")

// Persistence is the durable storage the store writes through to.
type Persistence interface {
	Save(cfg board.AppConfig) error
	Load() (board.AppConfig, error)
	Clear() error
}

// Origin says where a change came from.
type Origin int

const (
	// OriginLocal is an update made through this store.
	OriginLocal Origin = iota
	// OriginExternal is a config written by another process and reloaded.
	OriginExternal
	// OriginReset is an explicit reset to defaults.
	OriginReset
)

func (o Origin) String() string {
	switch o {
	case OriginLocal:
		return "local"
	case OriginExternal:
		return "external"
	case OriginReset:
		return "reset"
	}
	return "unknown"
}

// Change is delivered to subscribers after every mutation. Component is empty
// for top-level updates, resets and reloads.
type Change struct {
	Component board.ComponentName
	Config    board.AppConfig
	Origin    Origin
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the wall clock used to stamp updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for persistence warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPersistence writes every mutation through to p.
func WithPersistence(p Persistence) Option {
	return func(s *Store) { s.persistence = p }
}

// Store holds the canonical configuration.
type Store struct {
	mu  sync.RWMutex
	cfg board.AppConfig

	persistence Persistence
	now         func() time.Time
	log         *slog.Logger

	subs     map[int]chan Change
	nextSub  int
	disposed bool
}

// New creates a store seeded with initial.
func New(initial board.AppConfig, opts ...Option) *Store {
	s := &Store{
		cfg:  initial,
		now:  time.Now,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		subs: make(map[int]chan Change),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a store from the record in p, falling back to defaults when
// nothing usable is stored. Subsequent mutations are written back to p.
func Open(p Persistence, opts ...Option) *Store {
	s := New(board.AppConfig{}, append([]Option{WithPersistence(p)}, opts...)...)

	cfg, err := p.Load()
	switch {
	case err == nil:
		s.cfg = cfg
		return s
	case errors.Is(err, store.ErrNotFound):
		s.log.Debug("no saved config, using defaults")
	case errors.Is(err, store.ErrInvalidRecord):
		s.log.Warn("discarding invalid saved config", slog.Any("err", err))
	default:
		s.log.Warn("failed to load saved config", slog.Any("err", err))
	}
	s.cfg = board.Defaults(s.stamp(time.Time{}))
	return s
}

// Snapshot returns a copy of the current configuration.
func (s *Store) Snapshot() board.AppConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// UpdateConfig shallow-merges patch into the configuration.
func (s *Store) UpdateConfig(patch board.ConfigPatch) error {
	return s.mutate("", OriginLocal, func(cfg *board.AppConfig) error {
		cfg.Merge(patch)
		return nil
	})
}

// UpdateComponent merges patch into the named component and leaves every
// other component untouched.
func (s *Store) UpdateComponent(name board.ComponentName, patch board.ComponentPatch) error {
	return s.mutate(name, OriginLocal, func(cfg *board.AppConfig) error {
		return cfg.Components.Apply(name, patch)
	})
}

// UpdateClock is UpdateComponent for the clock.
func (s *Store) UpdateClock(patch board.ClockPatch) error {
	return s.UpdateComponent(board.Clock, patch)
}

// UpdateMessage is UpdateComponent for the message.
func (s *Store) UpdateMessage(patch board.MessagePatch) error {
	return s.UpdateComponent(board.Message, patch)
}

// UpdateCountdownTimer is UpdateComponent for the countdown timer.
func (s *Store) UpdateCountdownTimer(patch board.CountdownTimerPatch) error {
	return s.UpdateComponent(board.CountdownTimer, patch)
}

// UpdateDayOfWeek is UpdateComponent for the day of week.
func (s *Store) UpdateDayOfWeek(patch board.DayOfWeekPatch) error {
	return s.UpdateComponent(board.DayOfWeek, patch)
}

// Reset restores defaults while keeping the configuration's identity, wipes
// the durable record and saves the defaults in its place.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return ErrDisposed
	}

	next := board.Defaults(s.stamp(s.cfg.UpdatedAt))
	if s.cfg.ID != "" {
		next.ID = s.cfg.ID
	}
	if s.cfg.UserID != "" {
		next.UserID = s.cfg.UserID
	}
	if !s.cfg.CreatedAt.IsZero() {
		next.CreatedAt = s.cfg.CreatedAt
	}
	s.cfg = next

	if s.persistence != nil {
		if err := s.persistence.Clear(); err != nil {
			s.log.Warn("failed to clear saved config", slog.Any("err", err))
		}
	}
	s.persistLocked()
	s.notifyLocked(Change{Config: s.cfg, Origin: OriginReset})
	return nil
}

// Replace adopts cfg when it is newer than the current configuration. It is
// used for records written by another process and is not persisted again.
func (s *Store) Replace(cfg board.AppConfig) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed || !cfg.UpdatedAt.After(s.cfg.UpdatedAt) {
		return false
	}
	s.cfg = cfg
	s.notifyLocked(Change{Config: s.cfg, Origin: OriginExternal})
	return true
}

// Reload reads the durable record and adopts it when newer.
func (s *Store) Reload() bool {
	if s.persistence == nil {
		return false
	}
	cfg, err := s.persistence.Load()
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Warn("failed to reload saved config", slog.Any("err", err))
		}
		return false
	}
	return s.Replace(cfg)
}

// Subscribe registers for change notifications. Delivery never blocks the
// writer: a subscriber that falls behind misses intermediate changes and
// should read Snapshot for the latest state. Call cancel to unsubscribe.
func (s *Store) Subscribe() (<-chan Change, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Change, 16)
	if s.disposed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

// Dispose closes every subscription. Later updates return ErrDisposed.
func (s *Store) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.disposed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *Store) mutate(component board.ComponentName, origin Origin, fn func(*board.AppConfig) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return ErrDisposed
	}

	next := s.cfg
	if err := fn(&next); err != nil {
		return err
	}
	next.UpdatedAt = s.stamp(s.cfg.UpdatedAt)
	s.cfg = next

	s.persistLocked()
	s.notifyLocked(Change{Component: component, Config: s.cfg, Origin: origin})
	return nil
}

// stamp returns the wall clock, nudged forward so it is strictly after prev.
func (s *Store) stamp(prev time.Time) time.Time {
	now := s.now().Round(0)
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}

// persistLocked writes the current config. Failure only costs durability.
func (s *Store) persistLocked() {
	if s.persistence == nil {
		return
	}
	if err := s.persistence.Save(s.cfg); err != nil {
		s.log.Warn("failed to persist config, keeping in-memory copy", slog.Any("err", err))
	}
}

func (s *Store) notifyLocked(c Change) {
	for _, ch := range s.subs {
		select {
		case ch <- c:
		default:
		}
	}
}
