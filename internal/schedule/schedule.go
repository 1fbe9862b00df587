// Package schedule provides a keyed, cancellable one-shot task scheduler.
// Scheduling under a key that already has a pending task replaces that
// task, so repeated triggers collapse to the most recent one. This is the
// debounce behavior interactive form handling relies on.
package schedule

import (
	"sync"
	"time"
)

// Handle identifies one scheduled task. It stays valid after the task
// fires or is replaced; cancelling a stale handle is a no-op.
type Handle struct {
	key string
	gen uint64
}

// Key returns the key the task was scheduled under.
func (h Handle) Key() string { return h.key }

// Scheduler runs at most one pending task per key. Tasks fire on their
// own goroutine; callers that need single-threaded execution should make
// the task hand off to their own loop.
type Scheduler struct {
	mu      sync.Mutex
	gens    map[string]uint64
	timers  map[string]*time.Timer
	stopped bool
}

// New creates an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{
		gens:   make(map[string]uint64),
		timers: make(map[string]*time.Timer),
	}
}

// Schedule runs fn after delay. If a task is already pending under the
// same key it is cancelled first; only the most recent task per key ever
// fires. The returned Handle can cancel the task while it is pending.
func (s *Scheduler) Schedule(key string, delay time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return Handle{key: key}
	}

	// Replace any pending task under this key.
	if timer, ok := s.timers[key]; ok {
		timer.Stop()
	}

	s.gens[key]++
	gen := s.gens[key]

	s.timers[key] = time.AfterFunc(delay, func() {
		s.fire(key, gen, fn)
	})

	return Handle{key: key, gen: gen}
}

// fire runs fn unless the task was replaced, cancelled or the scheduler
// stopped between the timer expiring and this call acquiring the lock.
func (s *Scheduler) fire(key string, gen uint64, fn func()) {
	s.mu.Lock()
	if s.stopped || s.gens[key] != gen {
		s.mu.Unlock()
		return
	}
	delete(s.timers, key)
	s.mu.Unlock()

	fn()
}

// Cancel stops the task identified by the handle. It reports whether a
// pending task was cancelled; a handle whose task already fired or was
// replaced returns false.
func (s *Scheduler) Cancel(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || h.gen == 0 || s.gens[h.key] != h.gen {
		return false
	}

	timer, ok := s.timers[h.key]
	if !ok {
		return false
	}
	timer.Stop()
	delete(s.timers, h.key)
	// Bump the generation so an already-expired timer cannot fire.
	s.gens[h.key]++
	return true
}

// CancelKey stops whatever task is pending under key, if any.
func (s *Scheduler) CancelKey(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return false
	}
	timer, ok := s.timers[key]
	if !ok {
		return false
	}
	timer.Stop()
	delete(s.timers, key)
	s.gens[key]++
	return true
}

// Pending reports whether a task is waiting to fire under key.
func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[key]
	return ok
}

// Stop cancels every pending task and rejects new ones. It is safe to
// call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	for key, timer := range s.timers {
		timer.Stop()
		delete(s.timers, key)
	}
}
