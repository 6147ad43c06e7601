package engine

import "time"

// TimerHandle identifies a scheduled callback. The zero handle is never issued.
type TimerHandle struct {
	id uint64
}

func (h TimerHandle) IsValid() bool {
	return h.id != 0
}

type timerEntry struct {
	id  uint64
	due float64
	fn  func()
}

// Timers runs one-shot delayed callbacks on the game clock. Time only moves
// when Advance is called from a tick, so callbacks always run on the tick
// goroutine. Callbacks may schedule or cancel other timers.
type Timers struct {
	now     float64
	nextID  uint64
	pending []timerEntry
}

// After schedules fn to run once delay of game time has passed.
func (t *Timers) After(delay time.Duration, fn func()) TimerHandle {
	if fn == nil {
		return TimerHandle{}
	}
	t.nextID++
	t.pending = append(t.pending, timerEntry{
		id:  t.nextID,
		due: t.now + delay.Seconds(),
		fn:  fn,
	})
	return TimerHandle{id: t.nextID}
}

// Cancel removes a pending callback. Returns false if it already fired or
// was never scheduled.
func (t *Timers) Cancel(h TimerHandle) bool {
	if h.id == 0 {
		return false
	}
	for i, e := range t.pending {
		if e.id == h.id {
			t.pending = append(t.pending[:i], t.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Pending reports whether h is still waiting to fire.
func (t *Timers) Pending(h TimerHandle) bool {
	for _, e := range t.pending {
		if e.id == h.id {
			return true
		}
	}
	return false
}

// Advance moves the clock forward and fires every callback that is due,
// earliest first (ties by scheduling order).
func (t *Timers) Advance(deltaTime float32) {
	if deltaTime > 0 {
		t.now += float64(deltaTime)
	}
	for {
		idx := -1
		for i, e := range t.pending {
			if e.due > t.now {
				continue
			}
			if idx < 0 || e.due < t.pending[idx].due {
				idx = i
			}
		}
		if idx < 0 {
			return
		}
		e := t.pending[idx]
		t.pending = append(t.pending[:idx], t.pending[idx+1:]...)
		e.fn()
	}
}
