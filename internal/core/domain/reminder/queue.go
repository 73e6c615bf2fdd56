package reminder

import (
	"sync"
	"time"
)

// QueueEntry is an event that became due and has not been dismissed yet.
// Acknowledged is transient: the user has seen the reminder but wants to
// keep it around.
type QueueEntry struct {
	Event         Event
	Acknowledged  bool
	DueObservedAt time.Time
}

// ActiveQueue holds due reminders in the order they were first observed due.
// An event enters the queue at most once per due transition; entries leave
// only through dismissal or removal from the store. The presented entry is
// the oldest unacknowledged one.
//
// Dismissed IDs are remembered until a store snapshot confirms the
// dismissal, because the scanner may keep working against a snapshot that
// predates the dismissal write.
type ActiveQueue struct {
	lock      sync.Mutex
	entries   []QueueEntry
	dismissed map[ID]struct{}
}

func NewActiveQueue() *ActiveQueue {
	return &ActiveQueue{dismissed: make(map[ID]struct{})}
}

// Scan promotes newly due events and returns them in queue order. The check
// and the append happen under one lock so overlapping scans can never
// promote the same event twice.
func (q *ActiveQueue) Scan(events []Event, now time.Time) []Event {
	q.lock.Lock()
	defer q.lock.Unlock()

	var promoted []Event
	for _, ev := range events {
		if !ev.IsDue(now) {
			continue
		}
		if _, ok := q.dismissed[ev.ID]; ok {
			continue
		}
		if q.has(ev.ID) {
			continue
		}
		q.entries = append(q.entries, QueueEntry{Event: ev, DueObservedAt: now})
		promoted = append(promoted, ev)
	}
	return promoted
}

// Reconcile drops entries whose event no longer exists in the given store
// snapshot, or has been dismissed there. An empty snapshot clears the queue
// entirely. Dismissal tombstones whose IDs the snapshot confirms dismissed
// (or no longer contains) are released.
func (q *ActiveQueue) Reconcile(events []Event) {
	q.lock.Lock()
	defer q.lock.Unlock()

	if len(events) == 0 {
		q.entries = nil
		q.dismissed = make(map[ID]struct{})
		return
	}
	alive := make(map[ID]struct{}, len(events))
	for _, ev := range events {
		if !ev.Dismissed {
			alive[ev.ID] = struct{}{}
		}
	}
	kept := q.entries[:0]
	for _, entry := range q.entries {
		if _, ok := alive[entry.Event.ID]; ok {
			kept = append(kept, entry)
		}
	}
	q.entries = kept
	for id := range q.dismissed {
		if _, ok := alive[id]; !ok {
			delete(q.dismissed, id)
		}
	}
}

// Acknowledge marks the entry as seen without removing it; presentation
// advances to the next unacknowledged entry.
func (q *ActiveQueue) Acknowledge(id ID) bool {
	q.lock.Lock()
	defer q.lock.Unlock()

	for ix := range q.entries {
		if q.entries[ix].Event.ID == id {
			q.entries[ix].Acknowledged = true
			return true
		}
	}
	return false
}

// Dismiss removes the entry from the queue and records a tombstone so
// scans over a snapshot that predates the dismissal cannot re-promote the
// event. The caller is responsible for persisting the dismissal in the
// store.
func (q *ActiveQueue) Dismiss(id ID) bool {
	q.lock.Lock()
	defer q.lock.Unlock()

	q.dismissed[id] = struct{}{}
	for ix := range q.entries {
		if q.entries[ix].Event.ID == id {
			q.entries = append(q.entries[:ix], q.entries[ix+1:]...)
			return true
		}
	}
	return false
}

// Current returns the presented entry: the oldest unacknowledged one.
func (q *ActiveQueue) Current() (QueueEntry, bool) {
	q.lock.Lock()
	defer q.lock.Unlock()

	for _, entry := range q.entries {
		if !entry.Acknowledged {
			return entry, true
		}
	}
	return QueueEntry{}, false
}

// Entries returns a copy of the queue in first-observed-due order.
func (q *ActiveQueue) Entries() []QueueEntry {
	q.lock.Lock()
	defer q.lock.Unlock()

	entries := make([]QueueEntry, len(q.entries))
	copy(entries, q.entries)
	return entries
}

func (q *ActiveQueue) Len() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return len(q.entries)
}

func (q *ActiveQueue) Has(id ID) bool {
	q.lock.Lock()
	defer q.lock.Unlock()
	return q.has(id)
}

func (q *ActiveQueue) has(id ID) bool {
	for _, entry := range q.entries {
		if entry.Event.ID == id {
			return true
		}
	}
	return false
}

// StateOf derives the scheduling state of an event relative to this queue.
func (q *ActiveQueue) StateOf(ev Event, now time.Time) State {
	if ev.Dismissed {
		return StateDismissed
	}
	q.lock.Lock()
	_, dismissed := q.dismissed[ev.ID]
	q.lock.Unlock()
	if dismissed {
		return StateDismissed
	}
	if q.Has(ev.ID) {
		return StateDueActive
	}
	if ev.IsDue(now) {
		return StateDueUnseen
	}
	return StatePending
}
