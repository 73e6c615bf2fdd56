package reminder

import (
	"sort"
	"time"
)

// Partition splits non-dismissed events into due and upcoming. An event is
// due iff its trigger instant is set and has passed; everything else,
// including events that never compiled, is upcoming.
func Partition(events []Event, now time.Time) (due []Event, upcoming []Event) {
	for _, ev := range events {
		if ev.Dismissed {
			continue
		}
		if ev.IsDue(now) {
			due = append(due, ev)
		} else {
			upcoming = append(upcoming, ev)
		}
	}
	SortDue(due)
	SortUpcoming(upcoming)
	return due, upcoming
}

// SortDue orders most recently due first.
func SortDue(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].ReminderTime.Value.After(events[j].ReminderTime.Value)
	})
}

// SortUpcoming orders soonest first; events without a trigger instant sort
// to the end.
func SortUpcoming(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.ReminderTime.IsPresent != b.ReminderTime.IsPresent {
			return a.ReminderTime.IsPresent
		}
		if !a.ReminderTime.IsPresent {
			return a.ID < b.ID
		}
		return a.ReminderTime.Value.Before(b.ReminderTime.Value)
	})
}
