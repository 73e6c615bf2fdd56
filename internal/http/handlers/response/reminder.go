package response

import (
	"beatwatch/internal/core/domain/beat"
	"beatwatch/internal/core/domain/reminder"
	"time"
)

type Event struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Mode         string     `json:"mode"`
	StartDate    string     `json:"start_date,omitempty"`
	StartTime    string     `json:"start_time,omitempty"`
	SwatchTime   *float64   `json:"swatch_time,omitempty"`
	ReminderTime *time.Time `json:"reminder_time"`
	Beats        *string    `json:"beats"`
	State        string     `json:"state"`
	Dismissed    bool       `json:"dismissed"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (e *Event) FromDomainType(ev reminder.Event, state reminder.State) {
	e.ID = int64(ev.ID)
	e.Title = ev.Title
	e.Description = ev.Description
	e.Mode = ev.Mode.String()
	e.StartDate = ev.StartDate
	e.StartTime = ev.StartTime
	if ev.SwatchTime.IsPresent {
		e.SwatchTime = &ev.SwatchTime.Value
	}
	if ev.ReminderTime.IsPresent {
		e.ReminderTime = &ev.ReminderTime.Value
		beats := beat.FormatCentibeats(beat.ToBeats(ev.ReminderTime.Value))
		e.Beats = &beats
	}
	e.State = state.String()
	e.Dismissed = ev.Dismissed
	e.CreatedAt = ev.CreatedAt
}

type QueueEntry struct {
	Event         Event     `json:"event"`
	Acknowledged  bool      `json:"acknowledged"`
	DueObservedAt time.Time `json:"due_observed_at"`
}

func (e *QueueEntry) FromDomainType(entry reminder.QueueEntry) {
	state := reminder.StateDueActive
	if entry.Event.Dismissed {
		state = reminder.StateDismissed
	}
	e.Event.FromDomainType(entry.Event, state)
	e.Acknowledged = entry.Acknowledged
	e.DueObservedAt = entry.DueObservedAt
}
