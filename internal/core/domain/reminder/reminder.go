package reminder

import (
	c "beatwatch/internal/core/domain/common"
	e "beatwatch/internal/core/domain/errors"
	"fmt"
	"time"
)

type ID int64

// Event is the persisted reminder entity. The trigger input is either a
// wall-clock date and time (standard mode) or a target beat value (beat
// mode); ReminderTime is the compiled absolute instant and is absent when
// the input could not be compiled. Such events never trigger.
type Event struct {
	ID          ID
	Title       string
	Description string
	Mode        Mode

	// Standard mode input, "2006-01-02" and "15:04".
	StartDate string
	StartTime string

	// Beat mode input, target beat value in [0, 1000).
	SwatchTime c.Optional[float64]

	ReminderTime c.Optional[time.Time]
	Dismissed    bool
	CreatedAt    time.Time
}

func (ev *Event) Validate() error {
	if ev.Mode == ModeUnknown {
		return e.NewInvalidStateError("event mode is not set")
	}
	if ev.Mode == ModeBeat && ev.StartDate != "" {
		return e.NewInvalidStateError("beat mode event must not have a start date")
	}
	if ev.Mode == ModeStandard && ev.SwatchTime.IsPresent {
		return e.NewInvalidStateError("standard mode event must not have a beat value")
	}
	return nil
}

// IsDue reports whether the event's trigger instant has passed. Dismissed
// events are terminal and never due.
func (ev *Event) IsDue(now time.Time) bool {
	return !ev.Dismissed && ev.ReminderTime.IsPresent && !ev.ReminderTime.Value.After(now)
}

// NotificationTag is the idempotency key for system-level notification
// delivery. Surfaces that coalesce by tag will never show the same event
// twice.
func (ev *Event) NotificationTag() string {
	return fmt.Sprintf("reminder-%d", ev.ID)
}
