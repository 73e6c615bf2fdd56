package reminder

import (
	"beatwatch/internal/core/domain/beat"
	c "beatwatch/internal/core/domain/common"
	"time"

	"github.com/golang-module/carbon/v2"
)

const (
	startDateFormat = "Y-m-d"
	startTimeFormat = "H:i"
)

// Compile derives the absolute trigger instant from an event's input fields.
// An absent result means the input could not be compiled; the event is kept
// but never triggers. Compilation happens on create and edit only, so the
// stored instant stays stable as the clock advances.
func Compile(ev Event, now time.Time, timezone string) c.Optional[time.Time] {
	switch ev.Mode {
	case ModeStandard:
		return compileStandard(ev, timezone)
	case ModeBeat:
		return compileBeat(ev, now)
	}
	return c.Optional[time.Time]{}
}

func compileStandard(ev Event, timezone string) c.Optional[time.Time] {
	if ev.StartDate == "" || ev.StartTime == "" {
		return c.Optional[time.Time]{}
	}
	parsed := carbon.ParseByFormat(
		ev.StartDate+" "+ev.StartTime,
		startDateFormat+" "+startTimeFormat,
		timezone,
	)
	if parsed.Error != nil {
		return c.Optional[time.Time]{}
	}
	return c.NewOptional(parsed.Carbon2Time(), true)
}

// compileBeat finds the next future occurrence of the target beat value.
// The reference day for the beat-to-instant mapping is the current calendar
// date in BMT; if the target beat has already passed today, the reminder is
// scheduled for tomorrow's occurrence.
func compileBeat(ev Event, now time.Time) c.Optional[time.Time] {
	if !ev.SwatchTime.IsPresent {
		return c.Optional[time.Time]{}
	}
	target := ev.SwatchTime.Value
	if target < 0 || target >= beat.BeatsPerDay {
		return c.Optional[time.Time]{}
	}
	at := beat.FromBeats(now, target)
	if !at.After(now) {
		at = beat.FromBeats(now.In(beat.Location).AddDate(0, 0, 1), target)
	}
	return c.NewOptional(at, true)
}
