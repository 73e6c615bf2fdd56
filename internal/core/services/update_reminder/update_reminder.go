package updatereminder

import (
	c "beatwatch/internal/core/domain/common"
	e "beatwatch/internal/core/domain/errors"
	"beatwatch/internal/core/domain/logging"
	"beatwatch/internal/core/domain/reminder"
	"beatwatch/internal/core/services"
	"context"
	"time"
)

type Input struct {
	EventID     reminder.ID
	Title       string
	Description string
	Mode        reminder.Mode
	StartDate   string
	StartTime   string
	SwatchTime  c.Optional[float64]
}

type Result struct {
	Event reminder.Event
}

type service struct {
	log      logging.Logger
	store    reminder.EventStore
	timezone string
	now      func() time.Time
}

func New(
	log logging.Logger,
	store reminder.EventStore,
	timezone string,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if store == nil {
		panic(e.NewNilArgumentError("store"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{log: log, store: store, timezone: timezone, now: now}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	events, err := s.store.Load(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	ix := -1
	for i := range events {
		if events[i].ID == input.EventID {
			ix = i
			break
		}
	}
	if ix < 0 {
		return result, reminder.ErrEventDoesNotExist
	}
	if events[ix].Dismissed {
		// Dismissal is terminal.
		return result, reminder.ErrEventDismissed
	}

	ev := events[ix]
	ev.Title = input.Title
	ev.Description = input.Description
	ev.Mode = input.Mode
	ev.StartDate = input.StartDate
	ev.StartTime = input.StartTime
	ev.SwatchTime = input.SwatchTime
	if err := ev.Validate(); err != nil {
		return result, err
	}
	// An explicit edit is the only thing that recompiles the trigger
	// instant.
	ev.ReminderTime = reminder.Compile(ev, s.now(), s.timezone)
	events[ix] = ev

	if err := s.store.Save(ctx, events); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("event", ev))
		return result, err
	}

	s.log.Info(
		ctx,
		"Reminder event successfully updated.",
		logging.Entry("eventID", ev.ID),
		logging.Entry("reminderTime", ev.ReminderTime),
	)
	result.Event = ev
	return result, nil
}
