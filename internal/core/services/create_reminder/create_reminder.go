package createreminder

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

	now := s.now()
	ev := reminder.Event{
		ID:          allocateID(events, now),
		Title:       input.Title,
		Description: input.Description,
		Mode:        input.Mode,
		StartDate:   input.StartDate,
		StartTime:   input.StartTime,
		SwatchTime:  input.SwatchTime,
		CreatedAt:   now,
	}
	if err := ev.Validate(); err != nil {
		return result, err
	}
	// Compilation failure is not an error: the event is kept without a
	// trigger instant and simply never becomes due.
	ev.ReminderTime = reminder.Compile(ev, now, s.timezone)

	events = append(events, ev)
	if err := s.store.Save(ctx, events); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("event", ev))
		return result, err
	}

	s.log.Info(
		ctx,
		"Reminder event successfully created.",
		logging.Entry("eventID", ev.ID),
		logging.Entry("mode", ev.Mode),
		logging.Entry("reminderTime", ev.ReminderTime),
	)
	result.Event = ev
	return result, nil
}

// allocateID assigns the creation timestamp in unix milliseconds, bumped
// past any existing ID so two creations within the same millisecond still
// get distinct, monotonic IDs.
func allocateID(events []reminder.Event, now time.Time) reminder.ID {
	id := reminder.ID(now.UnixMilli())
	for _, ev := range events {
		if ev.ID >= id {
			id = ev.ID + 1
		}
	}
	return id
}
