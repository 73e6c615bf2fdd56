package dismissreminder

import (
	e "beatwatch/internal/core/domain/errors"
	"beatwatch/internal/core/domain/logging"
	"beatwatch/internal/core/domain/reminder"
	"beatwatch/internal/core/services"
	"context"
)

type Input struct {
	EventID reminder.ID
}

type Result struct {
	Event reminder.Event
}

type service struct {
	log   logging.Logger
	store reminder.EventStore
	queue *reminder.ActiveQueue
}

func New(
	log logging.Logger,
	store reminder.EventStore,
	queue *reminder.ActiveQueue,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if store == nil {
		panic(e.NewNilArgumentError("store"))
	}
	if queue == nil {
		panic(e.NewNilArgumentError("queue"))
	}
	return &service{log: log, store: store, queue: queue}
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

	events[ix].Dismissed = true
	if err := s.store.Save(ctx, events); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	// Queue removal surfaces the next queued reminder, if any.
	s.queue.Dismiss(input.EventID)

	s.log.Info(ctx, "Reminder event dismissed.", logging.Entry("eventID", input.EventID))
	result.Event = events[ix]
	return result, nil
}
