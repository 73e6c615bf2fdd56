package deletereminder

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

type Result struct{}

type service struct {
	log   logging.Logger
	store reminder.EventStore
}

func New(log logging.Logger, store reminder.EventStore) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if store == nil {
		panic(e.NewNilArgumentError("store"))
	}
	return &service{log: log, store: store}
}

// Run removes the event from the store entirely. The poller reconciles the
// active queue on the resulting store-change notification, so deletion from
// any execution context also clears a presented reminder.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	events, err := s.store.Load(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	kept := events[:0]
	for _, ev := range events {
		if ev.ID != input.EventID {
			kept = append(kept, ev)
		}
	}
	if len(kept) == len(events) {
		return result, reminder.ErrEventDoesNotExist
	}

	if err := s.store.Save(ctx, kept); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(ctx, "Reminder event deleted.", logging.Entry("eventID", input.EventID))
	return result, nil
}
