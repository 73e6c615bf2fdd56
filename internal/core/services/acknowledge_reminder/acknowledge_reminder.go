package acknowledgereminder

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
	queue *reminder.ActiveQueue
}

func New(log logging.Logger, queue *reminder.ActiveQueue) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if queue == nil {
		panic(e.NewNilArgumentError("queue"))
	}
	return &service{log: log, queue: queue}
}

// Run marks the queued reminder as seen. The flag is transient: nothing is
// persisted, and the entry stays in the queue until dismissed.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if !s.queue.Acknowledge(input.EventID) {
		return result, reminder.ErrEventNotActive
	}
	s.log.Info(ctx, "Reminder event acknowledged.", logging.Entry("eventID", input.EventID))
	return result, nil
}
