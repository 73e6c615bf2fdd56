package sendreminder

import (
	e "beatwatch/internal/core/domain/errors"
	"beatwatch/internal/core/domain/logging"
	"beatwatch/internal/core/domain/reminder"
	"beatwatch/internal/core/services"
	"context"
)

type Input struct {
	Event reminder.Event
}

type Result struct {
	Delivered bool
}

// service fans a due reminder out to the system-level notification
// surfaces. Surfaces without granted permission are skipped and failures
// degrade to "not delivered" instead of propagating to the caller.
type service struct {
	log     logging.Logger
	senders []reminder.Sender
}

func New(log logging.Logger, senders ...reminder.Sender) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	for _, sender := range senders {
		if sender == nil {
			panic(e.NewNilArgumentError("sender"))
		}
	}
	return &service{log: log, senders: senders}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	for _, sender := range s.senders {
		permission := sender.Permission(ctx)
		if permission != reminder.PermissionGranted {
			s.log.Debug(
				ctx,
				"Notification surface skipped.",
				logging.Entry("eventID", input.Event.ID),
				logging.Entry("permission", permission),
			)
			continue
		}
		if err := sender.SendReminder(ctx, input.Event); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("eventID", input.Event.ID))
			continue
		}
		result.Delivered = true
	}

	s.log.Info(
		ctx,
		"Due reminder processed by notification surfaces.",
		logging.Entry("eventID", input.Event.ID),
		logging.Entry("delivered", result.Delivered),
	)
	return result, nil
}
