package dispatchreminder

import (
	e "beatwatch/internal/core/domain/errors"
	"beatwatch/internal/core/domain/logging"
	"beatwatch/internal/core/domain/reminder"
	"beatwatch/internal/core/domain/settings"
	"beatwatch/internal/core/services"
	"context"
)

type Input struct {
	Event reminder.Event
}

type Result struct {
	// Delivered reports whether a system-level notification was handed off.
	// The in-app surface is always updated regardless.
	Delivered bool
}

// service surfaces a newly due reminder exactly once. The poller calls it
// synchronously within the tick that observed the due transition; actual
// system-level delivery is asynchronous and never awaited, so a slow or
// failing surface cannot delay scheduling.
type service struct {
	log       logging.Logger
	guard     reminder.DispatchGuard
	inApp     reminder.Sender
	publisher reminder.DuePublisher
	settings  *settings.Cache
}

func New(
	log logging.Logger,
	guard reminder.DispatchGuard,
	inApp reminder.Sender,
	publisher reminder.DuePublisher,
	settingsCache *settings.Cache,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if guard == nil {
		panic(e.NewNilArgumentError("guard"))
	}
	if inApp == nil {
		panic(e.NewNilArgumentError("inApp"))
	}
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	if settingsCache == nil {
		panic(e.NewNilArgumentError("settingsCache"))
	}
	return &service{
		log:       log,
		guard:     guard,
		inApp:     inApp,
		publisher: publisher,
		settings:  settingsCache,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	tag := input.Event.NotificationTag()

	first, err := s.guard.FirstDispatch(ctx, tag)
	if err != nil {
		// The guard is advisory; when it cannot answer, dispatch and rely
		// on tag coalescing at the surface.
		logging.Error(ctx, s.log, err, logging.Entry("tag", tag))
		first = true
	}
	if !first {
		s.log.Info(ctx, "Reminder already dispatched, skipping.", logging.Entry("tag", tag))
		return result, nil
	}

	if err := s.inApp.SendReminder(ctx, input.Event); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("eventID", input.Event.ID))
	}

	if s.settings.Muted() {
		s.log.Info(
			ctx,
			"Reminders are muted, system-level notification suppressed.",
			logging.Entry("eventID", input.Event.ID),
		)
		return result, nil
	}
	if err := s.publisher.PublishDue(ctx, input.Event); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("eventID", input.Event.ID))
		return result, nil
	}

	s.log.Info(
		ctx,
		"Due reminder handed off for delivery.",
		logging.Entry("eventID", input.Event.ID),
		logging.Entry("tag", tag),
	)
	result.Delivered = true
	return result, nil
}
