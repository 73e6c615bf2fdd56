package listreminders

import (
	e "beatwatch/internal/core/domain/errors"
	"beatwatch/internal/core/domain/logging"
	"beatwatch/internal/core/domain/reminder"
	"beatwatch/internal/core/services"
	"context"
	"time"
)

type Input struct{}

type Result struct {
	// Due is ordered most recently due first, Upcoming soonest first with
	// never-compiling events at the end.
	Due      []reminder.Event
	Upcoming []reminder.Event
	States   map[reminder.ID]reminder.State
}

type service struct {
	log   logging.Logger
	store reminder.EventStore
	queue *reminder.ActiveQueue
	now   func() time.Time
}

func New(
	log logging.Logger,
	store reminder.EventStore,
	queue *reminder.ActiveQueue,
	now func() time.Time,
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
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{log: log, store: store, queue: queue, now: now}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	events, err := s.store.Load(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	now := s.now()
	result.Due, result.Upcoming = reminder.Partition(events, now)
	result.States = make(map[reminder.ID]reminder.State, len(events))
	for _, ev := range events {
		result.States[ev.ID] = s.queue.StateOf(ev, now)
	}
	return result, nil
}
