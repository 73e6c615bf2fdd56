// Package poller drives the reminder scheduling state machine. A fixed
// 1-second ticker scans an in-memory snapshot of the reminder list and
// promotes due events; the snapshot is replaced wholesale whenever the
// store reports a change, so the tick itself never performs I/O.
package poller

import (
	e "beatwatch/internal/core/domain/errors"
	"beatwatch/internal/core/domain/logging"
	"beatwatch/internal/core/domain/reminder"
	"beatwatch/internal/core/services"
	dispatchreminder "beatwatch/internal/core/services/dispatch_reminder"
	"context"
	"sync"
	"time"
)

const DefaultInterval = time.Second

type Poller struct {
	log      logging.Logger
	store    reminder.EventStore
	queue    *reminder.ActiveQueue
	dispatch services.Service[dispatchreminder.Input, dispatchreminder.Result]
	now      func() time.Time
	interval time.Duration

	lock     sync.RWMutex
	snapshot []reminder.Event
}

func New(
	log logging.Logger,
	store reminder.EventStore,
	queue *reminder.ActiveQueue,
	dispatch services.Service[dispatchreminder.Input, dispatchreminder.Result],
	now func() time.Time,
	interval time.Duration,
) *Poller {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if store == nil {
		panic(e.NewNilArgumentError("store"))
	}
	if queue == nil {
		panic(e.NewNilArgumentError("queue"))
	}
	if dispatch == nil {
		panic(e.NewNilArgumentError("dispatch"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		log:      log,
		store:    store,
		queue:    queue,
		dispatch: dispatch,
		now:      now,
		interval: interval,
	}
}

// Run blocks until ctx is cancelled. All durable state lives in the store;
// cancelling only discards the transient queue, which is rebuilt from the
// store on the next start.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.Reload(ctx); err != nil {
		logging.Error(ctx, p.log, err)
		return err
	}
	if err := p.watch(ctx); err != nil {
		logging.Error(ctx, p.log, err)
		return err
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.log.Info(
		ctx,
		"Reminder poller started.",
		logging.Entry("intervalSeconds", p.interval.Seconds()),
	)
	for {
		select {
		case <-ctx.Done():
			p.log.Info(ctx, "Reminder poller stopped.")
			return nil
		case <-ticker.C:
			p.Tick(ctx, p.now())
		}
	}
}

// Tick evaluates one scan. Promotion into the active queue and the dispatch
// call happen together, so an event observed due by overlapping ticks still
// fires at most once.
func (p *Poller) Tick(ctx context.Context, now time.Time) {
	promoted := p.queue.Scan(p.events(), now)
	for _, ev := range promoted {
		// Dispatch errors are already degraded inside the service; a
		// failure for one event never stops the rest.
		if _, err := p.dispatch.Run(ctx, dispatchreminder.Input{Event: ev}); err != nil {
			logging.Error(ctx, p.log, err, logging.Entry("eventID", ev.ID))
		}
	}
	if len(promoted) > 0 {
		p.log.Info(
			ctx,
			"Reminders became due.",
			logging.Entry("count", len(promoted)),
			logging.Entry("queueLen", p.queue.Len()),
		)
	}
}

// Reload replaces the snapshot from the store and reconciles the queue
// against it.
func (p *Poller) Reload(ctx context.Context) error {
	events, err := p.store.Load(ctx)
	if err != nil {
		return err
	}
	p.lock.Lock()
	p.snapshot = events
	p.lock.Unlock()
	p.queue.Reconcile(events)
	return nil
}

func (p *Poller) watch(ctx context.Context) error {
	changes, err := p.store.Watch(ctx)
	if err != nil {
		return err
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				// A reload failure keeps the previous snapshot.
				if err := p.Reload(ctx); err != nil {
					logging.Error(ctx, p.log, err)
				}
			}
		}
	}()
	return nil
}

func (p *Poller) events() []reminder.Event {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return p.snapshot
}
