package poller

import (
	"beatwatch/internal/core/domain/logging"
	"beatwatch/internal/core/domain/reminder"
	dismissreminder "beatwatch/internal/core/services/dismiss_reminder"
	dispatchreminder "beatwatch/internal/core/services/dispatch_reminder"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var Now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type fakeDispatcher struct {
	lock       sync.Mutex
	Dispatched []reminder.Event
}

func (d *fakeDispatcher) Run(
	ctx context.Context,
	input dispatchreminder.Input,
) (dispatchreminder.Result, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.Dispatched = append(d.Dispatched, input.Event)
	return dispatchreminder.Result{Delivered: true}, nil
}

type testSuite struct {
	suite.Suite
	logger     *logging.FakeLogger
	store      *reminder.TestEventStore
	queue      *reminder.ActiveQueue
	dispatcher *fakeDispatcher
	poller     *Poller
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.store = reminder.NewTestEventStore()
	suite.queue = reminder.NewActiveQueue()
	suite.dispatcher = &fakeDispatcher{}
	suite.poller = New(
		suite.logger,
		suite.store,
		suite.queue,
		suite.dispatcher,
		func() time.Time { return Now },
		time.Second,
	)
}

func TestPoller(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestTickPromotesAndDispatchesOnce() {
	ev := reminder.TestEvent(1, Now.Add(-time.Minute))
	s.store.SetEvents(ev)
	s.Nil(s.poller.Reload(context.Background()))

	s.poller.Tick(context.Background(), Now)
	s.poller.Tick(context.Background(), Now)
	s.poller.Tick(context.Background(), Now.Add(time.Second))

	s.Len(s.dispatcher.Dispatched, 1)
	s.Equal(reminder.ID(1), s.dispatcher.Dispatched[0].ID)
	s.Equal(1, s.queue.Len())
}

func (s *testSuite) TestFirstObservedDueOrder() {
	// A becomes due in an earlier tick than B, although B's nominal
	// trigger instant is earlier.
	a := reminder.TestEvent(1, Now.Add(-time.Minute))
	b := reminder.TestEvent(2, Now.Add(-time.Hour))
	s.store.SetEvents(a)
	s.Nil(s.poller.Reload(context.Background()))
	s.poller.Tick(context.Background(), Now)

	s.store.SetEvents(a, b)
	s.Nil(s.poller.Reload(context.Background()))
	s.poller.Tick(context.Background(), Now.Add(time.Second))

	entries := s.queue.Entries()
	s.Require().Len(entries, 2)
	s.Equal(reminder.ID(1), entries[0].Event.ID)
	s.Equal(reminder.ID(2), entries[1].Event.ID)
	s.Require().Len(s.dispatcher.Dispatched, 2)
	s.Equal(reminder.ID(1), s.dispatcher.Dispatched[0].ID)
}

func (s *testSuite) TestTwoEventsDueInSameTickKeepCreationOrder() {
	a := reminder.TestEvent(1, Now.Add(-time.Second))
	b := reminder.TestEvent(2, Now.Add(-time.Minute))
	s.store.SetEvents(a, b)
	s.Nil(s.poller.Reload(context.Background()))

	s.poller.Tick(context.Background(), Now)

	entries := s.queue.Entries()
	s.Require().Len(entries, 2)
	s.Equal(reminder.ID(1), entries[0].Event.ID)
	s.Equal(reminder.ID(2), entries[1].Event.ID)
}

func (s *testSuite) TestExternalRemovalReconciled() {
	a := reminder.TestEvent(1, Now.Add(-time.Minute))
	b := reminder.TestEvent(2, Now.Add(-time.Minute))
	s.store.SetEvents(a, b)
	s.Nil(s.poller.Reload(context.Background()))
	s.poller.Tick(context.Background(), Now)
	s.Equal(2, s.queue.Len())

	// Another execution context deletes A and saves the shrunk list.
	s.store.SetEvents(b)
	s.Nil(s.poller.Reload(context.Background()))

	s.Equal(1, s.queue.Len())
	current, ok := s.queue.Current()
	s.Require().True(ok)
	s.Equal(reminder.ID(2), current.Event.ID)
}

func (s *testSuite) TestEmptyStoreClearsQueue() {
	ev := reminder.TestEvent(1, Now.Add(-time.Minute))
	s.store.SetEvents(ev)
	s.Nil(s.poller.Reload(context.Background()))
	s.poller.Tick(context.Background(), Now)
	s.Equal(1, s.queue.Len())

	s.store.SetEvents()
	s.Nil(s.poller.Reload(context.Background()))

	s.Equal(0, s.queue.Len())
	_, ok := s.queue.Current()
	s.False(ok)
}

func (s *testSuite) TestUncompiledEventsAreInert() {
	s.store.SetEvents(reminder.Event{ID: 1, Mode: reminder.ModeStandard, Title: "never"})
	s.Nil(s.poller.Reload(context.Background()))

	for i := 0; i < 10; i++ {
		s.poller.Tick(context.Background(), Now.Add(time.Duration(i)*time.Second))
	}

	s.Empty(s.dispatcher.Dispatched)
	s.Equal(0, s.queue.Len())
}

func (s *testSuite) TestTickAfterDismissalKeepsQueueClear() {
	ev := reminder.TestEvent(1, Now.Add(-time.Minute))
	s.store.SetEvents(ev)
	s.Nil(s.poller.Reload(context.Background()))
	s.poller.Tick(context.Background(), Now)
	s.Equal(1, s.queue.Len())

	dismiss := dismissreminder.New(s.logger, s.store, s.queue)
	_, err := dismiss.Run(context.Background(), dismissreminder.Input{EventID: 1})
	s.Nil(err)

	// The store notification has not been consumed yet, so the next tick
	// still scans the snapshot that predates the dismissal.
	s.poller.Tick(context.Background(), Now.Add(time.Second))

	s.Equal(0, s.queue.Len())
	s.Len(s.dispatcher.Dispatched, 1)
}

func (s *testSuite) TestRunReactsToStoreNotifications() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Nil(s.poller.Run(ctx))
	}()

	ev := reminder.TestEvent(1, Now.Add(-time.Minute))
	s.store.SetEvents(ev)
	s.store.Notify()

	s.Eventually(
		func() bool { return len(s.poller.events()) == 1 },
		time.Second,
		10*time.Millisecond,
	)

	cancel()
	<-done
}
