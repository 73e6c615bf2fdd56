package listreminders

import (
	"beatwatch/internal/core/domain/logging"
	"beatwatch/internal/core/domain/reminder"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var Now time.Time = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	log   *logging.FakeLogger
	store *reminder.TestEventStore
	queue *reminder.ActiveQueue
}

func (suite *testSuite) SetupTest() {
	suite.log = logging.NewFakeLogger()
	suite.store = reminder.NewTestEventStore()
	suite.queue = reminder.NewActiveQueue()
}

func TestListRemindersService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestPartitionsAndStates() {
	dueOld := reminder.TestEvent(reminder.ID(1), Now.Add(-2*time.Hour))
	dueNew := reminder.TestEvent(reminder.ID(2), Now.Add(-time.Minute))
	upcoming := reminder.TestEvent(reminder.ID(3), Now.Add(time.Hour))
	dismissed := reminder.TestEvent(reminder.ID(4), Now.Add(-time.Hour))
	dismissed.Dismissed = true
	s.store.SetEvents(dueOld, dueNew, upcoming, dismissed)
	s.queue.Scan([]reminder.Event{dueOld}, Now)

	service := New(s.log, s.store, s.queue, func() time.Time { return Now })
	result, err := service.Run(context.Background(), Input{})

	s.Nil(err)
	// Due is most recently due first, dismissed events are absent.
	s.Require().Len(result.Due, 2)
	s.Equal(reminder.ID(2), result.Due[0].ID)
	s.Equal(reminder.ID(1), result.Due[1].ID)
	s.Require().Len(result.Upcoming, 1)
	s.Equal(reminder.ID(3), result.Upcoming[0].ID)

	s.Equal(reminder.StateDueActive, result.States[reminder.ID(1)])
	s.Equal(reminder.StateDueUnseen, result.States[reminder.ID(2)])
	s.Equal(reminder.StatePending, result.States[reminder.ID(3)])
	s.Equal(reminder.StateDismissed, result.States[reminder.ID(4)])
}

func (s *testSuite) TestStoreError() {
	s.store.LoadError = context.DeadlineExceeded
	service := New(s.log, s.store, s.queue, func() time.Time { return Now })

	_, err := service.Run(context.Background(), Input{})

	s.NotNil(err)
}
