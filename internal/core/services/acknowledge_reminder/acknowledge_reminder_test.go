package acknowledgereminder

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
	queue *reminder.ActiveQueue
}

func (suite *testSuite) SetupTest() {
	suite.log = logging.NewFakeLogger()
	suite.queue = reminder.NewActiveQueue()
}

func TestAcknowledgeReminderService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestAcknowledgeActiveEvent() {
	first := reminder.TestEvent(reminder.ID(1), Now.Add(-time.Minute))
	second := reminder.TestEvent(reminder.ID(2), Now.Add(-time.Second))
	s.queue.Scan([]reminder.Event{first, second}, Now)
	service := New(s.log, s.queue)

	_, err := service.Run(context.Background(), Input{EventID: reminder.ID(1)})

	s.Nil(err)
	// The entry stays queued; presentation advances to the next one.
	s.Equal(2, s.queue.Len())
	current, ok := s.queue.Current()
	s.True(ok)
	s.Equal(reminder.ID(2), current.Event.ID)
}

func (s *testSuite) TestAcknowledgeUnknownEvent() {
	service := New(s.log, s.queue)

	_, err := service.Run(context.Background(), Input{EventID: reminder.ID(1)})

	s.ErrorIs(err, reminder.ErrEventNotActive)
}
