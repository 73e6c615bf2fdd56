package dispatchreminder

import (
	"beatwatch/internal/core/domain/logging"
	"beatwatch/internal/core/domain/reminder"
	"beatwatch/internal/core/domain/settings"
	"beatwatch/internal/core/services"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var Now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger    *logging.FakeLogger
	guard     *reminder.TestDispatchGuard
	inApp     *reminder.TestSender
	publisher *reminder.TestDuePublisher
	settings  *settings.Cache
	service   services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.guard = reminder.NewTestDispatchGuard()
	suite.inApp = reminder.NewTestSender()
	suite.publisher = reminder.NewTestDuePublisher()
	suite.settings = settings.NewCache(settings.Settings{})
	suite.service = New(suite.logger, suite.guard, suite.inApp, suite.publisher, suite.settings)
}

func TestDispatchReminderService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestDispatchesOnce() {
	ev := reminder.TestEvent(1, Now)

	result, err := s.service.Run(context.Background(), Input{Event: ev})
	s.Nil(err)
	s.True(result.Delivered)
	s.Len(s.inApp.Sent, 1)
	s.Len(s.publisher.Published, 1)

	// Re-invocation for the same event is a no-op.
	result, err = s.service.Run(context.Background(), Input{Event: ev})
	s.Nil(err)
	s.False(result.Delivered)
	s.Len(s.inApp.Sent, 1)
	s.Len(s.publisher.Published, 1)
}

func (s *testSuite) TestMuteSuppressesSystemNotificationOnly() {
	s.settings.Replace(settings.Settings{Muted: true})
	ev := reminder.TestEvent(1, Now)

	result, err := s.service.Run(context.Background(), Input{Event: ev})

	s.Nil(err)
	s.False(result.Delivered)
	s.Len(s.inApp.Sent, 1)
	s.Empty(s.publisher.Published)
}

func (s *testSuite) TestGuardFailureDegradesToDispatching() {
	s.guard.Error = errors.New("redis down")
	ev := reminder.TestEvent(1, Now)

	result, err := s.service.Run(context.Background(), Input{Event: ev})

	s.Nil(err)
	s.True(result.Delivered)
	s.Len(s.publisher.Published, 1)
}

func (s *testSuite) TestPublisherFailureDoesNotPropagate() {
	s.publisher.Error = errors.New("amqp down")
	ev := reminder.TestEvent(1, Now)

	result, err := s.service.Run(context.Background(), Input{Event: ev})

	s.Nil(err)
	s.False(result.Delivered)
	s.Len(s.inApp.Sent, 1)
}
