package deletereminder

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
}

func (suite *testSuite) SetupTest() {
	suite.log = logging.NewFakeLogger()
	suite.store = reminder.NewTestEventStore(
		reminder.TestEvent(reminder.ID(1), Now.Add(time.Hour)),
		reminder.TestEvent(reminder.ID(2), Now.Add(2*time.Hour)),
	)
}

func TestDeleteReminderService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestDeleteRemovesEvent() {
	service := New(s.log, s.store)

	_, err := service.Run(context.Background(), Input{EventID: reminder.ID(1)})

	s.Nil(err)
	events, err := s.store.Load(context.Background())
	s.Nil(err)
	s.Require().Len(events, 1)
	s.Equal(reminder.ID(2), events[0].ID)
}

func (s *testSuite) TestDeleteUnknownEvent() {
	service := New(s.log, s.store)

	_, err := service.Run(context.Background(), Input{EventID: reminder.ID(42)})

	s.ErrorIs(err, reminder.ErrEventDoesNotExist)
	s.Empty(s.store.Saved)
}
