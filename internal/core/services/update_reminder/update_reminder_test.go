package updatereminder

import (
	c "beatwatch/internal/core/domain/common"
	"beatwatch/internal/core/domain/logging"
	"beatwatch/internal/core/domain/reminder"
	"beatwatch/internal/core/services"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var Now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger  *logging.FakeLogger
	store   *reminder.TestEventStore
	service services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.store = reminder.NewTestEventStore()
	suite.service = New(
		suite.logger,
		suite.store,
		"UTC",
		func() time.Time { return Now },
	)
}

func TestUpdateReminderService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestEditRecompilesTrigger() {
	existing := reminder.Event{
		ID:        1,
		Title:     "Old",
		Mode:      reminder.ModeStandard,
		StartDate: "2024-01-02",
		StartTime: "09:30",
	}
	existing.ReminderTime = c.NewOptional(time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC), true)
	s.store.SetEvents(existing)

	result, err := s.service.Run(
		context.Background(),
		Input{
			EventID:   1,
			Title:     "New",
			Mode:      reminder.ModeStandard,
			StartDate: "2024-01-03",
			StartTime: "10:00",
		},
	)

	s.Nil(err)
	s.Equal("New", result.Event.Title)
	s.True(result.Event.ReminderTime.IsPresent)
	s.Equal(
		time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC).UnixMilli(),
		result.Event.ReminderTime.Value.UnixMilli(),
	)
	s.Len(s.store.Saved, 1)
}

func (s *testSuite) TestEditToUnparseableClearsTrigger() {
	existing := reminder.Event{ID: 1, Mode: reminder.ModeStandard, StartDate: "2024-01-02", StartTime: "09:30"}
	existing.ReminderTime = c.NewOptional(Now, true)
	s.store.SetEvents(existing)

	result, err := s.service.Run(
		context.Background(),
		Input{EventID: 1, Mode: reminder.ModeStandard, StartDate: "garbage", StartTime: "09:30"},
	)

	s.Nil(err)
	s.False(result.Event.ReminderTime.IsPresent)
}

func (s *testSuite) TestUnknownEvent() {
	_, err := s.service.Run(context.Background(), Input{EventID: 42, Mode: reminder.ModeStandard})
	s.ErrorIs(err, reminder.ErrEventDoesNotExist)
}

func (s *testSuite) TestDismissedEventIsTerminal() {
	s.store.SetEvents(reminder.Event{ID: 1, Mode: reminder.ModeStandard, Dismissed: true})

	_, err := s.service.Run(context.Background(), Input{EventID: 1, Mode: reminder.ModeStandard})

	s.ErrorIs(err, reminder.ErrEventDismissed)
	s.Empty(s.store.Saved)
}
