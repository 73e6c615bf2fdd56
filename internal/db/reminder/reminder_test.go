package reminder

import (
	"beatwatch/internal/core/domain/common"
	"beatwatch/internal/core/domain/logging"
	"beatwatch/internal/core/domain/reminder"
	"beatwatch/internal/db"
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

var Now time.Time = time.Date(2024, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool  *pgxpool.Pool
	store *PgxEventStore
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.store = NewPgxEventStore(suite.pool, logging.NewFakeLogger())
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxEventStore(t *testing.T) {
	if os.Getenv("TEST_POSTGRESQL_URL") == "" {
		t.Skip("TEST_POSTGRESQL_URL is not set.")
	}
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestLoadEmpty() {
	events, err := s.store.Load(context.Background())

	s.Nil(err)
	s.Equal(0, len(events))
}

func (s *testSuite) TestSaveAndLoad() {
	saved := []reminder.Event{
		{
			ID:           reminder.ID(1),
			Title:        "standup",
			Description:  "daily sync",
			Mode:         reminder.ModeStandard,
			StartDate:    "2024-06-07",
			StartTime:    "10:00",
			ReminderTime: common.NewOptional(time.Date(2024, 6, 7, 10, 0, 0, 0, time.UTC), true),
			CreatedAt:    Now,
		},
		{
			ID:          reminder.ID(2),
			Title:       "beat event",
			Mode:        reminder.ModeBeat,
			SwatchTime:  common.NewOptional(500.0, true),
			Dismissed:   true,
			CreatedAt:   Now,
			Description: "",
		},
	}
	err := s.store.Save(context.Background(), saved)
	s.Nil(err)

	loaded, err := s.store.Load(context.Background())

	s.Nil(err)
	s.Require().Equal(2, len(loaded))
	s.Equal(reminder.ID(1), loaded[0].ID)
	s.Equal("standup", loaded[0].Title)
	s.Equal(reminder.ModeStandard, loaded[0].Mode)
	s.True(loaded[0].ReminderTime.IsPresent)
	s.True(loaded[0].ReminderTime.Value.Equal(time.Date(2024, 6, 7, 10, 0, 0, 0, time.UTC)))
	s.False(loaded[0].Dismissed)
	s.Equal(reminder.ID(2), loaded[1].ID)
	s.Equal(reminder.ModeBeat, loaded[1].Mode)
	s.True(loaded[1].SwatchTime.IsPresent)
	s.Equal(500.0, loaded[1].SwatchTime.Value)
	s.False(loaded[1].ReminderTime.IsPresent)
	s.True(loaded[1].Dismissed)
}

func (s *testSuite) TestSaveReplacesWholeList() {
	err := s.store.Save(context.Background(), []reminder.Event{
		{ID: reminder.ID(1), Mode: reminder.ModeStandard, CreatedAt: Now},
		{ID: reminder.ID(2), Mode: reminder.ModeStandard, CreatedAt: Now},
	})
	s.Nil(err)

	err = s.store.Save(context.Background(), []reminder.Event{
		{ID: reminder.ID(3), Mode: reminder.ModeBeat, CreatedAt: Now},
	})
	s.Nil(err)

	loaded, err := s.store.Load(context.Background())

	s.Nil(err)
	s.Require().Equal(1, len(loaded))
	s.Equal(reminder.ID(3), loaded[0].ID)
}

func (s *testSuite) TestWatchSignalsOnSave() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changes, err := s.store.Watch(ctx)
	s.Require().Nil(err)

	err = s.store.Save(context.Background(), []reminder.Event{
		{ID: reminder.ID(1), Mode: reminder.ModeStandard, CreatedAt: Now},
	})
	s.Nil(err)

	select {
	case <-changes:
	case <-ctx.Done():
		s.Fail("no change signal received")
	}
}
