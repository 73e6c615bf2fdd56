package listreminders

import (
	c "beatwatch/internal/core/domain/common"
	"beatwatch/internal/core/domain/reminder"
	service "beatwatch/internal/core/services/list_reminders"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	result service.Result
	err    error
}

func (s *stubService) Run(ctx context.Context, input service.Input) (service.Result, error) {
	return s.result, s.err
}

func TestListRemindersHandler(t *testing.T) {
	dueEvent := reminder.Event{
		ID:           reminder.ID(1),
		Title:        "due one",
		Mode:         reminder.ModeStandard,
		StartDate:    "2024-01-01",
		StartTime:    "10:00",
		ReminderTime: c.NewOptional(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), true),
		CreatedAt:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	upcomingEvent := reminder.Event{
		ID:           reminder.ID(2),
		Title:        "upcoming one",
		Mode:         reminder.ModeBeat,
		SwatchTime:   c.NewOptional(750.0, true),
		ReminderTime: c.NewOptional(time.Date(2024, 1, 2, 17, 0, 0, 0, time.UTC), true),
		CreatedAt:    time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
	}
	stub := &stubService{
		result: service.Result{
			Due:      []reminder.Event{dueEvent},
			Upcoming: []reminder.Event{upcomingEvent},
			States: map[reminder.ID]reminder.State{
				reminder.ID(1): reminder.StateDueActive,
				reminder.ID(2): reminder.StatePending,
			},
		},
	}
	handler := New(stub)

	request := httptest.NewRequest(http.MethodGet, "/reminders", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert := assert.New(t)
	assert.Equal(http.StatusOK, recorder.Code)

	result := Result{}
	assert.Nil(json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.Len(result.Due, 1)
	assert.Len(result.Upcoming, 1)
	assert.Equal(int64(1), result.Due[0].ID)
	assert.Equal("due_active", result.Due[0].State)
	assert.Equal(int64(2), result.Upcoming[0].ID)
	assert.Equal("pending", result.Upcoming[0].State)
	if assert.NotNil(result.Upcoming[0].Beats) {
		// 17:00 UTC is 18:00 BMT, exactly beat 750.
		assert.Equal("@750.00", *result.Upcoming[0].Beats)
	}
}

func TestListRemindersHandlerServiceError(t *testing.T) {
	handler := New(&stubService{err: errors.New("store unavailable")})

	request := httptest.NewRequest(http.MethodGet, "/reminders", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
