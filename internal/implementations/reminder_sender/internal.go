package remindersender

import (
	"beatwatch/internal/core/domain/beat"
	e "beatwatch/internal/core/domain/errors"
	"beatwatch/internal/core/domain/reminder"
	"context"
	"encoding/json"
	"time"

	"github.com/r3labs/sse/v2"
)

// StreamID is the SSE stream in-app clients subscribe to.
const StreamID = "reminders"

type dueEvent struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Tag          string  `json:"tag"`
	ReminderTime string  `json:"reminder_time,omitempty"`
	Beats        *string `json:"beats,omitempty"`
}

// InternalSender surfaces due reminders to connected in-app clients over
// SSE. It backs the reminder bell and the modal in the UI, so it keeps
// working when system-level notifications are muted or denied.
type InternalSender struct {
	sseServer *sse.Server
}

func NewInternal(sseServer *sse.Server) *InternalSender {
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	sseServer.CreateStream(StreamID)
	return &InternalSender{sseServer: sseServer}
}

func (s *InternalSender) Permission(ctx context.Context) reminder.Permission {
	return reminder.PermissionGranted
}

func (s *InternalSender) SendReminder(ctx context.Context, ev reminder.Event) error {
	payload := dueEvent{
		ID:          int64(ev.ID),
		Title:       ev.Title,
		Description: ev.Description,
		Tag:         ev.NotificationTag(),
	}
	if ev.ReminderTime.IsPresent {
		payload.ReminderTime = ev.ReminderTime.Value.UTC().Format(time.RFC3339)
		beats := beat.Format(beat.ToBeats(ev.ReminderTime.Value))
		payload.Beats = &beats
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	s.sseServer.Publish(StreamID, &sse.Event{Event: []byte("due"), Data: data})
	return nil
}
