// Package schema defines the wire format of messages exchanged over AMQP.
package schema

import (
	"encoding/json"
	"time"
)

// DueReminder announces that a reminder's trigger instant has passed. It
// carries everything the notification surfaces need so consumers never read
// the store.
type DueReminder struct {
	ID          int64
	Title       string
	Description string
	Tag         string
	At          time.Time
}

func (r *DueReminder) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

func (r *DueReminder) Unmarshal(data []byte) error {
	return json.Unmarshal(data, r)
}
