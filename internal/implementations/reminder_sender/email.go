package remindersender

import (
	"beatwatch/internal/core/domain/beat"
	"beatwatch/internal/core/domain/reminder"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// EmailSender delivers due reminders by email. Both addresses must be
// configured and the sender verified with Amazon SES; otherwise the surface
// reports no permission and is skipped.
type EmailSender struct {
	ses       *ses.Client
	sender    string
	recipient string
}

func NewEmail(awsConfig aws.Config, sender string, recipient string) *EmailSender {
	return &EmailSender{
		ses:       ses.NewFromConfig(awsConfig),
		sender:    sender,
		recipient: recipient,
	}
}

func (s *EmailSender) Permission(ctx context.Context) reminder.Permission {
	if s.sender == "" || s.recipient == "" {
		return reminder.PermissionUnsupported
	}
	return reminder.PermissionGranted
}

func (s *EmailSender) SendReminder(ctx context.Context, ev reminder.Event) error {
	subject := ev.Title
	if subject == "" {
		subject = "Reminder"
	}
	body := ev.Description
	if ev.ReminderTime.IsPresent {
		body = fmt.Sprintf(
			"%s\n\nScheduled for %s (%s).",
			body,
			ev.ReminderTime.Value.UTC().Format("2006-01-02 15:04 MST"),
			beat.Format(beat.ToBeats(ev.ReminderTime.Value)),
		)
	}

	_, err := s.ses.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				ToAddresses: []string{s.recipient},
			},
			Message: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Text: &types.Content{Data: &body},
				},
			},
		},
	)
	return err
}
