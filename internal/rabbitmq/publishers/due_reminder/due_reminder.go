package duereminder

import (
	e "beatwatch/internal/core/domain/errors"
	"beatwatch/internal/core/domain/logging"
	"beatwatch/internal/core/domain/reminder"
	"beatwatch/internal/rabbitmq"
	"beatwatch/internal/rabbitmq/schema"
	"context"

	"github.com/rabbitmq/amqp091-go"
)

type RabbitMQ struct {
	log        logging.Logger
	channel    *rabbitmq.Channel
	exchange   string
	routingKey string
}

func NewRabbitMQ(log logging.Logger, channel *rabbitmq.Channel, exchange string, routingKey string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange, routingKey: routingKey}
}

func (p *RabbitMQ) PublishDue(ctx context.Context, ev reminder.Event) error {
	msg := schema.DueReminder{
		ID:          int64(ev.ID),
		Title:       ev.Title,
		Description: ev.Description,
		Tag:         ev.NotificationTag(),
		At:          ev.ReminderTime.Value,
	}
	body, err := msg.Marshal()
	if err != nil {
		logging.Error(ctx, p.log, err, logging.Entry("eventID", ev.ID))
		return err
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, amqp091.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		logging.Error(ctx, p.log, err, logging.Entry("eventID", ev.ID))
		return err
	}
	p.log.Info(
		ctx,
		"Due reminder published.",
		logging.Entry("exchange", p.exchange),
		logging.Entry("RK", p.routingKey),
		logging.Entry("eventID", ev.ID),
	)
	return nil
}
