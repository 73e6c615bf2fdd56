package reminderdue

import (
	c "beatwatch/internal/core/domain/common"
	e "beatwatch/internal/core/domain/errors"
	"beatwatch/internal/core/domain/logging"
	"beatwatch/internal/core/domain/reminder"
	"beatwatch/internal/core/services"
	sendreminder "beatwatch/internal/core/services/send_reminder"
	"beatwatch/internal/rabbitmq"
	"beatwatch/internal/rabbitmq/schema"
	"context"

	"github.com/rabbitmq/amqp091-go"
)

// Consumer reads due reminder announcements from the queue and hands each
// one to the send service. Malformed messages are acknowledged and dropped,
// otherwise the broker would redeliver them forever.
type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	service services.Service[sendreminder.Input, sendreminder.Result]
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	service services.Service[sendreminder.Input, sendreminder.Result],
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}

	return &Consumer{log: log, channel: channel, queue: queue, service: service}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			c.consumeOne(delivery)
		}
	}()
	return nil
}

func (c *Consumer) consumeOne(delivery amqp091.Delivery) {
	due := &schema.DueReminder{}
	if err := due.Unmarshal(delivery.Body); err != nil {
		c.log.Error(
			context.Background(),
			"Could not unmarshal due reminder.",
			logging.Entry("err", err),
			logging.Entry("delivery", delivery),
		)
		c.ack(delivery)
		return
	}

	c.log.Info(
		context.Background(),
		"Got due reminder.",
		logging.Entry("eventID", due.ID),
	)
	_, err := c.service.Run(
		context.Background(),
		sendreminder.Input{Event: eventFromSchema(due)},
	)
	if err != nil {
		c.log.Error(
			context.Background(),
			"Could not send reminder, service returned an error.",
			logging.Entry("eventID", due.ID),
			logging.Entry("err", err),
		)
	}
	c.ack(delivery)
}

func (c *Consumer) ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(true); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}

func eventFromSchema(due *schema.DueReminder) reminder.Event {
	return reminder.Event{
		ID:           reminder.ID(due.ID),
		Title:        due.Title,
		Description:  due.Description,
		ReminderTime: c.NewOptional(due.At, true),
	}
}
