package settings

import (
	e "beatwatch/internal/core/domain/errors"
	"beatwatch/internal/core/domain/logging"
	"beatwatch/internal/core/domain/settings"
	"context"

	"github.com/go-redis/redis/v9"
)

const (
	mutedKey      = "beatwatch:settings:muted"
	changeChannel = "beatwatch:settings"
)

// Redis stores the mute flag under its own key and publishes every write on
// a pub-sub channel so other processes pick up the change without polling.
type Redis struct {
	redisClient *redis.Client
	log         logging.Logger
}

func NewRedis(redisClient *redis.Client, log logging.Logger) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &Redis{redisClient: redisClient, log: log}
}

func (r *Redis) Get(ctx context.Context) (settings.Settings, error) {
	raw, err := r.redisClient.Get(ctx, mutedKey).Result()
	if err == redis.Nil {
		return settings.Settings{}, nil
	}
	if err != nil {
		return settings.Settings{}, err
	}
	return decode(raw), nil
}

func (r *Redis) Set(ctx context.Context, s settings.Settings) error {
	if err := r.redisClient.Set(ctx, mutedKey, encode(s), 0).Err(); err != nil {
		return err
	}
	return r.redisClient.Publish(ctx, changeChannel, encode(s)).Err()
}

// Watch subscribes to the change channel and delivers the settings value
// carried by each message. Payloads that do not decode to a known value are
// ignored.
func (r *Redis) Watch(ctx context.Context) (<-chan settings.Settings, error) {
	pubsub := r.redisClient.Subscribe(ctx, changeChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		return nil, err
	}

	updates := make(chan settings.Settings)
	go func() {
		defer pubsub.Close()
		defer close(updates)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-pubsub.Channel():
				if !ok {
					return
				}
				if msg.Payload != "0" && msg.Payload != "1" {
					r.log.Warning(
						ctx,
						"Ignoring unknown settings payload.",
						logging.Entry("payload", msg.Payload),
					)
					continue
				}
				select {
				case updates <- decode(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return updates, nil
}

func encode(s settings.Settings) string {
	if s.Muted {
		return "1"
	}
	return "0"
}

func decode(raw string) settings.Settings {
	return settings.Settings{Muted: raw == "1"}
}
