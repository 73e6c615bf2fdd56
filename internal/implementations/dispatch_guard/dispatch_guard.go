package dispatchguard

import (
	e "beatwatch/internal/core/domain/errors"
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v9"
)

// Redis claims dispatch tags with SETNX so a reminder is announced at most
// once even across process restarts or redelivered due events. Claims expire
// after ttl; by then the reminder is either dismissed or long past due.
type Redis struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewRedis(redisClient *redis.Client, ttl time.Duration) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	return &Redis{redisClient: redisClient, ttl: ttl}
}

func (r *Redis) FirstDispatch(ctx context.Context, tag string) (bool, error) {
	ok, err := r.redisClient.SetNX(ctx, fmt.Sprintf("beatwatch:dispatched:%s", tag), "1", r.ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}
