package out

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"gocycling/internal/modules/ride/domain"
	rideout "gocycling/internal/modules/ride/port/out"
	apperrors "gocycling/internal/platform/errors"
)

// RedisStateStore keeps the active ride under a single key so that several
// machines can share one ride.
type RedisStateStore struct {
	client *redis.Client
	key    string
}

func NewRedisStateStore(client *redis.Client, key string) rideout.StateStore {
	return &RedisStateStore{client: client, key: key}
}

func ConnectRedis(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
}

func (s *RedisStateStore) Save(ctx context.Context, state domain.State) error {
	payload, err := encodeState(state)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis save ride state: %w", err)
	}
	return nil
}

func (s *RedisStateStore) Load(ctx context.Context) (domain.State, error) {
	payload, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.State{}, apperrors.ErrNoActiveRide
	}
	if err != nil {
		return domain.State{}, fmt.Errorf("redis load ride state: %w", err)
	}
	return decodeState(payload)
}

func (s *RedisStateStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis clear ride state: %w", err)
	}
	return nil
}
