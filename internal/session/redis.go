package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "orderform:session:"

var _ Store = (*Redis)(nil)

// Redis is the production Store, holding JSON-encoded state with a TTL so
// abandoned form flows expire on their own.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis creates a Redis store on an existing client.
func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

// Get implements Store.
func (s *Redis) Get(ctx context.Context, sessionID string) (*State, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "get session state")
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, errors.Wrap(err, "decode session state")
	}
	return &state, nil
}

// Put implements Store. Each write refreshes the TTL.
func (s *Redis) Put(ctx context.Context, sessionID string, state *State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "encode session state")
	}
	if err := s.rdb.Set(ctx, keyPrefix+sessionID, raw, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "put session state")
	}
	return nil
}

// Delete implements Store.
func (s *Redis) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return errors.Wrap(err, "delete session state")
	}
	return nil
}
