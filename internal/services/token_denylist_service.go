package services

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const denylistPrefix = "denylist:"

// TokenDenylist tracks revoked JWTs until they expire on their own.
type TokenDenylist struct {
	client *redis.Client
}

func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	return &TokenDenylist{client: client}
}

func (d *TokenDenylist) Add(tokenString string, expiration time.Duration) error {
	if d.client == nil {
		return nil
	}
	return d.client.Set(context.Background(), denylistPrefix+tokenString, 1, expiration).Err()
}

func (d *TokenDenylist) IsDenylisted(tokenString string) (bool, error) {
	if d.client == nil {
		return false, nil
	}
	val, err := d.client.Get(context.Background(), denylistPrefix+tokenString).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return val != "", nil
}
