package services

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func TestTokenDenylist(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	denylist := NewTokenDenylist(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	revoked, err := denylist.IsDenylisted("some-token")
	assert.NoError(t, err)
	assert.False(t, revoked)

	err = denylist.Add("some-token", time.Hour)
	assert.NoError(t, err)

	revoked, err = denylist.IsDenylisted("some-token")
	assert.NoError(t, err)
	assert.True(t, revoked)

	// The entry expires with the token it shadows.
	mr.FastForward(2 * time.Hour)
	revoked, err = denylist.IsDenylisted("some-token")
	assert.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenDenylistWithoutRedis(t *testing.T) {
	denylist := NewTokenDenylist(nil)

	assert.NoError(t, denylist.Add("token", time.Hour))
	revoked, err := denylist.IsDenylisted("token")
	assert.NoError(t, err)
	assert.False(t, revoked)
}
