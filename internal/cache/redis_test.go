package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	found, err := GetJSON(ctx, UserKey(1), &cachedUser{})
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, UserKey(1), cachedUser{ID: 1, Name: "Ada"}, UserTTL))

	var got cachedUser
	found, err = GetJSON(ctx, UserKey(1), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Ada", got.Name)
}

func TestAside(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	fetches := 0
	load := func(dest *cachedUser) func() error {
		return func() error {
			fetches++
			dest.ID = 2
			dest.Name = "Bob"
			return nil
		}
	}

	var first cachedUser
	require.NoError(t, Aside(ctx, UserKey(2), &first, time.Minute, load(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "Bob", first.Name)

	// second read is served from the cache
	var second cachedUser
	require.NoError(t, Aside(ctx, UserKey(2), &second, time.Minute, load(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "Bob", second.Name)
}

func TestInvalidateUser(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(3), cachedUser{ID: 3}, UserTTL))
	require.True(t, mr.Exists("user:3"))

	InvalidateUser(ctx, 3)
	assert.False(t, mr.Exists("user:3"))
}

func TestNilClientDegradesGracefully(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	found, err := GetJSON(ctx, "any", &cachedUser{})
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, "any", cachedUser{}, time.Minute))

	var dest cachedUser
	err = Aside(ctx, "any", &dest, time.Minute, func() error {
		dest.Name = "direct"
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "direct", dest.Name)
}
