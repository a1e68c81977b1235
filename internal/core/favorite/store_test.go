package favorite

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStoreWithClient(client, "test:"), mr
}

func stores(t *testing.T) map[string]Store {
	redisStore, _ := newRedisTestStore(t)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  redisStore,
	}
}

func TestStoreAddListRemove(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			added, err := store.Add(ctx, "7", "52771")
			require.NoError(t, err)
			assert.True(t, added)

			added, err = store.Add(ctx, "7", "10")
			require.NoError(t, err)
			assert.True(t, added)

			added, err = store.Add(ctx, "7", "52771")
			require.NoError(t, err)
			assert.False(t, added, "duplicate add")

			ids, err := store.List(ctx, "7")
			require.NoError(t, err)
			assert.Equal(t, []string{"52771", "10"}, ids, "insertion order")

			ok, err := store.IsFavorite(ctx, "7", "10")
			require.NoError(t, err)
			assert.True(t, ok)

			require.NoError(t, store.Remove(ctx, "7", "52771"))
			assert.ErrorIs(t, store.Remove(ctx, "7", "52771"), ErrNotFound)

			ok, err = store.IsFavorite(ctx, "7", "52771")
			require.NoError(t, err)
			assert.False(t, ok)

			ids, err = store.List(ctx, "7")
			require.NoError(t, err)
			assert.Equal(t, []string{"10"}, ids)
		})
	}
}

func TestStoreUsersAreIsolated(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Add(ctx, "1", "52771")
			require.NoError(t, err)

			ids, err := store.List(ctx, "2")
			require.NoError(t, err)
			assert.Empty(t, ids)

			ok, err := store.IsFavorite(ctx, "2", "52771")
			require.NoError(t, err)
			assert.False(t, ok)

			assert.ErrorIs(t, store.Remove(ctx, "2", "52771"), ErrNotFound)
		})
	}
}

func TestRedisStoreKeyLayout(t *testing.T) {
	store, mr := newRedisTestStore(t)

	_, err := store.Add(context.Background(), "42", "52771")
	require.NoError(t, err)

	members, err := mr.ZMembers("test:favorites:42")
	require.NoError(t, err)
	assert.Equal(t, []string{"52771"}, members)
	require.NoError(t, store.Ping(context.Background()))
}

func TestRedisStoreUnavailable(t *testing.T) {
	store, mr := newRedisTestStore(t)
	mr.Close()

	_, err := store.Add(context.Background(), "1", "2")
	assert.Error(t, err)

	_, err = store.List(context.Background(), "1")
	assert.Error(t, err)
}
