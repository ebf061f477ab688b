package persistent

import (
	"context"
	"testing"
	"time"

	"inkboard/services/blog/internal/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisPostStore(t *testing.T) {
	_, client := newTestRedis(t)
	runStoreContract(t, NewRedisPostStore(client, "test:posts"))
}

func TestRedisPostStore_StoresDocumentUnderKey(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisPostStore(client, "test:posts")

	require.NoError(t, store.Append(context.Background(), newPost("Cached", time.Now())))

	raw, err := mr.Get("test:posts")
	require.NoError(t, err)
	assert.Contains(t, raw, `"posts":[`)
	assert.Contains(t, raw, `"title":"Cached"`)
}

func TestRedisPostStore_CorruptedValue(t *testing.T) {
	mr, client := newTestRedis(t)
	require.NoError(t, mr.Set("test:posts", "garbage"))

	store := NewRedisPostStore(client, "test:posts")
	_, err := store.GetAll(context.Background())

	var storageErr *entity.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "decode", storageErr.Op)
}

func TestRedisPostStore_Unavailable(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisPostStore(client, "test:posts")
	mr.Close()

	_, err := store.GetAll(context.Background())
	var storageErr *entity.StorageError
	require.ErrorAs(t, err, &storageErr)

	err = store.Append(context.Background(), newPost("Nowhere", time.Now()))
	require.ErrorAs(t, err, &storageErr)
}

func TestRedisPostStore_ContinuesExistingIDs(t *testing.T) {
	mr, client := newTestRedis(t)
	require.NoError(t, mr.Set("test:posts", `{"posts":[{"id":41,"title":"Old","description":"d","category":"health","createdAt":"2024-01-01T00:00:00Z"}]}`))
	store := NewRedisPostStore(client, "test:posts")

	post := newPost("New", time.Now())
	require.NoError(t, store.Append(context.Background(), post))
	assert.Equal(t, int64(42), post.ID)

	seq, err := mr.Get("test:posts:seq")
	require.NoError(t, err)
	assert.Equal(t, "42", seq)
}

func TestRedisPostStore_CancelledContext(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewRedisPostStore(client, "test:posts")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Append(ctx, newPost("Late", time.Now()))
	var storageErr *entity.StorageError
	require.ErrorAs(t, err, &storageErr)
}
