package catalogservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newCacheEnv(t *testing.T) (*CachedClient, *miniredis.Miniredis, *int) {
	t.Helper()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Item{
			ID:        "item-1",
			Name:      "Mountain Bike",
			OwnerID:   "owner-1",
			Price:     decimal.NewFromInt(10),
			Available: true,
		})
	}))
	t.Cleanup(srv.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	httpClient := NewClient(srv.URL, 2*time.Second, nopLogger{})
	return NewCachedClient(httpClient, rdb, time.Minute, nopLogger{}), mr, &calls
}

func TestCachedClient_SecondCallHitsCache(t *testing.T) {
	cached, _, calls := newCacheEnv(t)
	ctx := context.Background()

	first, err := cached.GetItem(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, "Mountain Bike", first.Name)
	assert.Equal(t, 1, *calls)

	second, err := cached.GetItem(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	// Второй запрос обслужен из кеша, HTTP не вызывался
	assert.Equal(t, 1, *calls)
}

func TestCachedClient_ExpiredEntryRefetches(t *testing.T) {
	cached, mr, calls := newCacheEnv(t)
	ctx := context.Background()

	_, err := cached.GetItem(ctx, "item-1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = cached.GetItem(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, 2, *calls)
}

func TestCachedClient_CorruptedEntryFallsBack(t *testing.T) {
	cached, mr, calls := newCacheEnv(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(itemCacheKey("item-1"), "not json"))

	item, err := cached.GetItem(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, "item-1", item.ID)
	assert.Equal(t, 1, *calls)
}

func TestCachedClient_RedisDownFallsBack(t *testing.T) {
	cached, mr, calls := newCacheEnv(t)
	ctx := context.Background()

	mr.Close()

	item, err := cached.GetItem(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, "Mountain Bike", item.Name)
	assert.Equal(t, 1, *calls)
}
