package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedClient read-through кеш поверх клиента каталога.
// Любая ошибка Redis деградирует до прямого HTTP запроса: кеш ускоряет
// горячий путь createBooking, но не является источником истины.
type CachedClient struct {
	client ItemProvider
	redis  *redis.Client
	ttl    time.Duration
	log    Logger
}

// NewCachedClient оборачивает client кешированием товаров в Redis
func NewCachedClient(client ItemProvider, rdb *redis.Client, ttl time.Duration, log Logger) *CachedClient {
	return &CachedClient{
		client: client,
		redis:  rdb,
		ttl:    ttl,
		log:    log,
	}
}

func itemCacheKey(itemID string) string {
	return fmt.Sprintf("catalog:item:%s", itemID)
}

// GetItem получает товар из кеша, при промахе — из CatalogService
func (c *CachedClient) GetItem(ctx context.Context, itemID string) (*Item, error) {
	key := itemCacheKey(itemID)

	val, err := c.redis.Get(ctx, key).Result()
	if err == nil {
		var item Item
		if jsonErr := json.Unmarshal([]byte(val), &item); jsonErr == nil {
			return &item, nil
		}
		// Битая запись в кеше: игнорируем и идем в каталог
		c.log.Warn("CatalogCache: corrupted cache entry for item=%s, falling back", itemID)
	} else if err != redis.Nil {
		c.log.Warn("CatalogCache: redis unavailable, falling back to HTTP: %v", err)
	}

	item, err := c.client.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if data, jsonErr := json.Marshal(item); jsonErr == nil {
		if setErr := c.redis.Set(ctx, key, data, c.ttl).Err(); setErr != nil {
			c.log.Warn("CatalogCache: failed to cache item=%s: %v", itemID, setErr)
		}
	}

	return item, nil
}
