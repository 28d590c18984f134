package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	// defaultOperationTimeout bounds individual Redis operations
	defaultOperationTimeout = 5 * time.Second

	pageTTL    = 1 * time.Hour
	menuTTL    = 2 * time.Hour
	sessionTTL = 30 * time.Minute
)

var ErrCacheMiss = fmt.Errorf("cache: key not found")

type Cache struct {
	client  *redis.Client
	enabled bool
}

func NewCache(addr string, enable bool) (*Cache, error) {
	if !enable {
		return &Cache{enabled: false}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		PoolSize:     10,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{
		client:  client,
		enabled: true,
	}, nil
}

func (c *Cache) Enabled() bool {
	return c != nil && c.enabled
}

func (c *Cache) operationContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), defaultOperationTimeout)
}

func (c *Cache) Set(key string, value interface{}, expiration time.Duration) error {
	if !c.Enabled() {
		return nil
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, jsonData, expiration).Err()
}

func (c *Cache) Get(key string, dest interface{}) error {
	if !c.Enabled() {
		return ErrCacheMiss
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrCacheMiss
	} else if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func (c *Cache) Delete(key string) error {
	if !c.Enabled() {
		return nil
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	return c.client.Del(ctx, key).Err()
}

func (c *Cache) DeletePattern(pattern string) error {
	if !c.Enabled() {
		return nil
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *Cache) Exists(key string) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	val, err := c.client.Exists(ctx, key).Result()
	return val > 0, err
}

func (c *Cache) FlushAll() error {
	if !c.Enabled() {
		return nil
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	return c.client.FlushAll(ctx).Err()
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

func (c *Cache) CachePage(pageID uint, page interface{}) error {
	return c.Set(fmt.Sprintf("page:%d", pageID), page, pageTTL)
}

func (c *Cache) GetCachedPage(pageID uint, dest interface{}) error {
	return c.Get(fmt.Sprintf("page:%d", pageID), dest)
}

func (c *Cache) CachePageByPath(path string, page interface{}) error {
	return c.Set("page:path:"+path, page, pageTTL)
}

func (c *Cache) GetCachedPageByPath(path string, dest interface{}) error {
	return c.Get("page:path:"+path, dest)
}

// InvalidatePage drops every cached view of a page: by id, slug and path.
func (c *Cache) InvalidatePage(pageID uint) error {
	if err := c.Delete(fmt.Sprintf("page:%d", pageID)); err != nil {
		return err
	}
	if err := c.DeletePattern("page:slug:*"); err != nil {
		return err
	}
	return c.DeletePattern("page:path:*")
}

func (c *Cache) InvalidatePagesCache() error {
	return c.DeletePattern("page*")
}

func (c *Cache) CacheMenu(items interface{}) error {
	return c.Set("menu:all", items, menuTTL)
}

func (c *Cache) GetCachedMenu(dest interface{}) error {
	return c.Get("menu:all", dest)
}

func (c *Cache) InvalidateMenu() error {
	return c.Delete("menu:all")
}

func (c *Cache) CacheQuizSession(id string, session interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = sessionTTL
	}
	return c.Set("quiz:session:"+id, session, ttl)
}

func (c *Cache) GetCachedQuizSession(id string, dest interface{}) error {
	return c.Get("quiz:session:"+id, dest)
}

func (c *Cache) InvalidateQuizSession(id string) error {
	return c.Delete("quiz:session:" + id)
}
