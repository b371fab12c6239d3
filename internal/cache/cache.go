// Package cache is a read-through Redis cache for the public event catalog.
// The catalog is the hot path of the storefront; everything else goes
// straight to Postgres. A missing or unreachable Redis only degrades reads,
// it never fails them.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	eventListKey = "events:all"
	eventKeyFmt  = "events:%s"

	catalogTTL = 5 * time.Minute
)

type Catalog struct {
	rdb *redis.Client
}

// New connects to Redis at addr. Returns nil (and an error) when Redis is
// unreachable; callers treat a nil Catalog as cache-disabled.
func New(addr, password string) (*Catalog, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &Catalog{rdb: rdb}, nil
}

func (c *Catalog) GetEventList(ctx context.Context, dest any) bool {
	if c == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, eventListKey).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (c *Catalog) SetEventList(ctx context.Context, events any) {
	if c == nil {
		return
	}
	data, err := json.Marshal(events)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, eventListKey, data, catalogTTL)
}

func (c *Catalog) GetEvent(ctx context.Context, id string, dest any) bool {
	if c == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, fmt.Sprintf(eventKeyFmt, id)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (c *Catalog) SetEvent(ctx context.Context, id string, event any) {
	if c == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, fmt.Sprintf(eventKeyFmt, id), data, catalogTTL)
}

// Invalidate drops the cached list and, when id is non-empty, the cached
// single event. Called after every admin catalog write.
func (c *Catalog) Invalidate(ctx context.Context, id string) {
	if c == nil {
		return
	}
	keys := []string{eventListKey}
	if id != "" {
		keys = append(keys, fmt.Sprintf(eventKeyFmt, id))
	}
	c.rdb.Del(ctx, keys...)
}

func (c *Catalog) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
