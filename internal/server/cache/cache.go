// Package cache is the read/write-through cache in front of the documents
// table.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/favfood/internal/server/models"
	"github.com/redis/go-redis/v9"
)

// DocumentCache holds fully hydrated documents (blobs inlined).
type DocumentCache interface {
	Get(ctx context.Context, collection, id string) (*models.Document, bool, error)
	Set(ctx context.Context, doc *models.Document) error
	Delete(ctx context.Context, collection, id string) error
}

// Key is the cache key of a document.
func Key(collection, id string) string {
	return fmt.Sprintf("doc:%s:%s", collection, id)
}

// NewRedisClient initializes a redis client.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, collection, id string) (*models.Document, bool, error) {
	res, err := c.rdb.Get(ctx, Key(collection, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	doc := &models.Document{}
	if err := json.Unmarshal(res, doc); err != nil {
		return nil, false, err
	}
	return doc, true, nil
}

func (c *RedisCache) Set(ctx context.Context, doc *models.Document) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, Key(doc.Collection, doc.ID), b, c.ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, collection, id string) error {
	return c.rdb.Del(ctx, Key(collection, id)).Err()
}

// Nop never hits. Used when no Redis address is configured.
type Nop struct{}

func (Nop) Get(context.Context, string, string) (*models.Document, bool, error) {
	return nil, false, nil
}
func (Nop) Set(context.Context, *models.Document) error  { return nil }
func (Nop) Delete(context.Context, string, string) error { return nil }
