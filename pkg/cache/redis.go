package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	listPrefix = "cache:events:list:"
	itemPrefix = "cache:events:item:"
)

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		opts = &redis.Options{Addr: url}
	}
	opts.PoolSize = 50
	opts.MinIdleConns = 5
	opts.MaxRetries = 3

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func HealthCheck(ctx context.Context, client *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

func hash(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// ListKey names a cached event listing response.
func ListKey(path, rawQuery string) string {
	return listPrefix + hash(path+"|"+rawQuery)
}

// ItemKey names a cached response scoped to one event. The raw id stays in
// the key so the event's entries can be purged together.
func ItemKey(eventID, path, rawQuery string) string {
	return itemPrefix + eventID + ":" + hash(path+"|"+rawQuery)
}

// Invalidator drops cached responses after writes.
type Invalidator struct {
	rdb *redis.Client
}

func NewInvalidator(rdb *redis.Client) *Invalidator {
	return &Invalidator{rdb: rdb}
}

// PurgeEvent removes every cached response for the event along with all
// listings, which may embed it.
func (i *Invalidator) PurgeEvent(ctx context.Context, eventID uuid.UUID) {
	i.purge(ctx, itemPrefix+eventID.String()+":*")
	i.purge(ctx, listPrefix+"*")
}

func (i *Invalidator) purge(ctx context.Context, pattern string) {
	iter := i.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("[Cache] scan %s: %v", pattern, err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := i.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[Cache] delete %d keys: %v", len(keys), err)
	}
}
