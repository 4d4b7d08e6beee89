// Copyright (c) 2026 Leafmark. All rights reserved.
// Author: dev@leafmark.app

package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/leafmark/leafmark/internal/platform/constants"
)

// CacheTTL bounds how stale a served projection can get even without an
// explicit invalidation.
const CacheTTL = 10 * time.Minute

// # Redis Cache

// Cache is a read-through Redis store for computed projections.
//
// Analytics are recomputed from the full session log on every miss, which is
// cheap but adds up on dashboard-style polling; the cache keeps that hot
// path off the primary database. Writers to the log invalidate by book ID.
type Cache struct {
	client *redis.Client
}

// NewCache constructs a Redis backed analytics cache.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// key builds the namespaced cache key for a book.
func (cache *Cache) key(bookID string) string {
	return constants.RedisPrefixBookAnalytics + bookID
}

/*
Get returns the cached projection for a book.

Returns:
  - *Analysis: The cached projection, nil on a miss
  - error: Transport failures; a miss is not an error
*/
func (cache *Cache) Get(context context.Context, bookID string) (*Analysis, error) {
	payload, err := cache.client.Get(context, cache.key(bookID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis: failed to read analytics cache: %w", err)
	}

	var analysis Analysis
	if err := json.Unmarshal(payload, &analysis); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		return nil, nil
	}

	return &analysis, nil
}

/*
Set stores a freshly computed projection with the standard TTL.
*/
func (cache *Cache) Set(context context.Context, bookID string, analysis *Analysis) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("redis: failed to encode analytics: %w", err)
	}

	if err := cache.client.Set(context, cache.key(bookID), payload, CacheTTL).Err(); err != nil {
		return fmt.Errorf("redis: failed to write analytics cache: %w", err)
	}

	return nil
}

/*
Invalidate discards the cached projection for a book. Called by every write
path that changes the book's log, plan, or confirmed position.
*/
func (cache *Cache) Invalidate(context context.Context, bookID string) error {
	if err := cache.client.Del(context, cache.key(bookID)).Err(); err != nil {
		return fmt.Errorf("redis: failed to invalidate analytics cache: %w", err)
	}

	return nil
}
